// Package correlate pairs calendar events with meeting notes written by
// an asynchronous note-taking tool, using a weighted title/time score.
package correlate

import (
	"regexp"
	"strings"
	"time"

	"github.com/zackciesinski-vercel/515-agent/report"
)

// Inherited constants. Behavioral parity with the original matcher is the
// goal here, not better values.
const (
	DefaultThreshold      = 0.3
	DefaultSimilarityGate = 0.25
	DefaultTitleWeight    = 0.6
)

var fillerTokens = map[string]struct{}{
	"sync":       {},
	"meeting":    {},
	"call":       {},
	"chat":       {},
	"discussion": {},
	"check":      {},
	"weekly":     {},
	"monthly":    {},
}

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

type Config struct {
	// AuthorName is dropped from title tokens so "1:1 Alice" and
	// "Alice / Zack" normalize to the same set.
	AuthorName string

	Threshold      float64
	SimilarityGate float64
	TitleWeight    float64
}

func DefaultConfig(authorName string) Config {
	return Config{
		AuthorName:     authorName,
		Threshold:      DefaultThreshold,
		SimilarityGate: DefaultSimilarityGate,
		TitleWeight:    DefaultTitleWeight,
	}
}

func (c Config) normalized() Config {
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	if c.SimilarityGate <= 0 {
		c.SimilarityGate = DefaultSimilarityGate
	}
	if c.TitleWeight <= 0 {
		c.TitleWeight = DefaultTitleWeight
	}
	return c
}

// Match assigns at most one note to each event, greedily in event input
// order. A note, once assigned, is excluded from later events. Ties go to
// the first-seen note; this is deliberately not a global optimum.
func Match(events []report.CalendarEvent, notes []report.Note, cfg Config) []report.MatchedMeeting {
	cfg = cfg.normalized()

	used := make([]bool, len(notes))
	out := make([]report.MatchedMeeting, 0, len(events))
	for _, event := range events {
		best := -1
		bestScore := 0.0
		for i := range notes {
			if used[i] {
				continue
			}
			if s := Score(event, notes[i], cfg); s > bestScore {
				best = i
				bestScore = s
			}
		}
		if best >= 0 && bestScore >= cfg.Threshold {
			used[best] = true
			note := notes[best]
			out = append(out, report.MatchedMeeting{Event: event, Note: &note, HasNotes: true})
			continue
		}
		out = append(out, report.MatchedMeeting{Event: event})
	}
	return out
}

// Score combines normalized-title similarity with a time-proximity bonus.
// Similarity below the gate zeroes the whole score; time proximity alone
// never produces a match.
func Score(event report.CalendarEvent, note report.Note, cfg Config) float64 {
	cfg = cfg.normalized()

	similarity := titleSimilarity(event.Title, note.Title, cfg.AuthorName)
	if similarity < cfg.SimilarityGate {
		return 0
	}
	return similarity*cfg.TitleWeight + timeBonus(event.Start, note.Date)
}

func timeBonus(eventStart, noteDate time.Time) float64 {
	if eventStart.IsZero() || noteDate.IsZero() {
		return 0
	}
	delta := eventStart.Sub(noteDate)
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta < 30*time.Minute:
		return 0.4
	case delta < 120*time.Minute:
		return 0.3
	case delta < 240*time.Minute:
		return 0.1
	default:
		return 0
	}
}

func titleSimilarity(a, b, authorName string) float64 {
	setA := normalizeTitle(a, authorName)
	setB := normalizeTitle(b, authorName)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	overlap := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			overlap++
		}
	}
	max := len(setA)
	if len(setB) > max {
		max = len(setB)
	}
	return float64(overlap) / float64(max)
}

func normalizeTitle(title, authorName string) map[string]struct{} {
	authorName = strings.ToLower(strings.TrimSpace(authorName))
	firstName := ""
	if fields := strings.Fields(authorName); len(fields) > 0 {
		firstName = fields[0]
	}

	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(title), "")
	set := make(map[string]struct{})
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 2 {
			continue
		}
		if token == authorName || token == firstName {
			continue
		}
		if _, filler := fillerTokens[token]; filler {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}
