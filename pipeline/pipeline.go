// Package pipeline orchestrates the weekly report run: collect from each
// configured source with independent failure handling, correlate events
// with notes, build the generation request, and parse the reply into a
// draft report.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/zackciesinski-vercel/515-agent/correlate"
	"github.com/zackciesinski-vercel/515-agent/internal/weekspan"
	"github.com/zackciesinski-vercel/515-agent/llm"
	"github.com/zackciesinski-vercel/515-agent/report"
)

type CalendarSource interface {
	FetchEvents(ctx context.Context, span weekspan.Span) ([]report.CalendarEvent, error)
}

type ChatSource interface {
	FetchActivity(ctx context.Context, span weekspan.Span) ([]report.ChannelActivity, error)
}

// NoteSource is one stage of the primary/fallback notes chain. Available
// reports whether the source can be read at all; the fallback is only
// consulted when the primary is unavailable or its fetch fails.
type NoteSource interface {
	Name() string
	Available() bool
	FetchNotes(ctx context.Context, span weekspan.Span) ([]report.Note, error)
}

type PriorReportSource interface {
	FetchLatest(ctx context.Context, before time.Time) (*report.PriorReport, error)
}

// Sources holds the configured collaborators. A nil field means the
// integration is not configured; that is expected and only debug-logged.
type Sources struct {
	Calendar      CalendarSource
	Chat          ChatSource
	Notes         NoteSource
	NotesFallback NoteSource
	Prior         PriorReportSource
}

type Options struct {
	AuthorName  string
	Now         time.Time
	Correlation correlate.Config
	Temperature float64
	MaxTokens   int
}

// Collected is everything the generation request is built from.
type Collected struct {
	Span    weekspan.Span
	Events  []report.CalendarEvent
	Notes   []report.Note
	Matched []report.MatchedMeeting
	Chat    []report.ChannelActivity
	Prior   *report.PriorReport
}

var ErrNoClient = errors.New("llm client not configured")

// GenerationError marks the single generation call failing. Unlike source
// failures it is fatal: no report can be produced without a reply.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Run executes the whole pipeline once. Source failures degrade to empty
// contributions; only a generation failure aborts.
func Run(ctx context.Context, logger *slog.Logger, client llm.Client, src Sources, opts Options) (report.DraftReport, error) {
	if client == nil {
		return report.DraftReport{}, ErrNoClient
	}

	collected := Collect(ctx, logger, src, opts)

	system, user, err := BuildPrompt(collected, opts)
	if err != nil {
		return report.DraftReport{}, err
	}

	resp, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return report.DraftReport{}, &GenerationError{Err: err}
	}

	draft := report.ParseDraft(resp.Content, collected.Matched, collected.Span.DateLabel(), collected.Span.Label())
	logger.Info("draft assembled",
		"meetings", len(collected.Matched),
		"without_notes", len(draft.MeetingsWithoutNotes),
		"did_items", len(draft.WhatIDid),
		"priorities", len(draft.Priorities))
	return draft, nil
}

// Collect fetches from every configured source. It never fails: each
// source degrades independently to an empty contribution.
func Collect(ctx context.Context, logger *slog.Logger, src Sources, opts Options) Collected {
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	span := weekspan.Current(now)

	out := Collected{Span: span}

	if src.Calendar == nil {
		logger.Debug("calendar source not configured")
	} else if events, err := src.Calendar.FetchEvents(ctx, span); err != nil {
		logger.Warn("calendar fetch failed, continuing without events", "error", err)
	} else {
		out.Events = filterEvents(events)
		logger.Info("calendar collected", "events", len(events), "kept", len(out.Events))
	}

	if src.Chat == nil {
		logger.Debug("chat source not configured")
	} else if channels, err := src.Chat.FetchActivity(ctx, span); err != nil {
		logger.Warn("chat fetch failed, continuing without activity", "error", err)
	} else {
		out.Chat = channels
		logger.Info("chat collected", "channels", len(channels))
	}

	out.Notes = collectNotes(ctx, logger, src.Notes, src.NotesFallback, span)

	if src.Prior == nil {
		logger.Debug("prior report source not configured")
	} else if prior, err := src.Prior.FetchLatest(ctx, span.Start); err != nil {
		logger.Warn("prior report fetch failed, continuing without it", "error", err)
	} else if prior != nil {
		out.Prior = prior
		logger.Info("prior report collected", "date", prior.DateLabel, "priorities", len(prior.Priorities))
	}

	cfg := opts.Correlation
	if cfg == (correlate.Config{}) {
		cfg = correlate.DefaultConfig(opts.AuthorName)
	}
	out.Matched = correlate.Match(out.Events, out.Notes, cfg)

	withNotes := 0
	for _, m := range out.Matched {
		if m.HasNotes {
			withNotes++
		}
	}
	logger.Info("correlation done", "events", len(out.Events), "notes", len(out.Notes), "matched", withNotes)
	return out
}

// filterEvents drops recurring events, then keeps only events the author
// accepted or that carry no response at all (self-created).
func filterEvents(events []report.CalendarEvent) []report.CalendarEvent {
	kept := make([]report.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Recurring {
			continue
		}
		if ev.SelfResponse != report.ResponseAccepted && ev.SelfResponse != report.ResponseUnknown {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

func collectNotes(ctx context.Context, logger *slog.Logger, primary, fallback NoteSource, span weekspan.Span) []report.Note {
	if primary != nil && primary.Available() {
		notes, err := primary.FetchNotes(ctx, span)
		if err == nil {
			logger.Info("notes collected", "source", primary.Name(), "notes", len(notes))
			return notes
		}
		logger.Warn("primary notes source failed, trying fallback", "source", primary.Name(), "error", err)
	} else if primary != nil {
		logger.Debug("primary notes source unavailable", "source", primary.Name())
	}

	if fallback == nil {
		return nil
	}
	notes, err := fallback.FetchNotes(ctx, span)
	if err != nil {
		logger.Warn("fallback notes source failed, continuing without notes", "source", fallback.Name(), "error", err)
		return nil
	}
	logger.Info("notes collected", "source", fallback.Name(), "notes", len(notes))
	return notes
}
