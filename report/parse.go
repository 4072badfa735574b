package report

import "strings"

const (
	headerTLDR       = "tldr"
	headerWhatIDid   = "what i did"
	headerPriorities = "prioritizing next week"

	// FallbackTLDR is used when the generated reply has no TLDR section.
	FallbackTLDR = "(no summary generated)"

	// ReflectionPlaceholder is never filled in by the pipeline.
	ReflectionPlaceholder = "_Add your reflection before sharing._"
)

// ParseDraft extracts the structured report from the generation service's
// free-text reply. Missing sections degrade to the TLDR placeholder or
// empty bullet lists; the meetings-without-notes field is computed from
// the matched meetings, never parsed from text.
func ParseDraft(generated string, matched []MatchedMeeting, dateLabel, weekLabel string) DraftReport {
	tldr := strings.TrimSpace(sectionText(generated, headerTLDR))
	if tldr == "" {
		tldr = FallbackTLDR
	}
	return DraftReport{
		DateLabel:            dateLabel,
		WeekLabel:            weekLabel,
		TLDR:                 tldr,
		WhatIDid:             sectionBullets(generated, headerWhatIDid),
		Reflection:           ReflectionPlaceholder,
		Priorities:           sectionBullets(generated, headerPriorities),
		MeetingsWithoutNotes: WithoutNotes(matched),
	}
}

// WithoutNotes lists the titles of matched meetings that ended up with no
// note attached, in input order.
func WithoutNotes(matched []MatchedMeeting) []string {
	out := make([]string, 0, len(matched))
	for _, m := range matched {
		if m.HasNotes {
			continue
		}
		out = append(out, m.Event.Title)
	}
	return out
}

// sectionText returns the text following the first line that contains the
// header substring (case-insensitive), up to the next ### header or end
// of input.
func sectionText(text, header string) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), header) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}
	captured := make([]string, 0, len(lines)-start)
	for _, line := range lines[start:] {
		if strings.HasPrefix(strings.TrimSpace(line), "###") {
			break
		}
		captured = append(captured, line)
	}
	return strings.Join(captured, "\n")
}

func sectionBullets(text, header string) []string {
	section := sectionText(text, header)
	out := []string{}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		item, ok := stripBulletMarker(line)
		if !ok {
			continue
		}
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func stripBulletMarker(line string) (string, bool) {
	for _, marker := range []string{"-", "•"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return "", false
}
