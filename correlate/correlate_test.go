package correlate

import (
	"testing"
	"time"

	"github.com/zackciesinski-vercel/515-agent/report"
)

var monday = time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)

func event(title string, start time.Time) report.CalendarEvent {
	return report.CalendarEvent{ID: "ev-" + title, Title: title, Start: start, End: start.Add(30 * time.Minute)}
}

func note(id, title string, date time.Time) report.Note {
	return report.Note{ID: id, Title: title, Date: date}
}

func TestScoreZeroBelowSimilarityGate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig("Zack Ciesinski")
	ev := event("Design Sync", monday)
	// No token overlap at all, but the note is at the exact event time.
	n := note("n1", "Budget Review", monday)

	if got := Score(ev, n, cfg); got != 0 {
		t.Fatalf("Score = %v, want 0 for sub-gate similarity regardless of time proximity", got)
	}
}

func TestScoreAddsTimeBonusTiers(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig("")
	ev := event("Design Review", monday)

	cases := []struct {
		name   string
		offset time.Duration
		want   float64
	}{
		{"under 30m", 10 * time.Minute, 0.6 + 0.4},
		{"under 2h", 90 * time.Minute, 0.6 + 0.3},
		{"under 4h", 3 * time.Hour, 0.6 + 0.1},
		{"beyond 4h", 5 * time.Hour, 0.6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := note("n1", "Design Review", monday.Add(tc.offset))
			got := Score(ev, n, cfg)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("Score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScoreDropsFillerAndAuthorTokens(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig("Zack Ciesinski")
	ev := event("Weekly Platform Sync", monday)
	n := note("n1", "Zack / Platform (weekly check)", monday)

	// Both titles normalize to {platform}; full overlap.
	got := Score(ev, n, cfg)
	want := 1*DefaultTitleWeight + 0.4
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestMatchNeverReusesANote(t *testing.T) {
	t.Parallel()

	events := []report.CalendarEvent{
		event("Design Review", monday),
		event("Design Review", monday.Add(time.Hour)),
	}
	notes := []report.Note{note("n1", "Design Review", monday)}

	matched := Match(events, notes, DefaultConfig(""))
	if len(matched) != 2 {
		t.Fatalf("len(matched) = %d, want 2", len(matched))
	}
	if !matched[0].HasNotes || matched[0].Note.ID != "n1" {
		t.Fatalf("first event should take the note, got %+v", matched[0])
	}
	if matched[1].HasNotes {
		t.Fatalf("second event reused an assigned note: %+v", matched[1])
	}
}

func TestMatchTieBreaksByFirstSeenNote(t *testing.T) {
	t.Parallel()

	events := []report.CalendarEvent{event("Design Review", monday)}
	notes := []report.Note{
		note("first", "Design Review", monday),
		note("second", "Design Review", monday),
	}

	matched := Match(events, notes, DefaultConfig(""))
	if !matched[0].HasNotes || matched[0].Note.ID != "first" {
		t.Fatalf("tie should go to first-seen note, got %+v", matched[0])
	}
}

func TestMatchOneOutputPerEventInInputOrder(t *testing.T) {
	t.Parallel()

	events := []report.CalendarEvent{
		event("Roadmap Review", monday),
		event("Incident Retro", monday.Add(2*time.Hour)),
		event("Hiring Debrief", monday.Add(4*time.Hour)),
	}
	notes := []report.Note{
		note("n-retro", "Incident Retro", monday.Add(2*time.Hour)),
	}

	matched := Match(events, notes, DefaultConfig(""))
	if len(matched) != 3 {
		t.Fatalf("len(matched) = %d, want 3", len(matched))
	}
	for i, m := range matched {
		if m.Event.Title != events[i].Title {
			t.Fatalf("matched[%d] out of order: %q", i, m.Event.Title)
		}
	}
	if matched[0].HasNotes || !matched[1].HasNotes || matched[2].HasNotes {
		t.Fatalf("unexpected assignment: %+v", matched)
	}
}

func TestMatchRespectsThreshold(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig("")
	ev := event("Quarterly Planning Deep Dive Offsite", monday)
	// One shared token out of five and far away in time: scores below 0.3.
	n := note("n1", "Planning", monday.Add(6*time.Hour))

	matched := Match([]report.CalendarEvent{ev}, []report.Note{n}, cfg)
	if matched[0].HasNotes {
		t.Fatalf("weak match accepted: score %v", Score(ev, n, cfg))
	}
}
