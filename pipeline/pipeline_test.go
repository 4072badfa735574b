package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zackciesinski-vercel/515-agent/internal/weekspan"
	"github.com/zackciesinski-vercel/515-agent/llm"
	"github.com/zackciesinski-vercel/515-agent/report"
)

var testNow = time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCalendar struct {
	events []report.CalendarEvent
	err    error
}

func (f fakeCalendar) FetchEvents(ctx context.Context, span weekspan.Span) ([]report.CalendarEvent, error) {
	return f.events, f.err
}

type fakeChat struct {
	channels []report.ChannelActivity
	err      error
}

func (f fakeChat) FetchActivity(ctx context.Context, span weekspan.Span) ([]report.ChannelActivity, error) {
	return f.channels, f.err
}

type fakeNotes struct {
	name      string
	available bool
	notes     []report.Note
	err       error
	calls     *int
}

func (f fakeNotes) Name() string    { return f.name }
func (f fakeNotes) Available() bool { return f.available }
func (f fakeNotes) FetchNotes(ctx context.Context, span weekspan.Span) ([]report.Note, error) {
	if f.calls != nil {
		*f.calls++
	}
	return f.notes, f.err
}

type fakePrior struct {
	prior *report.PriorReport
	err   error
}

func (f fakePrior) FetchLatest(ctx context.Context, before time.Time) (*report.PriorReport, error) {
	return f.prior, f.err
}

type fakeLLM struct {
	reply    string
	err      error
	lastUser string
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	for _, msg := range req.Messages {
		if msg.Role == llm.RoleUser {
			f.lastUser = msg.Content
		}
	}
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.reply}, nil
}

func TestCollectDegradesPerSource(t *testing.T) {
	t.Parallel()

	src := Sources{
		Calendar: fakeCalendar{err: errors.New("calendar down")},
		Chat:     fakeChat{err: errors.New("chat down")},
		Notes:    fakeNotes{name: "granola", available: true, err: errors.New("cache corrupt")},
		Prior:    fakePrior{err: errors.New("api down")},
	}

	collected := Collect(context.Background(), testLogger(), src, Options{Now: testNow})
	if len(collected.Events) != 0 || len(collected.Chat) != 0 || len(collected.Notes) != 0 || collected.Prior != nil {
		t.Fatalf("expected empty contributions, got %+v", collected)
	}
	if len(collected.Matched) != 0 {
		t.Fatalf("correlation should still run over empty inputs, got %v", collected.Matched)
	}
}

func TestCollectFiltersRecurringAndDeclined(t *testing.T) {
	t.Parallel()

	start := testNow.Add(-2 * time.Hour)
	src := Sources{
		Calendar: fakeCalendar{events: []report.CalendarEvent{
			{Title: "Standup", Start: start, Recurring: true, SelfResponse: report.ResponseAccepted},
			{Title: "Design Sync", Start: start, SelfResponse: report.ResponseAccepted},
			{Title: "Skipped", Start: start, SelfResponse: report.ResponseDeclined},
			{Title: "Tentative", Start: start, SelfResponse: report.ResponseTentative},
			{Title: "Own Event", Start: start, SelfResponse: report.ResponseUnknown},
		}},
	}

	collected := Collect(context.Background(), testLogger(), src, Options{Now: testNow})
	titles := make([]string, 0, len(collected.Events))
	for _, ev := range collected.Events {
		titles = append(titles, ev.Title)
	}
	if want := []string{"Design Sync", "Own Event"}; !reflect.DeepEqual(titles, want) {
		t.Fatalf("kept events = %v, want %v", titles, want)
	}
}

func TestCollectNotesFallbackOnlyWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	fallbackCalls := 0
	src := Sources{
		Notes:         fakeNotes{name: "granola", available: true, notes: []report.Note{{ID: "g1", Title: "A"}}},
		NotesFallback: fakeNotes{name: "notion", available: true, notes: []report.Note{{ID: "n1", Title: "B"}}, calls: &fallbackCalls},
	}

	collected := Collect(context.Background(), testLogger(), src, Options{Now: testNow})
	if len(collected.Notes) != 1 || collected.Notes[0].ID != "g1" {
		t.Fatalf("primary notes should win, got %v", collected.Notes)
	}
	if fallbackCalls != 0 {
		t.Fatalf("fallback was consulted %d times despite healthy primary", fallbackCalls)
	}
}

func TestCollectNotesFallbackOnPrimaryError(t *testing.T) {
	t.Parallel()

	src := Sources{
		Notes:         fakeNotes{name: "granola", available: true, err: errors.New("unreadable")},
		NotesFallback: fakeNotes{name: "notion", available: true, notes: []report.Note{{ID: "n1", Title: "B"}}},
	}
	collected := Collect(context.Background(), testLogger(), src, Options{Now: testNow})
	if len(collected.Notes) != 1 || collected.Notes[0].ID != "n1" {
		t.Fatalf("fallback notes expected, got %v", collected.Notes)
	}
}

func TestCollectNotesFallbackWhenPrimaryUnavailable(t *testing.T) {
	t.Parallel()

	src := Sources{
		Notes:         fakeNotes{name: "granola", available: false, notes: []report.Note{{ID: "g1"}}},
		NotesFallback: fakeNotes{name: "notion", available: true, notes: []report.Note{{ID: "n1"}}},
	}
	collected := Collect(context.Background(), testLogger(), src, Options{Now: testNow})
	if len(collected.Notes) != 1 || collected.Notes[0].ID != "n1" {
		t.Fatalf("fallback notes expected, got %v", collected.Notes)
	}
}

func TestRunGenerationFailureIsFatal(t *testing.T) {
	t.Parallel()

	client := &fakeLLM{err: errors.New("rate limited")}
	_, err := Run(context.Background(), testLogger(), client, Sources{}, Options{Now: testNow})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
}

func TestRunNoClient(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), testLogger(), nil, Sources{}, Options{Now: testNow})
	if !errors.Is(err, ErrNoClient) {
		t.Fatalf("err = %v, want ErrNoClient", err)
	}
}

// End-to-end: recurring standup drops, both remaining events pick up
// their notes through title overlap plus time proximity.
func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	designStart := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	oneOnOneStart := time.Date(2026, time.August, 26, 14, 0, 0, 0, time.UTC)

	src := Sources{
		Calendar: fakeCalendar{events: []report.CalendarEvent{
			{ID: "e1", Title: "Design Sync", Start: designStart, SelfResponse: report.ResponseAccepted},
			{ID: "e2", Title: "1:1 Alice", Start: oneOnOneStart, SelfResponse: report.ResponseAccepted},
			{ID: "e3", Title: "Standup", Start: designStart, Recurring: true, SelfResponse: report.ResponseAccepted},
		}},
		Notes: fakeNotes{name: "granola", available: true, notes: []report.Note{
			{ID: "n1", Title: "Design Review", Date: designStart},
			{ID: "n2", Title: "Alice 1:1", Date: oneOnOneStart.Add(10 * time.Minute)},
		}},
		Prior: fakePrior{prior: &report.PriorReport{Priorities: []string{"Ship Z"}}},
	}

	client := &fakeLLM{reply: "### TLDR\nSolid week\n### What I did\n- Reviewed design\n### prioritizing next week\n- Ship Z"}
	draft, err := Run(context.Background(), testLogger(), client, src, Options{Now: testNow, AuthorName: "Zack Ciesinski"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(draft.MeetingsWithoutNotes) != 0 {
		t.Fatalf("MeetingsWithoutNotes = %v, want none", draft.MeetingsWithoutNotes)
	}
	if draft.TLDR != "Solid week" {
		t.Fatalf("TLDR = %q", draft.TLDR)
	}
	if !strings.Contains(client.lastUser, "### Design Sync") || !strings.Contains(client.lastUser, "### 1:1 Alice") {
		t.Fatalf("context missing meeting sections:\n%s", client.lastUser)
	}
	if strings.Contains(client.lastUser, "Standup") {
		t.Fatalf("recurring standup leaked into context:\n%s", client.lastUser)
	}
	if !strings.Contains(client.lastUser, "- Ship Z") {
		t.Fatalf("prior priorities missing from context:\n%s", client.lastUser)
	}
}

func TestBuildPromptInterpolatesHeader(t *testing.T) {
	t.Parallel()

	collected := Collect(context.Background(), testLogger(), Sources{}, Options{Now: testNow})
	system, user, err := BuildPrompt(collected, Options{Now: testNow, AuthorName: "Zack Ciesinski"})
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if !strings.Contains(system, "Zack Ciesinski") {
		t.Fatalf("system prompt missing author:\n%s", system)
	}
	if !strings.Contains(system, "Aug 24 to Aug 28, 2026") {
		t.Fatalf("system prompt missing week label:\n%s", system)
	}
	if !strings.Contains(user, "(no meetings this week)") || !strings.Contains(user, noPrioritiesMarker) {
		t.Fatalf("empty-context markers missing:\n%s", user)
	}
}
