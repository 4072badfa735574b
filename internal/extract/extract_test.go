package extract

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestActionItems(t *testing.T) {
	t.Parallel()

	got := ActionItems("- [ ] ship docs\nrandom line")
	if want := []string{"- [ ] ship docs"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ActionItems = %v, want %v", got, want)
	}
}

func TestActionItemsLabels(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Action: follow up with infra",
		"TODO: write the RFC",
		"follow up: ping legal",
		"Next step: schedule review",
		"actionable insight is not a task",
		"",
	}, "\n")

	got := ActionItems(text)
	want := []string{
		"Action: follow up with infra",
		"TODO: write the RFC",
		"follow up: ping legal",
		"Next step: schedule review",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ActionItems = %v, want %v", got, want)
	}
}

func TestMentions(t *testing.T) {
	t.Parallel()

	text := "Synced with @Alice Chen about the launch. @Bob owes @Alice Chen a doc. ping @bob too"
	got := Mentions(text)
	sort.Strings(got)
	want := []string{"Alice Chen", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Mentions = %v, want %v", got, want)
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"## Summary",
		"",
		"We agreed to ship Friday.",
		"Rollback plan owned by infra.",
		"",
		"unrelated trailing line",
	}, "\n")

	got := Summary(text)
	want := "We agreed to ship Friday. Rollback plan owned by infra."
	if got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
}

func TestSummaryStopsAtHeading(t *testing.T) {
	t.Parallel()

	text := "TLDR\nshort version\n# Details\nlong version"
	if got := Summary(text); got != "short version" {
		t.Fatalf("Summary = %q, want %q", got, "short version")
	}
}

func TestSummaryHeadingBeforeContentSkipped(t *testing.T) {
	t.Parallel()

	text := "Summary\n### Recap\nwe shipped it\nmore detail\n# Next\nnot summary"
	if got := Summary(text); got != "we shipped it more detail" {
		t.Fatalf("Summary = %q, want %q", got, "we shipped it more detail")
	}
}

func TestSummaryMissing(t *testing.T) {
	t.Parallel()

	if got := Summary("just notes\nno section here"); got != "" {
		t.Fatalf("Summary = %q, want empty", got)
	}
}

func TestSummaryTruncates(t *testing.T) {
	t.Parallel()

	text := "Summary\n" + strings.Repeat("a", 800)
	got := Summary(text)
	if len([]rune(got)) != 500 {
		t.Fatalf("len(Summary) = %d, want 500", len([]rune(got)))
	}
}

func TestPriorities(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"### What I'm prioritizing next week",
		"- Ship the correlation engine",
		"• Close hiring loop",
		"* Draft Q4 plan",
		"not a bullet, skipped",
		"-",
		"### Meetings without notes",
		"- not a priority",
	}, "\n")

	got := Priorities(text)
	want := []string{"Ship the correlation engine", "Close hiring loop", "Draft Q4 plan"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Priorities = %v, want %v", got, want)
	}
}

func TestPrioritiesMissing(t *testing.T) {
	t.Parallel()

	if got := Priorities("nothing relevant"); len(got) != 0 {
		t.Fatalf("Priorities = %v, want empty", got)
	}
}
