package publish

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zackciesinski-vercel/515-agent/internal/doctree"
	"github.com/zackciesinski-vercel/515-agent/report"
)

func TestBlocksFromMarkdown(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"# 5:15 - 2026-08-28",
		"",
		"Week of Aug 24 to Aug 28, 2026",
		"",
		"### TLDR",
		"",
		"Solid week overall.",
		"",
		"### What I did",
		"",
		"- Shipped the rollout",
		"- [ ] left over task",
		"",
		"1. first ordered",
	}, "\n")

	got := BlocksFromMarkdown(source)
	want := []doctree.Block{
		{Kind: doctree.KindHeading1, Text: "5:15 - 2026-08-28"},
		{Kind: doctree.KindParagraph, Text: "Week of Aug 24 to Aug 28, 2026"},
		{Kind: doctree.KindHeading3, Text: "TLDR"},
		{Kind: doctree.KindParagraph, Text: "Solid week overall."},
		{Kind: doctree.KindHeading3, Text: "What I did"},
		{Kind: doctree.KindBulleted, Text: "Shipped the rollout"},
		{Kind: doctree.KindToDo, Text: "left over task"},
		{Kind: doctree.KindNumbered, Text: "first ordered"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BlocksFromMarkdown() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestBlocksFromMarkdownFlattensInlineStyle(t *testing.T) {
	t.Parallel()

	got := BlocksFromMarkdown("some **bold** and *italic* text")
	if len(got) != 1 {
		t.Fatalf("got %d blocks, want 1: %+v", len(got), got)
	}
	if got[0].Text != "some bold and italic text" {
		t.Fatalf("Text = %q", got[0].Text)
	}
}

func TestBlocksFromMarkdownEmpty(t *testing.T) {
	t.Parallel()

	if got := BlocksFromMarkdown(""); len(got) != 0 {
		t.Fatalf("BlocksFromMarkdown(\"\") = %+v", got)
	}
}

func TestRenderedReportSurvivesBlockConversion(t *testing.T) {
	t.Parallel()

	draft := report.DraftReport{
		DateLabel:  "2026-08-28",
		WeekLabel:  "Aug 24 to Aug 28, 2026",
		TLDR:       "Shipped the migration.",
		WhatIDid:   []string{"Migrated the database", "Reviewed designs"},
		Reflection: report.ReflectionPlaceholder,
		Priorities: []string{"Start the rollout"},
	}

	blocks := BlocksFromMarkdown(report.RenderMarkdown(draft))

	var bullets []string
	for _, b := range blocks {
		if b.Kind == doctree.KindBulleted {
			bullets = append(bullets, b.Text)
		}
	}
	want := []string{"Migrated the database", "Reviewed designs", "Start the rollout"}
	if !reflect.DeepEqual(bullets, want) {
		t.Fatalf("bullets = %v, want %v", bullets, want)
	}
}

func TestLocalRendererWritesFrontmatter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	renderer := NewLocalRenderer(filepath.Join(dir, "reports"), nil)

	draft := report.DraftReport{
		DateLabel:  "2026-08-28",
		WeekLabel:  "Aug 24 to Aug 28, 2026",
		TLDR:       "Fine week.",
		Reflection: report.ReflectionPlaceholder,
	}
	path, err := renderer.Render(context.Background(), draft)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if filepath.Base(path) != "515-2026-08-28.md" {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		t.Fatalf("missing frontmatter:\n%s", content)
	}
	if !strings.Contains(content, "date: \"2026-08-28\"") && !strings.Contains(content, "date: 2026-08-28") {
		t.Fatalf("frontmatter missing date:\n%s", content)
	}
	if !strings.Contains(content, "# 5:15 - 2026-08-28") {
		t.Fatalf("markdown body missing:\n%s", content)
	}
}

func TestToNotionBlocksMapsEveryKind(t *testing.T) {
	t.Parallel()

	in := []doctree.Block{
		{Kind: doctree.KindHeading1, Text: "a"},
		{Kind: doctree.KindHeading2, Text: "b"},
		{Kind: doctree.KindHeading3, Text: "c"},
		{Kind: doctree.KindParagraph, Text: "d"},
		{Kind: doctree.KindBulleted, Text: "e"},
		{Kind: doctree.KindNumbered, Text: "f"},
		{Kind: doctree.KindToDo, Text: "g", Checked: true},
	}
	out := toNotionBlocks(in)
	if len(out) != len(in) {
		t.Fatalf("got %d blocks, want %d", len(out), len(in))
	}
	for i, block := range out {
		if block.GetType() == "" {
			t.Fatalf("block %d has no type", i)
		}
	}
}
