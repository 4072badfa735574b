package report

import "strings"

// RenderMarkdown renders a draft in the 5:15 layout. The section headers
// match what ParseDraft scans for, so a rendered report can be re-parsed
// (the prior-report collaborator relies on this when scanning old pages).
func RenderMarkdown(d DraftReport) string {
	var b strings.Builder
	b.WriteString("# 5:15 - ")
	b.WriteString(strings.TrimSpace(d.DateLabel))
	b.WriteString("\n\n")
	if week := strings.TrimSpace(d.WeekLabel); week != "" {
		b.WriteString("Week of ")
		b.WriteString(week)
		b.WriteString("\n\n")
	}

	b.WriteString("### TLDR\n\n")
	b.WriteString(strings.TrimSpace(d.TLDR))
	b.WriteString("\n\n")

	b.WriteString("### What I did\n\n")
	writeBullets(&b, d.WhatIDid, "(nothing captured)")
	b.WriteString("\n")

	b.WriteString("### Reflection\n\n")
	b.WriteString(strings.TrimSpace(d.Reflection))
	b.WriteString("\n\n")

	b.WriteString("### What I'm prioritizing next week\n\n")
	writeBullets(&b, d.Priorities, "(nothing captured)")
	b.WriteString("\n")

	if len(d.MeetingsWithoutNotes) > 0 {
		b.WriteString("### Meetings without notes\n\n")
		writeBullets(&b, d.MeetingsWithoutNotes, "")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeBullets(b *strings.Builder, items []string, emptyText string) {
	if len(items) == 0 {
		if emptyText != "" {
			b.WriteString(emptyText)
			b.WriteString("\n")
		}
		return
	}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}
