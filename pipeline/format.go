package pipeline

import (
	"strconv"
	"strings"

	"github.com/zackciesinski-vercel/515-agent/report"
)

const (
	maxAttendeesShown   = 5
	maxNoteBodyChars    = 1500
	maxActionItemsShown = 5
	maxChatPreviews     = 3
	maxChatPreviewChars = 100

	noNotesMarker      = "No notes found for this meeting."
	noPrioritiesMarker = "None found."
)

// FormatMeetings renders each matched meeting as a titled section for the
// generation context.
func FormatMeetings(matched []report.MatchedMeeting) string {
	if len(matched) == 0 {
		return "(no meetings this week)"
	}

	sections := make([]string, 0, len(matched))
	for _, m := range matched {
		var b strings.Builder
		b.WriteString("### ")
		b.WriteString(strings.TrimSpace(m.Event.Title))
		b.WriteString("\n")
		if !m.Event.Start.IsZero() {
			b.WriteString(m.Event.Start.Format("Mon Jan 2, 15:04"))
			if !m.Event.End.IsZero() {
				b.WriteString(" to ")
				b.WriteString(m.Event.End.Format("15:04"))
			}
			b.WriteString("\n")
		}
		if line := attendeeLine(m.Event.Attendees); line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}

		if !m.HasNotes || m.Note == nil {
			b.WriteString(noNotesMarker)
			sections = append(sections, b.String())
			continue
		}

		if summary := strings.TrimSpace(m.Note.Summary); summary != "" {
			b.WriteString("Summary: ")
			b.WriteString(summary)
			b.WriteString("\n")
		}
		if body := strings.TrimSpace(m.Note.Body); body != "" {
			b.WriteString("Notes: ")
			b.WriteString(truncate(body, maxNoteBodyChars))
			b.WriteString("\n")
		}
		if len(m.Note.ActionItems) > 0 {
			b.WriteString("Action items:\n")
			for i, item := range m.Note.ActionItems {
				if i >= maxActionItemsShown {
					break
				}
				b.WriteString("- ")
				b.WriteString(strings.TrimSpace(item))
				b.WriteString("\n")
			}
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// FormatChat renders a per-channel digest with a few message previews.
func FormatChat(channels []report.ChannelActivity) string {
	if len(channels) == 0 {
		return "(no chat activity)"
	}

	sections := make([]string, 0, len(channels))
	for _, ch := range channels {
		var b strings.Builder
		b.WriteString("#")
		b.WriteString(strings.TrimSpace(ch.ChannelName))
		b.WriteString(": ")
		b.WriteString(messageCountLabel(ch.MessageCount))
		for i, msg := range ch.Messages {
			if i >= maxChatPreviews {
				break
			}
			preview := strings.TrimSpace(msg.Text)
			if preview == "" {
				continue
			}
			b.WriteString("\n- ")
			b.WriteString(truncate(preview, maxChatPreviewChars))
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}

// FormatPriorities renders prior-report priorities as a bullet list.
func FormatPriorities(prior *report.PriorReport) string {
	if prior == nil || len(prior.Priorities) == 0 {
		return noPrioritiesMarker
	}
	lines := make([]string, 0, len(prior.Priorities))
	for _, p := range prior.Priorities {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lines = append(lines, "- "+p)
	}
	if len(lines) == 0 {
		return noPrioritiesMarker
	}
	return strings.Join(lines, "\n")
}

func attendeeLine(attendees []string) string {
	names := make([]string, 0, len(attendees))
	for _, name := range attendees {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	shown := names
	overflow := 0
	if len(names) > maxAttendeesShown {
		shown = names[:maxAttendeesShown]
		overflow = len(names) - maxAttendeesShown
	}
	line := "Attendees: " + strings.Join(shown, ", ")
	if overflow > 0 {
		line += " (+" + strconv.Itoa(overflow) + " more)"
	}
	return line
}

func messageCountLabel(count int) string {
	if count == 1 {
		return "1 message"
	}
	return strconv.Itoa(count) + " messages"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
