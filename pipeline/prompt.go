package pipeline

import (
	_ "embed"
	"time"

	"github.com/zackciesinski-vercel/515-agent/internal/prompttmpl"
)

//go:embed prompts/system.tmpl
var systemPromptSource string

//go:embed prompts/context.tmpl
var contextPromptSource string

var (
	systemPromptTemplate  = prompttmpl.MustParse("generate_system_prompt", systemPromptSource, nil)
	contextPromptTemplate = prompttmpl.MustParse("generate_context", contextPromptSource, nil)
)

type systemPromptData struct {
	AuthorName string
	Today      string
	WeekLabel  string
}

type contextPromptData struct {
	Meetings   string
	Chat       string
	Priorities string
}

// BuildPrompt renders the fixed instruction template and the formatted
// source context for the single generation call.
func BuildPrompt(c Collected, opts Options) (system string, user string, err error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	system, err = prompttmpl.Render(systemPromptTemplate, systemPromptData{
		AuthorName: opts.AuthorName,
		Today:      now.Format("Monday, January 2, 2006"),
		WeekLabel:  c.Span.Label(),
	})
	if err != nil {
		return "", "", err
	}

	user, err = prompttmpl.Render(contextPromptTemplate, contextPromptData{
		Meetings:   FormatMeetings(c.Matched),
		Chat:       FormatChat(c.Chat),
		Priorities: FormatPriorities(c.Prior),
	})
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}
