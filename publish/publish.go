// Package publish renders a finished draft to its destination: a Notion
// reports database or a local markdown file.
package publish

import (
	"context"

	"github.com/zackciesinski-vercel/515-agent/report"
)

// Renderer writes a draft somewhere and returns a human-readable
// location (a URL or a file path).
type Renderer interface {
	Render(ctx context.Context, draft report.DraftReport) (string, error)
}
