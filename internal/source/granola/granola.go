// Package granola reads meeting notes from the Granola desktop app's
// local cache file. The cache is JSON wrapping a second JSON document in
// a string, so it is decoded in two steps.
package granola

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/zackciesinski-vercel/515-agent/internal/doctree"
	"github.com/zackciesinski-vercel/515-agent/internal/extract"
	"github.com/zackciesinski-vercel/515-agent/internal/weekspan"
	"github.com/zackciesinski-vercel/515-agent/report"
)

const sourceName = "granola"

type Source struct {
	cachePath string
	logger    *slog.Logger
}

func New(cachePath string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{cachePath: cachePath, logger: logger}
}

func (s *Source) Name() string { return sourceName }

// Available reports whether the cache file exists. The app may not be
// installed on this machine at all; that is not an error.
func (s *Source) Available() bool {
	info, err := os.Stat(s.cachePath)
	return err == nil && !info.IsDir()
}

func (s *Source) FetchNotes(ctx context.Context, span weekspan.Span) ([]report.Note, error) {
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	docs, err := decodeCache(data)
	if err != nil {
		return nil, err
	}

	notes := make([]report.Note, 0, len(docs))
	for id, doc := range docs {
		createdAt, err := time.Parse(time.RFC3339, doc.CreatedAt)
		if err != nil {
			s.logger.Debug("skipping document with bad created_at", "id", id, "value", doc.CreatedAt)
			continue
		}
		if !span.Contains(createdAt) {
			continue
		}
		notes = append(notes, noteFromDocument(id, doc, createdAt))
	}
	s.logger.Debug("cache scanned", "documents", len(docs), "in_window", len(notes))
	return notes, nil
}

type cacheEnvelope struct {
	Cache string `json:"cache"`
}

type cacheState struct {
	State struct {
		Documents map[string]cacheDocument `json:"documents"`
	} `json:"state"`
}

type cacheDocument struct {
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	People    []struct {
		Name string `json:"name"`
	} `json:"people"`
	Notes doctree.Node `json:"notes"`
}

// decodeCache handles both the wrapped shape, where the real payload is
// a JSON string under "cache", and an already-unwrapped payload.
func decodeCache(data []byte) (map[string]cacheDocument, error) {
	var envelope cacheEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Cache != "" {
		data = []byte(envelope.Cache)
	}

	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode cache payload: %w", err)
	}
	return state.State.Documents, nil
}

func noteFromDocument(id string, doc cacheDocument, createdAt time.Time) report.Note {
	body := flattenLines(doc.Notes)

	attendees := make([]string, 0, len(doc.People))
	for _, person := range doc.People {
		if person.Name != "" {
			attendees = append(attendees, person.Name)
		}
	}

	// No Summary here: the cache body is the raw transcript notes, not a
	// document with a summary section. Only the Notion source fills it.
	return report.Note{
		ID:          id,
		Title:       doc.Title,
		Date:        createdAt,
		Body:        body,
		Attendees:   attendees,
		ActionItems: extract.ActionItems(body),
		Mentions:    extract.Mentions(body),
		Source:      sourceName,
	}
}

// flattenLines keeps each top-level child of the content tree on its own
// line so the line-based extractors still see checkbox and label lines.
// Heading nodes get a "#" marker, which is what ends a summary section.
func flattenLines(n doctree.Node) string {
	if len(n.Content) == 0 {
		return doctree.Flatten(n)
	}
	lines := make([]string, 0, len(n.Content))
	for _, child := range n.Content {
		line := doctree.Flatten(child)
		if line == "" {
			continue
		}
		if strings.HasPrefix(child.Type, "heading") {
			line = "# " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
