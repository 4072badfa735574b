package notion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jomei/notionapi"

	"github.com/zackciesinski-vercel/515-agent/internal/doctree"
	"github.com/zackciesinski-vercel/515-agent/internal/extract"
	"github.com/zackciesinski-vercel/515-agent/internal/weekspan"
	"github.com/zackciesinski-vercel/515-agent/report"
)

// NotesSource reads meeting notes from a Notion database whose pages
// carry a date property inside the reporting window.
type NotesSource struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	logger     *slog.Logger
}

func NewNotesSource(apiKey, databaseID string, logger *slog.Logger) *NotesSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotesSource{
		client:     notionapi.NewClient(notionapi.Token(apiKey)),
		databaseID: notionapi.DatabaseID(databaseID),
		logger:     logger,
	}
}

func (s *NotesSource) Name() string { return sourceName }

func (s *NotesSource) Available() bool { return s.databaseID != "" }

func (s *NotesSource) FetchNotes(ctx context.Context, span weekspan.Span) ([]report.Note, error) {
	after := notionapi.Date(span.Start)
	before := notionapi.Date(span.End)
	request := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: dateProperty,
			Date: &notionapi.DateFilterCondition{
				OnOrAfter:  &after,
				OnOrBefore: &before,
			},
		},
		PageSize: pageSize,
	}

	var notes []report.Note
	for {
		resp, err := s.client.Database.Query(ctx, s.databaseID, request)
		if err != nil {
			return nil, fmt.Errorf("query notes database: %w", err)
		}
		for _, page := range resp.Results {
			note, err := s.noteFromPage(ctx, page, span)
			if err != nil {
				return nil, err
			}
			if note == nil {
				continue
			}
			notes = append(notes, *note)
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		request.StartCursor = resp.NextCursor
	}
	s.logger.Debug("notes database queried", "notes", len(notes))
	return notes, nil
}

func (s *NotesSource) noteFromPage(ctx context.Context, page notionapi.Page, span weekspan.Span) (*report.Note, error) {
	date := pageDate(page)
	if !span.Contains(date) {
		return nil, nil
	}

	blocks, err := pageBlocks(ctx, s.client, page.ID.String())
	if err != nil {
		return nil, err
	}
	body := doctree.RenderBlocks(blocks)

	return &report.Note{
		ID:          page.ID.String(),
		Title:       pageTitle(page),
		Date:        date,
		Summary:     extract.Summary(body),
		Body:        body,
		ActionItems: extract.ActionItems(body),
		Mentions:    extract.Mentions(body),
		Source:      sourceName,
	}, nil
}
