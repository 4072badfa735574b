package notion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jomei/notionapi"

	"github.com/zackciesinski-vercel/515-agent/internal/doctree"
	"github.com/zackciesinski-vercel/515-agent/internal/extract"
	"github.com/zackciesinski-vercel/515-agent/report"
)

// PriorSource finds the most recent published report so its priorities
// can be carried into the next draft.
type PriorSource struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	logger     *slog.Logger
}

func NewPriorSource(apiKey, databaseID string, logger *slog.Logger) *PriorSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriorSource{
		client:     notionapi.NewClient(notionapi.Token(apiKey)),
		databaseID: notionapi.DatabaseID(databaseID),
		logger:     logger,
	}
}

// FetchLatest returns the newest report created before the given time,
// or nil when the database has none. Only one page of recent reports is
// scanned; anything older is no longer worth carrying forward.
func (s *PriorSource) FetchLatest(ctx context.Context, before time.Time) (*report.PriorReport, error) {
	resp, err := s.client.Database.Query(ctx, s.databaseID, &notionapi.DatabaseQueryRequest{
		Sorts: []notionapi.SortObject{{
			Timestamp: notionapi.TimestampCreated,
			Direction: notionapi.SortOrderDESC,
		}},
		PageSize: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("query reports database: %w", err)
	}

	for _, page := range resp.Results {
		if !page.CreatedTime.Before(before) {
			continue
		}

		blocks, err := pageBlocks(ctx, s.client, page.ID.String())
		if err != nil {
			return nil, err
		}
		raw := doctree.RenderBlocks(blocks)

		prior := &report.PriorReport{
			DateLabel:  pageDate(page).Format("2006-01-02"),
			Priorities: extract.Priorities(raw),
			Raw:        raw,
		}
		s.logger.Debug("prior report found", "date", prior.DateLabel, "priorities", len(prior.Priorities))
		return prior, nil
	}
	return nil, nil
}
