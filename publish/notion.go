package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jomei/notionapi"

	"github.com/zackciesinski-vercel/515-agent/internal/doctree"
	"github.com/zackciesinski-vercel/515-agent/report"
)

// NotionRenderer creates a page per report in the reports database.
type NotionRenderer struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	logger     *slog.Logger
}

func NewNotionRenderer(apiKey, databaseID string, logger *slog.Logger) *NotionRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotionRenderer{
		client:     notionapi.NewClient(notionapi.Token(apiKey)),
		databaseID: notionapi.DatabaseID(databaseID),
		logger:     logger,
	}
}

func (r *NotionRenderer) Render(ctx context.Context, draft report.DraftReport) (string, error) {
	properties := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{richText("5:15 " + draft.DateLabel)},
		},
	}
	if day, err := time.Parse("2006-01-02", draft.DateLabel); err == nil {
		date := notionapi.Date(day)
		properties["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &date},
		}
	}

	blocks := BlocksFromMarkdown(report.RenderMarkdown(draft))
	page, err := r.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: r.databaseID,
		},
		Properties: properties,
		Children:   toNotionBlocks(blocks),
	})
	if err != nil {
		return "", fmt.Errorf("create report page: %w", err)
	}

	r.logger.Info("report published", "page", page.ID.String())
	if page.URL != "" {
		return page.URL, nil
	}
	return page.ID.String(), nil
}

func toNotionBlocks(blocks []doctree.Block) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(blocks))
	for _, block := range blocks {
		rich := []notionapi.RichText{richText(block.Text)}
		switch block.Kind {
		case doctree.KindHeading1:
			out = append(out, &notionapi.Heading1Block{
				BasicBlock: basicBlock(notionapi.BlockTypeHeading1),
				Heading1:   notionapi.Heading{RichText: rich},
			})
		case doctree.KindHeading2:
			out = append(out, &notionapi.Heading2Block{
				BasicBlock: basicBlock(notionapi.BlockTypeHeading2),
				Heading2:   notionapi.Heading{RichText: rich},
			})
		case doctree.KindHeading3:
			out = append(out, &notionapi.Heading3Block{
				BasicBlock: basicBlock(notionapi.BlockTypeHeading3),
				Heading3:   notionapi.Heading{RichText: rich},
			})
		case doctree.KindBulleted:
			out = append(out, &notionapi.BulletedListItemBlock{
				BasicBlock:       basicBlock(notionapi.BlockTypeBulletedListItem),
				BulletedListItem: notionapi.ListItem{RichText: rich},
			})
		case doctree.KindNumbered:
			out = append(out, &notionapi.NumberedListItemBlock{
				BasicBlock:       basicBlock(notionapi.BlockTypeNumberedListItem),
				NumberedListItem: notionapi.ListItem{RichText: rich},
			})
		case doctree.KindToDo:
			out = append(out, &notionapi.ToDoBlock{
				BasicBlock: basicBlock(notionapi.BlockTypeToDo),
				ToDo:       notionapi.ToDo{RichText: rich, Checked: block.Checked},
			})
		case doctree.KindParagraph:
			out = append(out, &notionapi.ParagraphBlock{
				BasicBlock: basicBlock(notionapi.BlockTypeParagraph),
				Paragraph:  notionapi.Paragraph{RichText: rich},
			})
		}
	}
	return out
}

func basicBlock(blockType notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: blockType}
}

func richText(content string) notionapi.RichText {
	return notionapi.RichText{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: content},
	}
}
