// Package notion reads meeting notes and published reports from Notion
// databases. It is both the notes fallback when the local cache is not
// present and the only source for the prior report's priorities.
package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/zackciesinski-vercel/515-agent/internal/doctree"
)

const (
	sourceName   = "notion"
	dateProperty = "Date"
	pageSize     = 100
)

// pageBlocks fetches every child block of a page, following pagination.
func pageBlocks(ctx context.Context, client *notionapi.Client, pageID string) ([]doctree.Block, error) {
	var blocks []doctree.Block
	pagination := &notionapi.Pagination{PageSize: pageSize}
	for {
		resp, err := client.Block.GetChildren(ctx, notionapi.BlockID(pageID), pagination)
		if err != nil {
			return nil, fmt.Errorf("page blocks: %w", err)
		}
		for _, raw := range resp.Results {
			if block, ok := blockFromNotion(raw); ok {
				blocks = append(blocks, block)
			}
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		pagination.StartCursor = notionapi.Cursor(resp.NextCursor)
	}
	return blocks, nil
}

// blockFromNotion maps the handful of text-bearing block types to flat
// blocks. Anything else (images, embeds, tables) contributes nothing.
func blockFromNotion(raw notionapi.Block) (doctree.Block, bool) {
	switch b := raw.(type) {
	case *notionapi.ParagraphBlock:
		return doctree.Block{Kind: doctree.KindParagraph, Text: plainText(b.Paragraph.RichText)}, true
	case *notionapi.Heading1Block:
		return doctree.Block{Kind: doctree.KindHeading1, Text: plainText(b.Heading1.RichText)}, true
	case *notionapi.Heading2Block:
		return doctree.Block{Kind: doctree.KindHeading2, Text: plainText(b.Heading2.RichText)}, true
	case *notionapi.Heading3Block:
		return doctree.Block{Kind: doctree.KindHeading3, Text: plainText(b.Heading3.RichText)}, true
	case *notionapi.BulletedListItemBlock:
		return doctree.Block{Kind: doctree.KindBulleted, Text: plainText(b.BulletedListItem.RichText)}, true
	case *notionapi.NumberedListItemBlock:
		return doctree.Block{Kind: doctree.KindNumbered, Text: plainText(b.NumberedListItem.RichText)}, true
	case *notionapi.ToDoBlock:
		return doctree.Block{Kind: doctree.KindToDo, Text: plainText(b.ToDo.RichText), Checked: b.ToDo.Checked}, true
	default:
		return doctree.Block{}, false
	}
}

func plainText(rts []notionapi.RichText) string {
	out := ""
	for _, rt := range rts {
		out += rt.PlainText
	}
	return out
}

// pageTitle finds the page's title property, whatever it is named.
func pageTitle(page notionapi.Page) string {
	for _, prop := range page.Properties {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			return plainText(title.Title)
		}
	}
	return ""
}

// pageDate prefers the date property; pages without one fall back to
// their creation time.
func pageDate(page notionapi.Page) time.Time {
	if prop, ok := page.Properties[dateProperty].(*notionapi.DateProperty); ok {
		if prop.Date != nil && prop.Date.Start != nil {
			return time.Time(*prop.Date.Start)
		}
	}
	return page.CreatedTime
}
