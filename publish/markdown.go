package publish

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/zackciesinski-vercel/515-agent/internal/doctree"
)

var markdownParser = goldmark.New()

// BlocksFromMarkdown parses markdown into the flat block list the Notion
// renderer uploads. Only headings, paragraphs, and list items survive;
// inline styling is flattened to plain text.
func BlocksFromMarkdown(source string) []doctree.Block {
	src := []byte(source)
	root := markdownParser.Parser().Parse(text.NewReader(src))

	var blocks []doctree.Block
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, doctree.Block{Kind: headingKind(node.Level), Text: textOf(node, src)})
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			blocks = append(blocks, listItemBlock(node, src))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			blocks = append(blocks, paragraphBlock(textOf(node, src)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

func headingKind(level int) doctree.BlockKind {
	switch level {
	case 1:
		return doctree.KindHeading1
	case 2:
		return doctree.KindHeading2
	default:
		return doctree.KindHeading3
	}
}

func listItemBlock(node *ast.ListItem, src []byte) doctree.Block {
	kind := doctree.KindBulleted
	if list, ok := node.Parent().(*ast.List); ok && list.IsOrdered() {
		kind = doctree.KindNumbered
	}
	block := doctree.Block{Kind: kind, Text: textOf(node, src)}
	if todo, ok := checkboxBlock(block.Text); ok {
		return todo
	}
	return block
}

func paragraphBlock(text string) doctree.Block {
	if todo, ok := checkboxBlock(text); ok {
		return todo
	}
	return doctree.Block{Kind: doctree.KindParagraph, Text: text}
}

// checkboxBlock recognizes the "[ ]"/"[x]" convention that survives the
// round trip through plain text.
func checkboxBlock(text string) (doctree.Block, bool) {
	switch {
	case strings.HasPrefix(text, "[ ] "):
		return doctree.Block{Kind: doctree.KindToDo, Text: strings.TrimPrefix(text, "[ ] ")}, true
	case strings.HasPrefix(text, "[x] "):
		return doctree.Block{Kind: doctree.KindToDo, Text: strings.TrimPrefix(text, "[x] "), Checked: true}, true
	}
	return doctree.Block{}, false
}

// textOf joins the text segments under a node, depth-first.
func textOf(node ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
