// Package doctree flattens the two semi-structured document shapes the
// pipeline reads and writes: the note tool's nested content tree and the
// publishing tool's flat block list.
package doctree

import "strings"

// Node is one node of a nested content tree. A node is a leaf when it
// carries text; containers hold ordered children. Both may be present,
// and unknown types simply contribute nothing.
type Node struct {
	Type    string `json:"type,omitempty"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
}

// Flatten walks the tree depth-first and joins every leaf text with a
// single space. It never fails; an empty tree yields an empty string.
func Flatten(n Node) string {
	parts := make([]string, 0, 8)
	collectText(n, &parts)
	return strings.Join(parts, " ")
}

func collectText(n Node, parts *[]string) {
	if text := strings.TrimSpace(n.Text); text != "" {
		*parts = append(*parts, text)
	}
	for _, child := range n.Content {
		collectText(child, parts)
	}
}

// BlockKind tags a flat document block. The names follow the publishing
// tool's block types.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading1  BlockKind = "heading_1"
	KindHeading2  BlockKind = "heading_2"
	KindHeading3  BlockKind = "heading_3"
	KindBulleted  BlockKind = "bulleted_list_item"
	KindNumbered  BlockKind = "numbered_list_item"
	KindToDo      BlockKind = "to_do"
)

type Block struct {
	Kind    BlockKind
	Text    string
	Checked bool
}

var blockPrefixes = map[BlockKind]string{
	KindParagraph: "",
	KindHeading1:  "# ",
	KindHeading2:  "## ",
	KindHeading3:  "### ",
	KindBulleted:  "• ",
	KindNumbered:  "- ",
}

// RenderBlocks renders each block as one line with a kind-specific prefix
// and joins lines with newlines. Unrecognized kinds are skipped.
func RenderBlocks(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block.Kind == KindToDo {
			marker := "[ ] "
			if block.Checked {
				marker = "[x] "
			}
			lines = append(lines, marker+block.Text)
			continue
		}
		prefix, ok := blockPrefixes[block.Kind]
		if !ok {
			continue
		}
		lines = append(lines, prefix+block.Text)
	}
	return strings.Join(lines, "\n")
}
