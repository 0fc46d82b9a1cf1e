package doctree

import (
	"fmt"
	"strings"
)

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for a headingless preamble)
	Level    int        // Heading level, 1 for top-level sections
	Blocks   []Block    // Content of this node in document order
	Children []*DocNode // Subsections
}

// Kind tells how a block is rendered. Formula blocks carry one formula in
// markup. Table blocks name a registered table in Ref or carry literal
// cells in Rows. Chart blocks name a registered chart.
type Kind int

const (
	Paragraph Kind = iota
	Formula
	Table
	Chart
	ListItem
	Caption
)

var kindNames = [...]string{"paragraph", "formula", "table", "chart", "item", "caption"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Block is one piece of section content.
type Block struct {
	Kind Kind
	Text string     // paragraph, formula or list item text
	Ref  string     // table or chart id
	Rows [][]string // literal table cells, first row is the header
}

// Text joins the paragraph-like blocks of a node.
func (n *DocNode) Text() string {
	var parts []string
	for _, b := range n.Blocks {
		switch b.Kind {
		case Paragraph, ListItem, Formula, Caption:
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

// Walk visits every node depth-first in document order.
func (t *DocTree) Walk(fn func(n *DocNode, depth int)) {
	var walk func(nodes []*DocNode, depth int)
	walk = func(nodes []*DocNode, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(t.Children, 0)
}

// Outline renders the heading structure with block counts, one line per
// node, indented two spaces per depth.
func (t *DocTree) Outline() string {
	var b strings.Builder
	b.WriteString(t.Title)
	b.WriteByte('\n')
	t.Walk(func(n *DocNode, depth int) {
		b.WriteString(strings.Repeat("  ", depth+1))
		title := n.Title
		if title == "" {
			title = "(untitled)"
		}
		b.WriteString(title)
		counts := make(map[Kind]int)
		for _, bl := range n.Blocks {
			counts[bl.Kind]++
		}
		for k := Paragraph; k <= Caption; k++ {
			if counts[k] > 0 {
				fmt.Fprintf(&b, " [%s %d]", k, counts[k])
			}
		}
		b.WriteByte('\n')
	})
	return strings.TrimRight(b.String(), "\n")
}
