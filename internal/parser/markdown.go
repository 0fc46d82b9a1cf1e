package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/costcase/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced block languages with a meaning in narrative markdown. A formula
// fence holds one formula per line, table and chart fences one registered
// id per line.
const (
	FenceFormula = "formula"
	FenceTable   = "table"
	FenceChart   = "chart"
)

// InlineFormula delimits formula markup inside paragraph text. Code spans
// in markdown come through wrapped in it.
const InlineFormula = "`"

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(src, trimExt(filename, ".md", ".markdown")), nil
}

// ParseMarkdown builds a tree from markdown source. Headings nest by level;
// everything else becomes blocks of the innermost heading.
func ParseMarkdown(src []byte, title string) *doctree.DocTree {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	b := newBuilder(title)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			b.heading(node.Level, inlineText(node, src))
		case *ast.FencedCodeBlock:
			fenced(b, node, src)
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if t := inlineText(item, src); t != "" {
					b.add(doctree.Block{Kind: doctree.ListItem, Text: t})
				}
			}
		case *extast.Table:
			b.add(doctree.Block{Kind: doctree.Table, Rows: tableRows(node, src)})
		default:
			if t := extractText(n, src); t != "" {
				b.add(doctree.Block{Kind: doctree.Paragraph, Text: t})
			}
		}
	}
	return b.done()
}

func fenced(b *builder, node *ast.FencedCodeBlock, src []byte) {
	lang := string(node.Language(src))
	var lines []string
	for i := 0; i < node.Lines().Len(); i++ {
		seg := node.Lines().At(i)
		if l := strings.TrimSpace(string(seg.Value(src))); l != "" {
			lines = append(lines, l)
		}
	}
	switch lang {
	case FenceFormula:
		for _, l := range lines {
			b.add(doctree.Block{Kind: doctree.Formula, Text: l})
		}
	case FenceTable:
		for _, l := range lines {
			b.add(doctree.Block{Kind: doctree.Table, Ref: l})
		}
	case FenceChart:
		for _, l := range lines {
			b.add(doctree.Block{Kind: doctree.Chart, Ref: l})
		}
	default:
		if len(lines) > 0 {
			b.add(doctree.Block{Kind: doctree.Paragraph, Text: strings.Join(lines, "\n")})
		}
	}
}

func tableRows(t *extast.Table, src []byte) [][]string {
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var row []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			row = append(row, inlineText(c, src))
		}
		rows = append(rows, row)
	}
	return rows
}

// extractText gets the text content of a goldmark block node.
func extractText(n ast.Node, src []byte) string {
	if n.Type() != ast.TypeBlock {
		return ""
	}
	if n.HasChildren() {
		return inlineText(n, src)
	}
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimSpace(buf.String())
}

// inlineText flattens inline children. Soft line breaks become spaces and
// code spans keep their InlineFormula delimiters.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() {
					buf.WriteByte('\n')
				} else if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.CodeSpan:
				buf.WriteString(InlineFormula)
				walk(t)
				buf.WriteString(InlineFormula)
			default:
				if c.Type() == ast.TypeBlock && buf.Len() > 0 {
					buf.WriteByte(' ')
				}
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
