package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/costcase/internal/doctree"
)

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// SupportedExtensions lists file extensions that can be parsed.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".csv":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// builder nests sections by heading level while blocks accumulate on the
// innermost open section.
type builder struct {
	tree  *doctree.DocTree
	root  *doctree.DocNode
	stack []*doctree.DocNode
}

func newBuilder(title string) *builder {
	root := &doctree.DocNode{Title: title}
	return &builder{
		tree:  &doctree.DocTree{Title: title},
		root:  root,
		stack: []*doctree.DocNode{root},
	}
}

func (b *builder) heading(level int, title string) {
	n := &doctree.DocNode{Title: title, Level: level}
	// Pop until the top has a lower level.
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].Level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, n)
	b.stack = append(b.stack, n)
}

func (b *builder) add(bl doctree.Block) {
	top := b.stack[len(b.stack)-1]
	top.Blocks = append(top.Blocks, bl)
}

// done returns the tree. Content before the first heading becomes an
// untitled leading section.
func (b *builder) done() *doctree.DocTree {
	if len(b.root.Blocks) > 0 {
		b.tree.Children = append(b.tree.Children, &doctree.DocNode{Blocks: b.root.Blocks})
	}
	b.tree.Children = append(b.tree.Children, b.root.Children...)
	return b.tree
}

func trimExt(filename string, exts ...string) string {
	for _, ext := range exts {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename
}
