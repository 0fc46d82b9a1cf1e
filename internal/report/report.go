// Package report writes a computed case study as a Word document: the
// narrative outline becomes headings and justified paragraphs, formula
// blocks become centred runs with sub- and superscripts, and table and
// chart references are filled from the study.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/chart"
	"github.com/dgallion1/costcase/internal/doctree"
	"github.com/dgallion1/costcase/internal/formula"
	"github.com/dgallion1/costcase/internal/outstore"
	"github.com/fumiama/go-docx"
)

// Sizes are in half-points, indents in twips.
const (
	titleSize   = "32"
	headingSize = "28"
	bodySize    = "28"
	captionSize = "24"
	tableSize   = "22"

	firstLineIndent = 709 // 1.25 cm
	listIndent      = 709
	tableWidth      = 9354 // A4 text width with 2 cm and 1.5 cm margins
)

// Options control rendering.
type Options struct {
	Font   string
	Charts bool
	Log    *slog.Logger
}

func DefaultOptions() Options {
	return Options{Font: "Times New Roman", Charts: true}
}

// Stats counts what a build wrote.
type Stats struct {
	Headings   int
	Paragraphs int
	Formulas   int
	Tables     int
	Charts     int
}

type writer struct {
	doc   *docx.Docx
	study *casestudy.Study
	opts  Options
	log   *slog.Logger
	stats Stats
}

// Build lays tree out as a document. Table and chart blocks with a Ref are
// looked up in the registries and filled from s; literal table blocks are
// written as they are.
func Build(ctx context.Context, s *casestudy.Study, tree *doctree.DocTree, opts Options) (*docx.Docx, Stats, error) {
	if opts.Font == "" {
		opts.Font = DefaultOptions().Font
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	w := &writer{doc: docx.New().WithDefaultTheme(), study: s, opts: opts, log: log}
	w.titlePage(tree.Title)

	var err error
	tree.Walk(func(n *doctree.DocNode, depth int) {
		if err != nil {
			return
		}
		if err = ctx.Err(); err != nil {
			return
		}
		if n.Title != "" {
			w.heading(n.Title, depth+1)
		}
		for _, b := range n.Blocks {
			if err = w.block(b); err != nil {
				err = fmt.Errorf("%s: %w", n.Title, err)
				return
			}
		}
	})
	if err != nil {
		return nil, w.stats, err
	}
	return w.doc, w.stats, nil
}

// Render writes tree as a document and returns it encoded.
func Render(ctx context.Context, s *casestudy.Study, tree *doctree.DocTree, opts Options) ([]byte, Stats, error) {
	doc, stats, err := Build(ctx, s, tree, opts)
	if err != nil {
		return nil, stats, err
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, stats, fmt.Errorf("report: encode docx: %w", err)
	}
	return buf.Bytes(), stats, nil
}

// Save puts an encoded report into store under key.
func Save(ctx context.Context, store outstore.Store, key string, data []byte) (outstore.Info, error) {
	info, err := store.Put(ctx, key, bytes.NewReader(data), outstore.DocxContentType)
	if err != nil {
		return outstore.Info{}, fmt.Errorf("report: store %s: %w", key, err)
	}
	return info, nil
}

func (w *writer) titlePage(title string) {
	p := w.doc.AddParagraph().Justification("center")
	w.text(p, title).Size(titleSize).Bold()
	sub := w.doc.AddParagraph().Justification("center")
	w.text(sub, fmt.Sprintf("Плановый объём выпуска %s шт./год", count(float64(w.study.Inputs.PlanVolume)))).Size(bodySize)
	w.doc.AddParagraph().AddPageBreaks()
}

func (w *writer) heading(title string, level int) {
	level = min(level, 6)
	p := w.doc.AddParagraph().Style(fmt.Sprintf("Heading%d", level))
	if level == 1 {
		p.Justification("center")
	}
	w.text(p, title).Size(headingSize).Bold()
	w.stats.Headings++
}

func (w *writer) block(b doctree.Block) error {
	switch b.Kind {
	case doctree.Paragraph:
		return w.paragraph(b.Text)
	case doctree.ListItem:
		return w.listItem(b.Text)
	case doctree.Formula:
		return w.formula(b.Text)
	case doctree.Caption:
		w.caption(b.Text)
		return nil
	case doctree.Table:
		if b.Ref == "" {
			return w.literalTable(b.Rows)
		}
		t, err := BuildTable(b.Ref, w.study)
		if err != nil {
			return err
		}
		w.table(t)
		return nil
	case doctree.Chart:
		if !w.opts.Charts {
			w.log.Debug("chart skipped", "chart", b.Ref)
			return nil
		}
		return w.chart(b.Ref)
	}
	return fmt.Errorf("report: unexpected %s block", b.Kind)
}

func (w *writer) paragraph(text string) error {
	p := w.doc.AddParagraph().Justification("both")
	indent(p, &docx.Ind{FirstLine: firstLineIndent})
	if err := w.inline(p, text, bodySize); err != nil {
		return err
	}
	w.stats.Paragraphs++
	return nil
}

func (w *writer) listItem(text string) error {
	p := w.doc.AddParagraph().Justification("both")
	indent(p, &docx.Ind{Left: listIndent})
	w.text(p, "– ").Size(bodySize)
	if err := w.inline(p, text, bodySize); err != nil {
		return err
	}
	w.stats.Paragraphs++
	return nil
}

func (w *writer) formula(src string) error {
	segs, err := formula.Parse(src)
	if err != nil {
		return err
	}
	p := w.doc.AddParagraph().Justification("center")
	w.segments(p, segs, bodySize)
	w.stats.Formulas++
	return nil
}

func (w *writer) caption(text string) {
	p := w.doc.AddParagraph().Justification("center")
	w.text(p, text).Size(captionSize)
}

// inline writes paragraph text, turning InlineFormula-delimited spans
// into formula runs.
func (w *writer) inline(p *docx.Paragraph, text, size string) error {
	parts := strings.Split(text, "`")
	for i, part := range parts {
		if i%2 == 0 {
			if part != "" {
				w.text(p, part).Size(size)
			}
			continue
		}
		segs, err := formula.Parse(part)
		if err != nil {
			return err
		}
		w.segments(p, segs, size)
	}
	return nil
}

func (w *writer) segments(p *docx.Paragraph, segs []formula.Segment, size string) {
	for _, s := range segs {
		r := w.text(p, s.Text).Size(size)
		if s.Script != formula.Baseline {
			r.RunProperties.VertAlign = &docx.VertAlign{Val: s.Script.String()}
		}
	}
}

func (w *writer) table(t Table) {
	if t.Caption != "" {
		w.caption(t.Title())
	}
	cols := len(t.Header)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	rows := t.Rows
	if len(t.Header) > 0 {
		rows = append([][]string{t.Header}, rows...)
	}
	tbl := w.doc.AddTable(len(rows), cols, tableWidth, nil)
	for i, row := range rows {
		for j := 0; j < cols; j++ {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			p := tbl.TableRows[i].TableCells[j].AddParagraph()
			r := w.text(p, cell).Size(tableSize)
			if i == 0 && len(t.Header) > 0 {
				p.Justification("center")
				r.Bold()
			}
		}
	}
	w.stats.Tables++
}

func (w *writer) literalTable(rows [][]string) error {
	if len(rows) == 0 {
		return fmt.Errorf("report: empty table")
	}
	w.table(Table{Header: rows[0], Rows: rows[1:]})
	return nil
}

func (w *writer) chart(id string) error {
	c, caption, err := BuildChart(id, w.study)
	if err != nil {
		return err
	}
	png, err := c.PNG(chart.DefaultWidth, chart.DefaultHeight)
	if err != nil {
		return fmt.Errorf("chart %s: %w", id, err)
	}
	p := w.doc.AddParagraph().Justification("center")
	if _, err := p.AddInlineDrawing(png); err != nil {
		return fmt.Errorf("chart %s: %w", id, err)
	}
	w.caption(caption)
	w.stats.Charts++
	return nil
}

// text adds a run in the configured font. Spaces at either end survive.
func (w *writer) text(p *docx.Paragraph, s string) *docx.Run {
	r := p.AddText(s)
	f := w.opts.Font
	r.Font(f, f, f, "default")
	for _, c := range r.Children {
		if t, ok := c.(*docx.Text); ok && strings.TrimSpace(t.Text) != t.Text {
			t.XMLSpace = "preserve"
		}
	}
	return r
}

func indent(p *docx.Paragraph, ind *docx.Ind) {
	if p.Properties == nil {
		p.Properties = &docx.ParagraphProperties{}
	}
	p.Properties.Ind = ind
}
