package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/doctree"
	"github.com/dgallion1/costcase/internal/narrative"
	"github.com/dgallion1/costcase/internal/outstore"
	"github.com/dgallion1/costcase/internal/parser"
	"github.com/fumiama/go-docx"
	"github.com/google/go-cmp/cmp"
)

func study(t *testing.T) *casestudy.Study {
	t.Helper()
	s, err := casestudy.Run(casestudy.DefaultInputs(45_000), casestudy.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestBuildTable_All(t *testing.T) {
	s := study(t)
	for _, id := range TableIDs() {
		tbl, err := BuildTable(id, s)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
		if len(tbl.Rows) == 0 {
			t.Errorf("%s: expected rows", id)
		}
		for i, r := range tbl.Rows {
			if len(r) != len(tbl.Header) {
				t.Errorf("%s: row %d has %d cells, header has %d", id, i, len(r), len(tbl.Header))
			}
		}
	}
	if _, err := BuildTable("nope", s); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestBuildTable_Balance(t *testing.T) {
	tbl, err := BuildTable("opening-balance", study(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 20 {
		t.Fatalf("expected 20 balance rows, got %d", len(tbl.Rows))
	}
	last := tbl.Rows[len(tbl.Rows)-1]
	if last[0] != "Баланс" || last[2] != "Баланс" || last[1] == "" {
		t.Errorf("expected totals row, got %v", last)
	}
	if tbl.Title() != "Таблица 6.1. Баланс на начало периода" {
		t.Errorf("unexpected title %q", tbl.Title())
	}
}

func TestBuildTable_Transition(t *testing.T) {
	s := study(t)
	tbl, err := BuildTable("transition-active", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Header) != 7 || tbl.Header[6] != "Начало II периода" {
		t.Fatalf("unexpected header %v", tbl.Header)
	}
	last := tbl.Rows[len(tbl.Rows)-1]
	if last[0] != "Баланс" || last[1] != count(s.Transition.EndOfPeriod.Active()) || last[6] != count(s.Transition.Opening.Active()) {
		t.Errorf("unexpected totals row %v", last)
	}

	prices, err := BuildTable("mix-prices", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices.Rows) != 3 || prices.Rows[1][0] != s.Inputs.B.Name {
		t.Errorf("unexpected price rows %v", prices.Rows)
	}
}

func TestNarrativeRefsRegistered(t *testing.T) {
	tree, err := narrative.Render(study(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables, charts := narrative.Refs(tree)
	for _, id := range tables {
		if _, ok := tableDefs[id]; !ok {
			t.Errorf("table %q is referenced but not registered", id)
		}
	}
	for _, id := range charts {
		if _, ok := chartDefs[id]; !ok {
			t.Errorf("chart %q is referenced but not registered", id)
		}
	}
	if len(tables) != len(tableDefs) {
		t.Errorf("expected every registered table referenced once, got %d of %d", len(tables), len(tableDefs))
	}
}

func TestBuildChart_All(t *testing.T) {
	s := study(t)
	for _, id := range ChartIDs() {
		c, caption, err := BuildChart(id, s)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("%s: %v", id, err)
		}
		if !strings.HasPrefix(caption, "Рисунок ") {
			t.Errorf("%s: unexpected caption %q", id, caption)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	s := study(t)
	store := outstore.NewMemory()
	opts := DefaultOptions()
	opts.Charts = false

	want, err := narrative.Render(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, stats, err := Render(context.Background(), s, want, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := Save(context.Background(), store, "out/report.docx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Size != int64(len(data)) || info.ContentType != outstore.DocxContentType {
		t.Errorf("unexpected info %+v", info)
	}
	if stats.Charts != 0 {
		t.Errorf("expected no charts, got %d", stats.Charts)
	}
	if stats.Tables != len(tableDefs) {
		t.Errorf("expected %d tables, got %d", len(tableDefs), stats.Tables)
	}

	_, rc, err := store.Get(context.Background(), "out/report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()
	back, err := (&parser.DOCXParser{}).Parse(rc, "report.docx")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if diff := cmp.Diff(titles(want), titles(back)[1:]); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if preamble := back.Children[0].Text(); !strings.Contains(preamble, narrative.Title) {
		t.Errorf("expected title page, got %q", preamble)
	}

	var tables int
	back.Walk(func(n *doctree.DocNode, _ int) {
		for _, b := range n.Blocks {
			if b.Kind == doctree.Table {
				tables++
			}
		}
	})
	if tables != stats.Tables {
		t.Errorf("expected %d tables read back, got %d", stats.Tables, tables)
	}
}

func TestRender_Charts(t *testing.T) {
	s := study(t)
	tree, err := narrative.Render(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, stats, err := Render(context.Background(), s, tree, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Charts != len(chartDefs) {
		t.Errorf("expected %d charts, got %d", len(chartDefs), stats.Charts)
	}
	back, err := (&parser.DOCXParser{}).Parse(bytes.NewReader(data), "r.docx")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var charts int
	back.Walk(func(n *doctree.DocNode, _ int) {
		for _, b := range n.Blocks {
			if b.Kind == doctree.Chart {
				charts++
			}
		}
	})
	if charts != stats.Charts {
		t.Errorf("expected %d pictures read back, got %d", stats.Charts, charts)
	}
}

func TestBuild_FormulaRuns(t *testing.T) {
	tree := &doctree.DocTree{Title: "t", Children: []*doctree.DocNode{{
		Title: "F",
		Level: 1,
		Blocks: []doctree.Block{
			{Kind: doctree.Formula, Text: `S_{пр} = x^2`},
			{Kind: doctree.Paragraph, Text: "где `N_{пл}` объём"},
		},
	}}}
	doc, stats, err := Build(context.Background(), study(t), tree, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Formulas != 1 || stats.Paragraphs != 1 || stats.Headings != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	var scripts []string
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		for _, c := range p.Children {
			r, ok := c.(*docx.Run)
			if !ok || r.RunProperties == nil || r.RunProperties.VertAlign == nil {
				continue
			}
			for _, rc := range r.Children {
				if txt, ok := rc.(*docx.Text); ok {
					scripts = append(scripts, r.RunProperties.VertAlign.Val+":"+txt.Text)
				}
			}
		}
	}
	want := []string{"subscript:пр", "superscript:2", "subscript:пл"}
	if diff := cmp.Diff(want, scripts); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Errors(t *testing.T) {
	s := study(t)
	bad := &doctree.DocTree{Children: []*doctree.DocNode{{
		Title:  "X",
		Blocks: []doctree.Block{{Kind: doctree.Table, Ref: "missing"}},
	}}}
	if _, _, err := Build(context.Background(), s, bad, DefaultOptions()); err == nil {
		t.Error("expected error for unknown table ref")
	}

	badFormula := &doctree.DocTree{Children: []*doctree.DocNode{{
		Title:  "X",
		Blocks: []doctree.Block{{Kind: doctree.Formula, Text: `\frac{a}`}},
	}}}
	if _, _, err := Build(context.Background(), s, badFormula, DefaultOptions()); err == nil {
		t.Error("expected error for malformed formula")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := &doctree.DocTree{Children: []*doctree.DocNode{{Title: "X"}}}
	if _, _, err := Build(ctx, s, ok, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type failingStore struct{ outstore.Store }

func (failingStore) Put(context.Context, string, io.Reader, string) (outstore.Info, error) {
	return outstore.Info{}, errors.New("disk full")
}

func TestSave_StoreError(t *testing.T) {
	_, err := Save(context.Background(), failingStore{outstore.NewMemory()}, "r.docx", []byte("x"))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func titles(tree *doctree.DocTree) []string {
	var out []string
	tree.Walk(func(n *doctree.DocNode, depth int) {
		out = append(out, strings.Repeat(">", depth)+n.Title)
	})
	return out
}
