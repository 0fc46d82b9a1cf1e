package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/costcase/internal/doctree"
)

func TestReadTable(t *testing.T) {
	input := "name,cost,amount,t_zap\nа,60,1,30\nб,150.5,3,40\nbad,1\n"
	tbl, err := ReadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows (short row dropped), got %d", tbl.Len())
	}
	r := tbl.Rows()[1]
	if r.Str("name") != "б" {
		t.Errorf("expected name %q, got %q", "б", r.Str("name"))
	}
	if r.Float("cost") != 150.5 {
		t.Errorf("expected cost 150.5, got %v", r.Float("cost"))
	}
	if v, ok := tbl.Rows()[0].Get("amount").(int); !ok || v != 1 {
		t.Errorf("expected int amount 1, got %#v", tbl.Rows()[0].Get("amount"))
	}
}

func TestReadTable_Empty(t *testing.T) {
	if _, err := ReadTable(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", 42},
		{"500_000", 500000},
		{"1 200 000", 1200000},
		{"0.4", 0.4},
		{"0,3", 0.3},
		{"-ручная операция-", "-ручная операция-"},
		{" г ", "г"},
	}
	for _, tt := range tests {
		if got := Cell(tt.in); got != tt.want {
			t.Errorf("Cell(%q): expected %#v, got %#v", tt.in, tt.want, got)
		}
	}
}

func TestCSVParser(t *testing.T) {
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader("a,b\n1,2\n"), "ops.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "ops" || len(tree.Children) != 1 {
		t.Fatalf("unexpected tree %+v", tree)
	}
	b := tree.Children[0].Blocks[0]
	if b.Kind != doctree.Table || len(b.Rows) != 2 {
		t.Errorf("expected a 2-row table block, got %+v", b)
	}
}
