package costmodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func materials() *Table {
	t := NewTable("name", "cost", "amount", "t_zap")
	t.AddRow("а", 60, 1, 30)
	t.AddRow("б", 150, 3, 40)
	t.AddRow("в", 350, 3, 60)
	t.AddRow("г", 60, 2, 50)
	return t
}

func TestTable_IgnoresNonStringHeaders(t *testing.T) {
	tb := NewTable("a", 1, "b", nil)
	if diff := cmp.Diff([]string{"a", "b"}, tb.Headers()); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_WrongWidthRowDropped(t *testing.T) {
	tb := materials()
	before := tb.Len()
	if tb.AddRow("д", 1) {
		t.Errorf("expected short row to be rejected")
	}
	if tb.AddRow("д", 1, 2, 3, 4) {
		t.Errorf("expected long row to be rejected")
	}
	if tb.Len() != before {
		t.Errorf("expected len %d, got %d", before, tb.Len())
	}
}

func TestTable_CalculateSum(t *testing.T) {
	got := materials().CalculateSum(func(r Row) float64 {
		return r.Float("cost") * r.Float("amount")
	})
	if got != 2050 {
		t.Errorf("expected 2050, got %v", got)
	}
}

func TestTable_Column(t *testing.T) {
	tb := materials()
	if diff := cmp.Diff([]any{60, 150, 350, 60}, tb.Column("cost")); diff != "" {
		t.Errorf("column mismatch (-want +got):\n%s", diff)
	}
	if got := tb.Column("missing"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTable_Find(t *testing.T) {
	tb := materials()
	r, ok := tb.Find("name", "в")
	if !ok {
		t.Fatalf("expected row to be found")
	}
	if r.Float("cost") != 350 {
		t.Errorf("expected cost 350, got %v", r.Float("cost"))
	}
	if _, ok := tb.Find("name", "я"); ok {
		t.Errorf("expected no row")
	}
	r, ok = tb.Find("cost", 60.0)
	if !ok || r.Str("name") != "а" {
		t.Errorf("expected numeric match across int/float to return first row")
	}
}

func TestEqualCell(t *testing.T) {
	type tagged struct{ v any }
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int and float", 60, 60.0, true},
		{"strings", "а", "а", true},
		{"number and string", 60, "60", false},
		{"nil and nil", nil, nil, true},
		{"nil and string", nil, "а", false},
		{"slices", []string{"а"}, []string{"а"}, false},
		{"slice and string", []int{1}, "x", false},
		{"maps", map[string]int{}, map[string]int{}, false},
		{"struct holding a slice", tagged{[]int{1}}, tagged{[]int{1}}, false},
		{"struct holding a string", tagged{"а"}, tagged{"а"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := equalCell(tt.a, tt.b); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	tb := NewTable("name")
	tb.AddRow([]string{"а"})
	if _, ok := tb.Find("name", []string{"а"}); ok {
		t.Error("expected no match for a slice cell")
	}
}

func TestTable_Filter(t *testing.T) {
	tb := materials()
	cheap := func(r Row) bool { return r.Float("cost") < 100 }

	rows := tb.Filter(cheap)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	sub := tb.FilterTable(cheap)
	if sub.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", sub.Len())
	}
	if diff := cmp.Diff(tb.Headers(), sub.Headers()); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if sub.Rows()[1].Str("name") != "г" {
		t.Errorf("expected second filtered row %q, got %q", "г", sub.Rows()[1].Str("name"))
	}
}

func TestRow_OutOfRangeReturnsZero(t *testing.T) {
	r := materials().Rows()[0]
	if got := r.At(10); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := r.At(-1); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := r.Get("nope"); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := r.At(0); got != "а" {
		t.Errorf("expected %q, got %v", "а", got)
	}
}
