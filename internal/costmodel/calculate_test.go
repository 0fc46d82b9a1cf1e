package costmodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculateTable_Double(t *testing.T) {
	ct := NewCalculateTable([]int{1, 2, 3}, func(x int) int { return x * 2 })
	if diff := cmp.Diff([]int{2, 4, 6}, ct.Outputs()); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
	if ct.Len() != len(ct.Inputs()) {
		t.Errorf("expected outputs parallel to inputs")
	}
}

func TestCalculateTable_Ctx(t *testing.T) {
	ct := NewCalculateTableCtx(10.0, []int{1, 2}, func(base float64, n int) float64 {
		return base * float64(n)
	})
	want := []Pair[int, float64]{{In: 1, Out: 10}, {In: 2, Out: 20}}
	if diff := cmp.Diff(want, ct.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateTable_Empty(t *testing.T) {
	ct := NewCalculateTable(nil, func(x int) int { return x })
	if ct.Len() != 0 || len(ct.Items()) != 0 {
		t.Errorf("expected empty table")
	}
}

func TestShareTable(t *testing.T) {
	s := &ShareTable{}
	p := Group("p", "")
	p.AddChild(NewValue("a", 25, 0, ""))
	p.AddChild(NewValue("b", 0, 75, ""))
	s.Add(p)

	lines := s.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Percent != 100 || lines[1].Percent != 25 || lines[2].Depth != 1 {
		t.Errorf("unexpected lines %+v", lines)
	}
}
