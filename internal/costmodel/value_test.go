package costmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_LeafTotal(t *testing.T) {
	v := NewValue("x", 10, 5, "")
	if v.Total() != 15 {
		t.Errorf("expected total 15, got %v", v.Total())
	}
	if v.Label() != "x" {
		t.Errorf("expected label %q, got %q", "x", v.Label())
	}
}

func materialTree() *Value {
	m := NewValue("material", 0, 92250000, "Материальные затраты")
	base := m.Total()
	m.AddChild(NewValue("main", 0, base, "Основные материалы"))
	m.AddChild(NewValue("helper", 0, base*0.05, ""))
	m.AddChild(NewValue("inventory", base*0.03, 0, ""))
	fuel := m.AddChild(Group("fuel total", "Топливо и энергия"))
	tech := fuel.AddChild(NewValue("tech", 0, 1000, ""))
	fuel.AddChild(NewValue("non tech", 3000-tech.Total(), 0, ""))
	return m
}

func TestValue_ChildrenOverrideOwnFields(t *testing.T) {
	m := materialTree()
	var sum float64
	for _, c := range m.Children() {
		sum += c.Total()
	}
	assert.InDelta(t, sum, m.Total(), 1e-6)
	if m.Total() != m.Const()+m.Variable() {
		t.Errorf("expected total to equal const+variable")
	}
	fuel := m.Find("fuel total")
	if fuel.Const() != 2000 || fuel.Variable() != 1000 {
		t.Errorf("expected fuel 2000/1000, got %v/%v", fuel.Const(), fuel.Variable())
	}
}

func TestValue_AddChildReturnsChild(t *testing.T) {
	p := Group("p", "")
	c := NewValue("c", 1, 2, "")
	if got := p.AddChild(c); got != c {
		t.Fatalf("expected AddChild to return its argument")
	}
	if p.IsLeaf() {
		t.Errorf("expected p to be an aggregate after AddChild")
	}
}

func TestValue_Find(t *testing.T) {
	m := materialTree()
	tests := []struct {
		name string
		want bool
	}{
		{"material", true},
		{"helper", true},
		{"non tech", true},
		{"absent", false},
	}
	for _, tt := range tests {
		got := m.Find(tt.name)
		if (got != nil) != tt.want {
			t.Errorf("Find(%q): expected found=%v, got %v", tt.name, tt.want, got != nil)
		}
		if got != nil && got.Name != tt.name {
			t.Errorf("Find(%q): got node %q", tt.name, got.Name)
		}
	}
}

func TestValue_FindPrefersDirectChild(t *testing.T) {
	root := Group("root", "")
	a := root.AddChild(Group("a", ""))
	deep := a.AddChild(NewValue("dup", 1, 0, ""))
	direct := root.AddChild(NewValue("dup", 2, 0, ""))
	if got := root.Find("dup"); got != direct {
		t.Errorf("expected direct child, got %v (deep is %v)", got, deep)
	}
}

func TestValue_Head(t *testing.T) {
	m := materialTree()

	flat := m.Head(0)
	if !flat.IsLeaf() {
		t.Fatalf("expected Head(0) to be a leaf")
	}
	if flat.Const() != m.Const() || flat.Variable() != m.Variable() {
		t.Errorf("expected Head(0) to keep aggregates")
	}

	one := m.Head(1)
	if len(one.Children()) != len(m.Children()) {
		t.Fatalf("expected %d children, got %d", len(m.Children()), len(one.Children()))
	}
	fuel := one.Find("fuel total")
	if !fuel.IsLeaf() {
		t.Errorf("expected nodes at the cut to be leaves")
	}
	if one.Total() != m.Total() {
		t.Errorf("expected Head to preserve total: %v vs %v", one.Total(), m.Total())
	}
	if one.Find("tech") != nil {
		t.Errorf("expected grandchildren to be pruned")
	}
}

func TestValue_Plus(t *testing.T) {
	a := NewValue("a", 1, 2, "")
	b := NewValue("b", 3, 4, "")
	if got := a.Plus(b); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	if got := a.Plus(Number(7)); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	if got := Sum(a, b, Number(0.5)); got != 10.5 {
		t.Errorf("expected 10.5, got %v", got)
	}
}

func TestValue_String(t *testing.T) {
	p := Group("p", "Затраты")
	p.AddChild(NewValue("a", 1000, 2000.5, "Смешанные"))
	p.AddChild(NewValue("b", 0, 10, ""))
	p.AddChild(NewValue("c", 5, 0, ""))

	lines := strings.Split(p.String(), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), p.String())
	}
	want := []string{
		"Затраты, постоянные: 1,005.00, переменные: 2,010.50, все: 3,015.50",
		"  Смешанные, постоянные: 1,000.00, переменные: 2,000.50, все: 3,000.50",
		"  b, переменные: 10.00",
		"  c, постоянные: 5.00",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
