package doctree

import "testing"

func TestOutline(t *testing.T) {
	tree := &DocTree{
		Title: "report",
		Children: []*DocNode{
			{
				Title: "Глава 1",
				Level: 1,
				Blocks: []Block{
					{Kind: Paragraph, Text: "a"},
					{Kind: Paragraph, Text: "b"},
					{Kind: Table, Ref: "machines"},
				},
				Children: []*DocNode{{Title: "1.1", Level: 2, Blocks: []Block{{Kind: Formula, Text: "x^2"}}}},
			},
			{Level: 1},
		},
	}
	want := "report\n  Глава 1 [paragraph 2] [table 1]\n    1.1 [formula 1]\n  (untitled)"
	if got := tree.Outline(); got != want {
		t.Errorf("expected outline\n%s\ngot\n%s", want, got)
	}
}

func TestNodeText(t *testing.T) {
	n := &DocNode{Blocks: []Block{
		{Kind: Paragraph, Text: "first"},
		{Kind: Chart, Ref: "costs"},
		{Kind: ListItem, Text: "item"},
		{Kind: Paragraph},
	}}
	if got := n.Text(); got != "first\n\nitem" {
		t.Errorf("expected %q, got %q", "first\n\nitem", got)
	}
}

func TestWalkOrder(t *testing.T) {
	tree := &DocTree{Children: []*DocNode{
		{Title: "a", Children: []*DocNode{{Title: "a1"}, {Title: "a2"}}},
		{Title: "b"},
	}}
	var got []string
	tree.Walk(func(n *DocNode, depth int) { got = append(got, n.Title) })
	want := []string{"a", "a1", "a2", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestKindString(t *testing.T) {
	if Formula.String() != "formula" || Kind(42).String() != "unknown" {
		t.Errorf("unexpected kind names %q %q", Formula, Kind(42))
	}
}
