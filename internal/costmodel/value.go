package costmodel

import (
	"strings"

	"github.com/dgallion1/costcase/internal/format"
)

// Value is a cost node with a fixed part and a volume-dependent part.
// Once a child is attached, the node's own const and variable are ignored
// and both parts become the sum over its children.
type Value struct {
	Name        string
	DisplayName string

	constant float64
	variable float64
	children []*Value
}

// NewValue returns a leaf node.
func NewValue(name string, constant, variable float64, displayName string) *Value {
	return &Value{Name: name, DisplayName: displayName, constant: constant, variable: variable}
}

// Group returns an empty aggregate node meant to receive children.
func Group(name, displayName string) *Value {
	return &Value{Name: name, DisplayName: displayName}
}

// AddChild appends child and returns it.
func (v *Value) AddChild(child *Value) *Value {
	v.children = append(v.children, child)
	return child
}

// Children returns the child list, nil for a leaf.
func (v *Value) Children() []*Value { return v.children }

// IsLeaf reports whether the node has no children.
func (v *Value) IsLeaf() bool { return v.children == nil }

func (v *Value) Const() float64 {
	if v.children == nil {
		return v.constant
	}
	var s float64
	for _, c := range v.children {
		s += c.Const()
	}
	return s
}

func (v *Value) Variable() float64 {
	if v.children == nil {
		return v.variable
	}
	var s float64
	for _, c := range v.children {
		s += c.Variable()
	}
	return s
}

func (v *Value) Total() float64 {
	return v.Const() + v.Variable()
}

// Label is the display name, falling back to the name.
func (v *Value) Label() string {
	if v.DisplayName != "" {
		return v.DisplayName
	}
	return v.Name
}

// Head returns a copy of the tree cut deep levels below v. Nodes at the
// cut keep their aggregated const and variable as leaf values.
func (v *Value) Head(deep int) *Value {
	if deep <= 0 || v.children == nil {
		return NewValue(v.Name, v.Const(), v.Variable(), v.DisplayName)
	}
	n := Group(v.Name, v.DisplayName)
	for _, c := range v.children {
		n.AddChild(c.Head(deep - 1))
	}
	return n
}

// Find looks name up depth first: v itself, then its direct children,
// then each child's subtree in order. It returns nil when nothing matches.
func (v *Value) Find(name string) *Value {
	if v == nil {
		return nil
	}
	if v.Name == name {
		return v
	}
	for _, c := range v.children {
		if c.Name == name {
			return c
		}
	}
	for _, c := range v.children {
		if r := c.Find(name); r != nil {
			return r
		}
	}
	return nil
}

// Walk visits v and its descendants in pre-order with their depth.
func (v *Value) Walk(fn func(n *Value, depth int)) {
	v.walk(fn, 0)
}

func (v *Value) walk(fn func(*Value, int), depth int) {
	fn(v, depth)
	for _, c := range v.children {
		c.walk(fn, depth+1)
	}
}

// Amount implements Amount.
func (v *Value) Amount() float64 { return v.Total() }

// Plus adds the totals of v and other.
func (v *Value) Plus(other Amount) float64 {
	return v.Total() + other.Amount()
}

func (v *Value) String() string {
	var b strings.Builder
	v.Walk(func(n *Value, depth int) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.line())
	})
	return b.String()
}

func (v *Value) line() string {
	c, x := v.Const(), v.Variable()
	switch {
	case c > 0 && x > 0:
		return v.Label() + ", постоянные: " + format.Number(c, 2) +
			", переменные: " + format.Number(x, 2) +
			", все: " + format.Number(c+x, 2)
	case c == 0:
		return v.Label() + ", переменные: " + format.Number(x, 2)
	default:
		return v.Label() + ", постоянные: " + format.Number(c, 2)
	}
}
