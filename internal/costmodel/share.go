package costmodel

import (
	"fmt"
	"strings"
)

// ShareTable shows each value, and its subtree, as a percentage of the
// combined total of all listed values.
type ShareTable struct {
	values []*Value
}

func (s *ShareTable) Add(v *Value) { s.values = append(s.values, v) }

func (s *ShareTable) Total() float64 {
	var t float64
	for _, v := range s.values {
		t += v.Total()
	}
	return t
}

// ShareLine is one rendered entry.
type ShareLine struct {
	Label   string
	Depth   int
	Amount  float64
	Percent float64
}

// Lines flattens every listed tree in pre-order.
func (s *ShareTable) Lines() []ShareLine {
	total := s.Total()
	var out []ShareLine
	for _, v := range s.values {
		v.Walk(func(n *Value, depth int) {
			p := 0.0
			if total != 0 {
				p = n.Total() / total * 100
			}
			out = append(out, ShareLine{Label: n.Label(), Depth: depth, Amount: n.Total(), Percent: p})
		})
	}
	return out
}

func (s *ShareTable) String() string {
	var b strings.Builder
	for i, l := range s.Lines() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s%s %.2f%%", strings.Repeat("  ", l.Depth), l.Label, l.Percent)
	}
	return b.String()
}
