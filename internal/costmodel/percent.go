package costmodel

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dgallion1/costcase/internal/format"
)

// PerPercentTable splits a base quantity among named rows by percentage.
//
// With normalize set, a row's share is its percent over the sum of all
// percents; otherwise the percent is used as a fraction directly. When the
// base is integral (a headcount) each amount is rounded half to even and
// floored at one or zero.
type PerPercentTable struct {
	base         float64
	integral     bool
	minimumIsOne bool
	normalize    bool

	totalPercent float64
	rows         []*PercentRow
	byName       map[string]*PercentRow
}

// PercentRow is one allocation entry.
type PercentRow struct {
	Name    string
	Percent float64
	Payload any
}

// NewPerPercentTable allocates a real-valued base (money).
func NewPerPercentTable(base float64, minimumIsOne, normalize bool) *PerPercentTable {
	return &PerPercentTable{
		base:         base,
		minimumIsOne: minimumIsOne,
		normalize:    normalize,
		byName:       make(map[string]*PercentRow),
	}
}

// NewPerPercentCount allocates an integral base (people, units).
func NewPerPercentCount(base int, minimumIsOne, normalize bool) *PerPercentTable {
	t := NewPerPercentTable(float64(base), minimumIsOne, normalize)
	t.integral = true
	return t
}

// AddRow records a row. A duplicate name is logged and ignored.
func (t *PerPercentTable) AddRow(name string, percent float64, payload any) bool {
	if _, ok := t.byName[name]; ok {
		warn("duplicate percent row", "name", name)
		return false
	}
	r := &PercentRow{Name: name, Percent: percent, Payload: payload}
	t.rows = append(t.rows, r)
	t.byName[name] = r
	t.totalPercent += percent
	return true
}

func (t *PerPercentTable) Base() float64 { return t.base }
func (t *PerPercentTable) Integral() bool { return t.integral }
func (t *PerPercentTable) TotalPercent() float64 { return t.totalPercent }
func (t *PerPercentTable) Len() int { return len(t.rows) }
func (t *PerPercentTable) Rows() []*PercentRow { return t.rows }

// Row returns the named row or nil.
func (t *PerPercentTable) Row(name string) *PercentRow { return t.byName[name] }

// Share is the fraction of the base assigned to r before rounding.
func (t *PerPercentTable) Share(r *PercentRow) float64 {
	if t.normalize {
		if t.totalPercent == 0 {
			return 0
		}
		return r.Percent / t.totalPercent
	}
	return r.Percent
}

// Amount is the quantity assigned to r.
func (t *PerPercentTable) Amount(r *PercentRow) float64 {
	v := t.Share(r) * t.base
	if t.integral {
		floor := 0.0
		if t.minimumIsOne {
			floor = 1
		}
		v = math.Max(floor, math.RoundToEven(v))
	}
	return v
}

// Total sums the per-row amounts. Rounding happens per row, before the
// sum, so the total matches the displayed rows rather than the rounded base.
func (t *PerPercentTable) Total() float64 {
	var s float64
	for _, r := range t.rows {
		s += t.Amount(r)
	}
	return s
}

// CalcSum folds fn(amount, payload) over the rows.
func (t *PerPercentTable) CalcSum(fn func(amount float64, payload any) float64) float64 {
	var s float64
	for _, r := range t.rows {
		s += fn(t.Amount(r), r.Payload)
	}
	return s
}

// Clone copies the rows onto a new base with the same flags.
func (t *PerPercentTable) Clone(base float64) *PerPercentTable {
	n := NewPerPercentTable(base, t.minimumIsOne, t.normalize)
	n.integral = t.integral
	for _, r := range t.rows {
		n.AddRow(r.Name, r.Percent, r.Payload)
	}
	return n
}

func (t *PerPercentTable) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tpercent\tvalue\tdata")
	for _, r := range t.rows {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%v\n", r.Name, t.Share(r)*100, t.amountText(t.Amount(r)), r.Payload)
	}
	totalPercent := t.totalPercent
	if t.normalize {
		totalPercent = 100
	}
	fmt.Fprintf(w, "total\t%.2f\t%s\t\n", totalPercent, t.amountText(t.Total()))
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func (t *PerPercentTable) amountText(v float64) string {
	if t.integral {
		return format.Number(v, 0)
	}
	return format.Number(v, 2)
}
