package costmodel

import (
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"
)

// Table is a fixed-schema list of rows addressed by column name.
type Table struct {
	headers []string
	index   map[string]int
	rows    []Row
}

// Row is one table row. It can be read by position or by column name.
type Row struct {
	table *Table
	data  []any
}

// NewTable creates a table with the given column names. Arguments that
// are not strings are skipped with a warning.
func NewTable(headers ...any) *Table {
	t := &Table{index: make(map[string]int)}
	for _, h := range headers {
		name, ok := h.(string)
		if !ok {
			warn("ignored table header", "header", h)
			continue
		}
		t.index[name] = len(t.headers)
		t.headers = append(t.headers, name)
	}
	return t
}

// Headers returns a copy of the column names.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// AddRow appends a row. A row whose width differs from the header count is
// logged and dropped.
func (t *Table) AddRow(values ...any) bool {
	if len(values) != len(t.headers) {
		warn("row width does not match headers", "got", len(values), "expected", len(t.headers))
		return false
	}
	t.rows = append(t.rows, Row{table: t, data: append([]any(nil), values...)})
	return true
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Rows() []Row { return t.rows }

// Column returns the values of the named column, or an empty slice with a
// warning when the column does not exist.
func (t *Table) Column(name string) []any {
	i, ok := t.index[name]
	if !ok {
		warn("column not found", "column", name, "headers", t.headers)
		return []any{}
	}
	out := make([]any, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r.data[i])
	}
	return out
}

// CalculateSum folds fn over every row and returns the running total.
func (t *Table) CalculateSum(fn func(Row) float64) float64 {
	var s float64
	for _, r := range t.rows {
		s += fn(r)
	}
	return s
}

// Find returns the first row whose column equals value.
func (t *Table) Find(column string, value any) (Row, bool) {
	for _, r := range t.rows {
		if equalCell(r.Get(column), value) {
			return r, true
		}
	}
	return Row{}, false
}

// Filter returns the rows accepted by keep.
func (t *Table) Filter(keep func(Row) bool) []Row {
	var out []Row
	for _, r := range t.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterTable is Filter returning a new table with the same headers.
func (t *Table) FilterTable(keep func(Row) bool) *Table {
	nt := &Table{headers: t.Headers(), index: make(map[string]int, len(t.index))}
	for k, v := range t.index {
		nt.index[k] = v
	}
	for _, r := range t.rows {
		if keep(r) {
			nt.rows = append(nt.rows, Row{table: nt, data: r.data})
		}
	}
	return nt
}

func (t *Table) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.headers, "\t"))
	for _, r := range t.rows {
		cells := make([]string, len(r.data))
		for i, c := range r.data {
			cells[i] = fmt.Sprint(c)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func (r Row) Len() int { return len(r.data) }

// Values returns a copy of the row cells.
func (r Row) Values() []any { return append([]any(nil), r.data...) }

// At returns the cell at position i, or 0 with a warning when out of range.
func (r Row) At(i int) any {
	if i < 0 || i >= len(r.data) {
		warn("row index out of range", "index", i, "max", len(r.data)-1)
		return 0
	}
	return r.data[i]
}

// Get returns the cell in the named column, or 0 with a warning when the
// column does not exist.
func (r Row) Get(name string) any {
	if r.table == nil {
		warn("lookup on empty row", "column", name)
		return 0
	}
	i, ok := r.table.index[name]
	if !ok {
		warn("column not found", "column", name, "headers", r.table.headers)
		return 0
	}
	return r.data[i]
}

// Float returns the named cell as float64. Non-numeric cells read as 0.
func (r Row) Float(name string) float64 {
	f, _ := toFloat(r.Get(name))
	return f
}

// Str returns the named cell as a string.
func (r Row) Str(name string) string {
	switch v := r.Get(name).(type) {
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case Amount:
		return n.Amount(), true
	}
	return 0, false
}

func equalCell(a, b any) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	if okA != okB {
		return false
	}
	if a == nil || b == nil {
		return a == b
	}
	// Value.Comparable also looks inside interface fields, which TypeOf
	// cannot see.
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}
