package costmodel

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// CalculateTable holds fn applied to every input, computed eagerly and in
// input order.
type CalculateTable[I, O any] struct {
	inputs  []I
	outputs []O
}

// Pair is one (input, output) entry of a CalculateTable.
type Pair[I, O any] struct {
	In  I
	Out O
}

func NewCalculateTable[I, O any](inputs []I, fn func(I) O) *CalculateTable[I, O] {
	t := &CalculateTable[I, O]{
		inputs:  append([]I(nil), inputs...),
		outputs: make([]O, 0, len(inputs)),
	}
	for _, in := range inputs {
		t.outputs = append(t.outputs, fn(in))
	}
	return t
}

// NewCalculateTableCtx passes a shared context value to every call.
func NewCalculateTableCtx[C, I, O any](ctx C, inputs []I, fn func(C, I) O) *CalculateTable[I, O] {
	return NewCalculateTable(inputs, func(in I) O { return fn(ctx, in) })
}

func (t *CalculateTable[I, O]) Inputs() []I { return t.inputs }
func (t *CalculateTable[I, O]) Outputs() []O { return t.outputs }
func (t *CalculateTable[I, O]) Len() int { return len(t.inputs) }

func (t *CalculateTable[I, O]) Items() []Pair[I, O] {
	out := make([]Pair[I, O], len(t.inputs))
	for i := range t.inputs {
		out[i] = Pair[I, O]{In: t.inputs[i], Out: t.outputs[i]}
	}
	return out
}

func (t *CalculateTable[I, O]) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	ins := make([]string, len(t.inputs))
	outs := make([]string, len(t.outputs))
	for i := range t.inputs {
		ins[i] = fmt.Sprint(t.inputs[i])
		outs[i] = fmt.Sprint(t.outputs[i])
	}
	fmt.Fprintln(w, strings.Join(ins, "\t"))
	fmt.Fprintln(w, strings.Join(outs, "\t"))
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
