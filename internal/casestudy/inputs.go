package casestudy

import (
	"fmt"
	"unicode/utf8"

	"github.com/dgallion1/costcase/internal/costmodel"
)

// Column names of the input tables.
const (
	ColName   = "name"
	ColCost   = "cost"
	ColAmount = "amount"
	ColStock  = "t_zap" // stock norm, days
	ColTime   = "time"
)

// Product bundles the bill of materials and the routing of one product.
type Product struct {
	Name        string
	Materials   *costmodel.Table // name, cost, amount, t_zap
	Accessories *costmodel.Table // name, cost, amount, t_zap
	Operations  *costmodel.Table // cost, time, name
}

// Inputs is the initial data of the case.
type Inputs struct {
	PlanVolume int // N_pl, units per year of product B

	B Product // the single product of section I
	A Product // higher-grade analogue (section II)
	C Product // lower-grade analogue (section II)
}

// InputError reports unusable initial data.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// NewConsumables returns an empty materials/accessories table.
func NewConsumables() *costmodel.Table {
	return costmodel.NewTable(ColName, ColCost, ColAmount, ColStock)
}

// NewOperations returns an empty routing table.
func NewOperations() *costmodel.Table {
	return costmodel.NewTable(ColCost, ColTime, ColName)
}

// DefaultInputs is the case as assigned: product B at the given volume,
// with analogues A and C for the second section.
func DefaultInputs(volume int) Inputs {
	in := Inputs{PlanVolume: volume}

	in.B = Product{Name: "Б", Materials: NewConsumables(), Accessories: NewConsumables(), Operations: NewOperations()}
	in.B.Materials.AddRow("а", 60, 1, 30)
	in.B.Materials.AddRow("б", 150, 3, 40)
	in.B.Materials.AddRow("в", 350, 3, 60)
	in.B.Materials.AddRow("г", 60, 2, 50)
	in.B.Accessories.AddRow("а", 50, 1, 35)
	in.B.Accessories.AddRow("б", 60, 3, 70)
	in.B.Accessories.AddRow("в", 70, 2, 45)
	in.B.Operations.AddRow(0, 0.4, "-ручная операция-")
	in.B.Operations.AddRow(500_000, 0.3, "б")
	in.B.Operations.AddRow(600_000, 0.2, "в")
	in.B.Operations.AddRow(700_000, 0.6, "г")

	in.A = Product{Name: "А", Materials: NewConsumables(), Accessories: NewConsumables(), Operations: NewOperations()}
	in.A.Materials.AddRow("-", 0, 0, 0)
	in.A.Materials.AddRow("б", 50, 1, 30)
	in.A.Materials.AddRow("в", 50, 8, 30)
	in.A.Materials.AddRow("г", 15, 8, 30)
	in.A.Accessories.AddRow("-", 0, 0, 0)
	in.A.Accessories.AddRow("б", 70, 4, 30)
	in.A.Accessories.AddRow("в", 40, 2, 30)
	in.A.Operations.AddRow(1_200_000, 0.2, "а")
	in.A.Operations.AddRow(1_400_000, 0.1, "б")
	in.A.Operations.AddRow(1_500_000, 0.3, "в")
	in.A.Operations.AddRow(1_600_000, 0.5, "г")
	in.A.Operations.AddRow(1_700_000, 0.5, "д")
	in.A.Operations.AddRow(1_300_000, 1.0, "е")
	in.A.Operations.AddRow(0, 0.3, "-ручная операция-")

	in.C = Product{Name: "В", Materials: NewConsumables(), Accessories: NewConsumables(), Operations: NewOperations()}
	in.C.Materials.AddRow("а", 35, 1, 30)
	in.C.Materials.AddRow("б", 50, 1, 50)
	in.C.Materials.AddRow("-", 0, 0, 0)
	in.C.Materials.AddRow("г", 15, 4, 75)
	in.C.Accessories.AddRow("а", 70, 1, 35)
	in.C.Accessories.AddRow("-", 0, 0, 0)
	in.C.Accessories.AddRow("в", 40, 2, 40)
	in.C.Operations.AddRow(1_200_000, 0.2, "а")
	in.C.Operations.AddRow(1_400_000, 0.1, "б")
	in.C.Operations.AddRow(1_600_000, 1.0, "г")
	in.C.Operations.AddRow(1_700_000, 0.5, "д")

	return in
}

// WithVolume returns a copy planned at another volume. Tables are shared.
func (in Inputs) WithVolume(n int) Inputs {
	in.PlanVolume = n
	return in
}

// Validate checks that every table is present and carries its columns.
func (in Inputs) Validate() error {
	if in.PlanVolume <= 0 {
		return &InputError{Field: "plan_volume", Reason: "must be positive"}
	}
	for _, p := range []struct {
		label string
		prod  Product
	}{{"B", in.B}, {"A", in.A}, {"C", in.C}} {
		if err := p.prod.validate(p.label); err != nil {
			return err
		}
	}
	return nil
}

func (p Product) validate(label string) error {
	checks := []struct {
		field string
		table *costmodel.Table
		cols  []string
	}{
		{"materials", p.Materials, []string{ColName, ColCost, ColAmount, ColStock}},
		{"accessories", p.Accessories, []string{ColName, ColCost, ColAmount, ColStock}},
		{"operations", p.Operations, []string{ColCost, ColTime, ColName}},
	}
	for _, c := range checks {
		field := label + "." + c.field
		if c.table == nil || c.table.Len() == 0 {
			return &InputError{Field: field, Reason: "table is empty"}
		}
		have := make(map[string]bool)
		for _, h := range c.table.Headers() {
			have[h] = true
		}
		for _, col := range c.cols {
			if !have[col] {
				return &InputError{Field: field, Reason: "missing column " + col}
			}
		}
	}
	return nil
}

// isMachineOperation reports whether an operation runs on equipment.
// Operations named with a single letter use a machine of that type; longer
// names mark manual work.
func isMachineOperation(name string) bool {
	return utf8.RuneCountInString(name) == 1
}

// unitMaterialCost is Σ cost·amount over materials and accessories.
func (p Product) unitMaterialCost() float64 {
	costAmount := func(r costmodel.Row) float64 { return r.Float(ColCost) * r.Float(ColAmount) }
	return p.Materials.CalculateSum(costAmount) + p.Accessories.CalculateSum(costAmount)
}

func (p Product) totalTime() float64 {
	return p.Operations.CalculateSum(func(r costmodel.Row) float64 { return r.Float(ColTime) })
}
