package casestudy

import (
	"math"

	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

const (
	commercialShare      = 0.04 // commercial costs, of unit production cost
	commercialFixedShare = 0.6
)

// UnitCost is chapter 4: full cost and the unit cost split.
type UnitCost struct {
	UnitProduction float64          // S_b.proizv
	Commercial     *costmodel.Value // "S_kom"
	Sum            *costmodel.Value // "S_sum", production plus commercial
	Unit           *costmodel.Value // "S_b_poln", Sum per unit
}

// frozenCommercial carries the plan-volume commercial costs into a
// recomputation at another volume.
type frozenCommercial struct {
	value      *costmodel.Value
	planVolume int
}

// NewUnitCost computes chapter 4 for the costs at the given volume.
func NewUnitCost(volume int, costs *Costs, frozen *frozenCommercial) *UnitCost {
	n := float64(volume)
	u := &UnitCost{UnitProduction: costs.Unit(volume)}

	s := math.RoundToEven(u.UnitProduction*commercialShare) * n
	fixed := format.Round(s*commercialFixedShare, 2)
	variable := format.Round(s-fixed, 2)
	if frozen != nil && frozen.value != nil {
		fixed = frozen.value.Const()
		// s already scales with n; the variable part scales by n/N_pl again.
		variable = s * (1 - commercialFixedShare) * n / float64(frozen.planVolume)
	}
	u.Commercial = costmodel.NewValue("S_kom", fixed, variable, "Коммерческие затраты")

	u.Sum = costmodel.Group("S_sum", "Суммарные затраты")
	u.Sum.AddChild(costs.Tree)
	u.Sum.AddChild(u.Commercial)
	u.Unit = costmodel.NewValue("S_b_poln", u.Sum.Const()/n, u.Sum.Variable()/n, "Полная себестоимость единицы")
	return u
}
