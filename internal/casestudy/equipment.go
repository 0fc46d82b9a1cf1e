package casestudy

import (
	"math"

	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

// Machine table columns.
const (
	ColRequired = "n rasch" // calculated machine count
	ColAccepted = "n fact"  // accepted (ceil) machine count
	ColLoad     = "b_fact"  // actual load factor
)

// Fixed asset structure columns.
const (
	ColNumber  = "n"
	ColPercent = "%"
)

// Asset structure of the plant: row number (empty for sub-rows), name, share
// of the total fixed assets.
var assetStructure = []struct {
	n     string
	name  string
	share float64
}{
	{"1", "Земля", 0.14},
	{"2", "Здания", 0.09},
	{"3", "Сооружения", 0.07},
	{"4", "Передаточные устройства", 0.06},
	{"5", "Машины и оборудование, в т.ч.", 0.50},
	{"", techEquipmentRow, 0.40},
	{"", nonTechEquipmentRow, 0.10},
	{"7", "Транспортные средства", 0.09},
	{"8", "Инструменты и технологическая оснастка", 0.04},
	{"9", "Производственный и хозяйственный инвентарь", 0.01},
}

const (
	equipmentRow        = "Машины и оборудование, в т.ч."
	techEquipmentRow    = "- технологическое оборудование"
	nonTechEquipmentRow = "- нетехнологические машины и оборудование"
	landRowNumber       = "1"

	// Technological equipment is 40% of all fixed assets.
	techEquipmentShare = 0.4
	landShare          = 0.14
)

// Equipment is chapter 1: equipment need and fixed assets.
type Equipment struct {
	Calendar      Calendar
	EffectiveFund float64 // F_ob.ef
	LoadFactor    float64 // β

	Machines    *costmodel.Table // name, cost, n rasch, n fact, b_fact
	InitialCost float64          // TO_perv, technological equipment at cost

	Assets      *costmodel.Table // n, name, %, cost
	FixedAssets float64          // S_os
	Amortisable float64          // S_os without land
}

func NewEquipment(in Inputs, p Params) *Equipment {
	e := &Equipment{
		Calendar:      p.Calendar,
		EffectiveFund: p.Calendar.EquipmentFund(),
		LoadFactor:    p.LoadFactor,
		Machines:      costmodel.NewTable(ColName, ColCost, ColRequired, ColAccepted, ColLoad),
	}

	n := float64(in.PlanVolume)
	for _, op := range in.B.Operations.Rows() {
		name := op.Str(ColName)
		if !isMachineOperation(name) {
			continue
		}
		t := op.Float(ColTime)
		required := n * t / (e.LoadFactor * e.EffectiveFund)
		accepted := math.Ceil(required)
		load := n * t / (accepted * e.EffectiveFund)
		e.Machines.AddRow(name, op.Float(ColCost), required, int(accepted), load)
		e.InitialCost += op.Float(ColCost) * accepted
	}

	e.FixedAssets = e.InitialCost / techEquipmentShare
	e.Amortisable = format.Round(e.FixedAssets*(1.0-landShare), 2)

	e.Assets = costmodel.NewTable(ColNumber, ColName, ColPercent, ColCost)
	for _, a := range assetStructure {
		e.Assets.AddRow(a.n, a.name, a.share, e.FixedAssets*a.share)
	}
	return e
}

// Accepted returns the accepted machine count for a machine type, 0 if the
// plant has none.
func (e *Equipment) Accepted(name string) int {
	r, ok := e.Machines.Find(ColName, name)
	if !ok {
		return 0
	}
	return int(r.Float(ColAccepted))
}
