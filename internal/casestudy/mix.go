package casestudy

import (
	"math"

	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

// Product mix shares of the plan volume.
const (
	mixShareA = 0.25
	mixShareC = 0.25
)

// Mix is section 2.1: the plan volume split across products A, B and C.
type Mix struct {
	Calendar      Calendar
	EffectiveFund float64
	A, B, C       int
}

func NewMix(in Inputs, p Params) *Mix {
	n := float64(in.PlanVolume)
	m := &Mix{
		Calendar:      p.Calendar,
		EffectiveFund: p.Calendar.EquipmentFund(),
		A:             int(math.RoundToEven(n * mixShareA)),
		C:             int(math.RoundToEven(n * mixShareC)),
	}
	m.B = in.PlanVolume - m.A - m.C
	return m
}

// products lists each product with its volume, in the order machines are
// first encountered: A, C, then B.
func (m *Mix) products(in Inputs) []struct {
	prod   Product
	volume int
} {
	return []struct {
		prod   Product
		volume int
	}{{in.A, m.A}, {in.C, m.C}, {in.B, m.B}}
}

// Mix machine table columns.
const (
	ColOnHand   = "stock"
	ColNeed     = "need_rasch"
	ColNeedFact = "need_fact"
	ColNeedNew  = "need_new"
)

// Fixed asset movement columns.
const (
	ColCostBefore   = "cost I"
	ColAmortisation = "amortisation I"
	ColCostOpening  = "cost II begin"
	ColDelta        = "delta"
	ColCostAfter    = "cost II"
)

// newAssetShare scales equipment purchases to the other fixed assets the
// expansion requires.
const newAssetShare = 0.5

// MixEquipment is section 2.2: machines for the mix and the fixed asset
// movement.
type MixEquipment struct {
	LoadFactor float64
	Machines   *costmodel.Table // name, stock, need_rasch, need_fact, need_new, b_fact, cost
	NewCost    float64          // cost of the machines to buy
	Assets     *costmodel.Table // n, name, %, cost I, amortisation I, cost II begin, delta, cost II

	InitialCost float64 // TO_perv after purchases
	FixedAssets float64
	Amortisable float64
}

func NewMixEquipment(in Inputs, p Params, mix *Mix, eq *Equipment) *MixEquipment {
	e := &MixEquipment{
		LoadFactor: p.MixLoadFactor,
		Machines:   costmodel.NewTable(ColName, ColOnHand, ColNeed, ColNeedFact, ColNeedNew, ColLoad, ColCost),
	}
	capacity := e.LoadFactor * mix.EffectiveFund

	type need struct {
		name  string
		count float64
		cost  float64
	}
	var needs []*need
	byName := make(map[string]*need)
	for _, pv := range mix.products(in) {
		for _, op := range pv.prod.Operations.Rows() {
			name := op.Str(ColName)
			if !isMachineOperation(name) {
				continue
			}
			c := float64(pv.volume) * op.Float(ColTime) / capacity
			if n, ok := byName[name]; ok {
				n.count += c
				continue
			}
			n := &need{name: name, count: c, cost: op.Float(ColCost)}
			needs = append(needs, n)
			byName[name] = n
		}
	}

	for _, n := range needs {
		stock := eq.Accepted(n.name)
		total := int(math.Ceil(n.count - 0.05))
		buy := max(0, total-stock)
		load := 0.0
		if total > 0 {
			load = n.count * capacity / (float64(total) * mix.EffectiveFund)
		}
		e.Machines.AddRow(n.name, stock, n.count, total, buy, load, n.cost)
	}
	e.NewCost = e.Machines.CalculateSum(func(r costmodel.Row) float64 {
		return r.Float(ColNeedNew) * r.Float(ColCost)
	})

	e.Assets = costmodel.NewTable(ColNumber, ColName, ColPercent, ColCostBefore, ColAmortisation, ColCostOpening, ColDelta, ColCostAfter)
	delta := format.Round(e.NewCost/techEquipmentShare*newAssetShare, 2)
	nonTech, _ := eq.Assets.Find(ColName, nonTechEquipmentRow)
	for _, old := range eq.Assets.Rows() {
		number, name, share, cost := old.Str(ColNumber), old.Str(ColName), old.Float(ColPercent), old.Float(ColCost)
		amort := 0.0
		if number != landRowNumber {
			amort = format.Round(cost*fixedAssetAmortisation, 2)
		}
		opening := cost - amort
		var add float64
		switch name {
		case techEquipmentRow:
			add = e.NewCost
		case equipmentRow:
			add = e.NewCost + format.Round(delta*nonTech.Float(ColPercent), 2)
		default:
			add = delta * share
		}
		add = format.Round(add, 2)
		after := opening + add
		if number != "" {
			e.FixedAssets += after
			if number != landRowNumber {
				e.Amortisable += after
			}
		}
		e.Assets.AddRow(number, name, share, cost, amort, opening, add, after)
	}
	e.InitialCost = eq.InitialCost + e.NewCost
	return e
}

// NewMixPayroll is section 2.3: chapter 2 staffing scaled to the mix hours.
// Auxiliary and salaried staff keep their chapter 2 shares of core workers.
func NewMixPayroll(in Inputs, mix *Mix, base *Payroll) *Payroll {
	p := &Payroll{
		WorkerFund: mix.Calendar.WorkerFund(),
		Salary:     base.Salary,
		Bonus:      base.Bonus,
		Stimulus:   base.Stimulus,
	}
	for _, pv := range mix.products(in) {
		p.TotalTime += float64(pv.volume) * pv.prod.totalTime()
		p.Operations += pv.prod.Operations.Len()
	}
	p.CoreRaw = p.TotalTime / p.WorkerFund
	p.Core = int(math.Ceil(p.CoreRaw))

	p.Auxiliary = base.Auxiliary.Clone(float64(p.Core))
	p.Staff = base.Staff.Clone(float64(p.Core))
	p.AuxCount = int(p.Auxiliary.Total())
	p.StaffCount = int(p.Staff.Total())
	p.Headcount = p.Core + p.AuxCount + p.StaffCount

	p.HourlyRate = 12 * p.Salary / p.WorkerFund
	p.CorePay = p.HourlyRate * p.TotalTime
	p.CoreExtra = float64(p.Core) * (p.Bonus*12 + p.Stimulus*p.Salary)
	p.AuxPay = p.Auxiliary.CalcSum(p.yearlyPay)
	p.StaffPay = p.Staff.CalcSum(p.yearlyPay)

	p.Wages = costmodel.NewValue("fot", p.AuxPay+p.StaffPay, p.CorePay+p.CoreExtra, "Затраты на оплату труда")
	p.attachFees()
	return p
}

// commercialRound is the step the mix commercial budget is rounded down to.
const commercialRound = 10_000

// MixCosts is section 2.4: the cost estimate of the product mix.
type MixCosts struct {
	UnitMaterialsA float64
	UnitMaterialsB float64
	UnitMaterialsC float64

	Costs      *Costs
	Commercial *costmodel.Value // "S_kom"
	Sum        *costmodel.Value // "S_sum"
}

func NewMixCosts(in Inputs, mix *Mix, me *MixEquipment, pay *Payroll, base *Costs) *MixCosts {
	m := &MixCosts{
		UnitMaterialsA: in.A.unitMaterialCost(),
		UnitMaterialsB: base.UnitMaterials,
		UnitMaterialsC: in.C.unitMaterialCost(),
	}
	materials := float64(mix.A)*m.UnitMaterialsA + float64(mix.B)*m.UnitMaterialsB + float64(mix.C)*m.UnitMaterialsC

	c := &Costs{
		Intangible:             format.Round(base.Intangible-base.IntangibleAmortisation, 2),
		IntangibleAmortisation: base.IntangibleAmortisation,
		FixedAssetAmortisation: format.Round(fixedAssetAmortisation*me.Amortisable, 2),
		Repair:                 format.Round(repairShare*me.Amortisable, 2),
	}
	c.Materials = materialCosts(materials, nil)
	c.Tree = costmodel.Group("S proizv", "Затраты")
	c.Tree.AddChild(c.Materials)
	c.Tree.AddChild(pay.Wages)
	c.Tree.AddChild(pay.Fees)
	c.Tree.AddChild(amortisation(c.FixedAssetAmortisation, c.IntangibleAmortisation))

	extra := costmodel.Group("extra", "Прочие затраты")
	extra.AddChild(costmodel.NewValue("OS fix", c.Repair, 0, "Средства на ремонт ОС"))
	extra.AddChild(costmodel.NewValue("pure extra", c.Tree.Const()*extraShare, c.Tree.Variable()*extraShare, ""))
	c.Tree.AddChild(extra)
	c.Total = c.Tree.Total()
	m.Costs = c

	s := math.Floor(c.Total*commercialShare/commercialRound) * commercialRound
	fixed := format.Round(s*commercialFixedShare, 2)
	m.Commercial = costmodel.NewValue("S_kom", fixed, format.Round(s-fixed, 2), "Коммерческие затраты")
	m.Sum = costmodel.Group("S_sum", "Суммарные затраты")
	m.Sum.AddChild(c.Tree)
	m.Sum.AddChild(m.Commercial)
	return m
}
