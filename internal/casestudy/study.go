// Package casestudy computes the cost-accounting case: a single-product
// plant (chapters 1 to 10) and its product-mix extension (section II).
//
// Each chapter is built from the chapters before it. Study assembles
// them in order and can recompute the cost chapters at other volumes.
package casestudy

import (
	"github.com/dgallion1/costcase/internal/costmodel"
)

// Study is the computed case.
type Study struct {
	Inputs Inputs
	Params Params

	Equipment      *Equipment
	Payroll        *Payroll
	Costs          *Costs
	UnitCost       *UnitCost
	WorkingCapital *WorkingCapital
	Opening        *Opening
	Pricing        *Pricing
	Results        *Results
	Closing        *Closing
	Ratios         *Ratios

	// Total costs (S_sum collapsed) at each sampled volume.
	Samples *costmodel.CalculateTable[int, *costmodel.Value]

	Mix          *Mix
	MixEquipment *MixEquipment
	MixPayroll   *Payroll
	MixCosts     *MixCosts

	MixUnitCost       *MixUnitCost
	MixWorkingCapital *MixWorkingCapital
	Transition        *Transition
	MixPricing        *MixPricing
}

// Run validates the inputs and computes every chapter.
func Run(in Inputs, p Params) (*Study, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Study{Inputs: in, Params: p}
	s.Equipment = NewEquipment(in, p)
	s.Payroll = NewPayroll(in, s.Equipment, nil)
	s.Costs = NewCosts(in, s.Equipment, s.Payroll, nil)
	s.UnitCost = NewUnitCost(in.PlanVolume, s.Costs, nil)
	s.Samples = costmodel.NewCalculateTableCtx(s, p.VolumeSamples, func(s *Study, n int) *costmodel.Value {
		return s.CostsAt(n).Sum.Head(0)
	})

	s.WorkingCapital = NewWorkingCapital(in, s.Equipment, s.Costs, s.UnitCost)
	s.Opening = NewOpening(s.Equipment, s.Costs, s.WorkingCapital)
	s.Pricing = NewPricing(s.UnitCost, s.Opening)
	s.Results = NewResults(in, s.Costs, s.UnitCost, s.WorkingCapital, s.Pricing)
	s.Closing = NewClosing(p, s.Costs, s.Equipment, s.WorkingCapital, s.Opening, s.Results)
	s.Ratios = NewRatios(in, p, s.Equipment, s.Payroll, s.Costs, s.UnitCost,
		s.Opening, s.Pricing, s.Results, s.Closing, s.CostsAt)

	s.Mix = NewMix(in, p)
	s.MixEquipment = NewMixEquipment(in, p, s.Mix, s.Equipment)
	s.MixPayroll = NewMixPayroll(in, s.Mix, s.Payroll)
	s.MixCosts = NewMixCosts(in, s.Mix, s.MixEquipment, s.MixPayroll, s.Costs)
	s.MixUnitCost = NewMixUnitCost(in, s.Mix, s.MixEquipment, s.MixPayroll, s.MixCosts)
	s.MixWorkingCapital = NewMixWorkingCapital(in, s.Mix, s.MixUnitCost, s.Opening)
	s.Transition = NewTransition(in, p, s.Equipment, s.Costs, s.UnitCost, s.Pricing,
		s.Results, s.Closing, s.MixEquipment, s.MixWorkingCapital)
	s.MixPricing = NewMixPricing(in, s.Pricing, s.Ratios, s.MixPayroll, s.MixCosts, s.MixUnitCost)
	return s, nil
}

// CostsAt recomputes chapters 2 to 4 at volume n. Fixed costs stay at
// their plan-volume values; equipment is not resized.
func (s *Study) CostsAt(n int) *UnitCost {
	in := s.Inputs.WithVolume(n)
	pay := NewPayroll(in, s.Equipment, s.Payroll.Wages)
	costs := NewCosts(in, s.Equipment, pay, s.Costs.Tree)
	return NewUnitCost(n, costs, &frozenCommercial{value: s.UnitCost.Commercial, planVolume: s.Inputs.PlanVolume})
}
