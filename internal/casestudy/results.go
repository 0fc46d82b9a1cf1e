package casestudy

import "github.com/dgallion1/costcase/internal/format"

const (
	actualVolumeShare     = 0.95 // actually produced, of the plan
	actualCommercialShare = 0.94
	actualOtherShare      = 0.93 // actual other expenses, of the plan
)

// Outcome is one column (plan or actual) of the financial results.
type Outcome struct {
	Volume          int
	Revenue         float64 // Q
	FinishedGoods   float64 // finished goods left at year end
	CostOfSales     float64 // S_pr of goods sold
	GrossProfit     float64
	Commercial      float64
	SalesProfit     float64 // P_pr
	OtherExpenses   float64
	ProfitBeforeTax float64
	Tax             float64
	NetProfit       float64
}

// Results is chapter 8: planned and actual financial results.
type Results struct {
	ActualVolume int // N_fact
	Unsold       int // N_ost
	Plan         Outcome
	Actual       Outcome
}

func NewResults(in Inputs, costs *Costs, uc *UnitCost, wc *WorkingCapital, pr *Pricing) *Results {
	r := &Results{}
	r.ActualVolume = int(actualVolumeShare * float64(in.PlanVolume))
	r.Unsold = in.PlanVolume - r.ActualVolume

	plan, act := &r.Plan, &r.Actual
	plan.Volume, act.Volume = in.PlanVolume, r.ActualVolume
	plan.Revenue = pr.PlanPrice * float64(in.PlanVolume)
	act.Revenue = pr.ActualPrice * float64(r.ActualVolume)

	plan.FinishedGoods = wc.FinishedGoods
	act.FinishedGoods = wc.FinishedGoods + format.Round(uc.UnitProduction*float64(r.Unsold), 2)
	plan.CostOfSales = costs.Total - wc.WorkInProgress - plan.FinishedGoods
	act.CostOfSales = costs.Total - wc.WorkInProgress - act.FinishedGoods

	plan.GrossProfit = plan.Revenue - plan.CostOfSales
	act.GrossProfit = act.Revenue - act.CostOfSales

	plan.Commercial = uc.Commercial.Total()
	act.Commercial = actualCommercialShare * uc.Commercial.Total()
	plan.SalesProfit = plan.GrossProfit - plan.Commercial
	act.SalesProfit = act.GrossProfit - act.Commercial

	plan.ProfitBeforeTax = pr.ProfitBeforeTax
	plan.OtherExpenses = plan.SalesProfit - plan.ProfitBeforeTax
	act.OtherExpenses = format.Round(plan.OtherExpenses*actualOtherShare, 2)
	act.ProfitBeforeTax = act.SalesProfit - act.OtherExpenses

	plan.Tax = plan.ProfitBeforeTax - pr.NetProfit
	act.Tax = format.Round(act.ProfitBeforeTax*pr.Tax, 2)
	plan.NetProfit = pr.NetProfit
	act.NetProfit = act.ProfitBeforeTax - act.Tax
	return r
}
