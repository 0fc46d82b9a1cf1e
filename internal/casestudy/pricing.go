package casestudy

import (
	"math"

	"github.com/dgallion1/costcase/internal/format"
)

const (
	profitTax        = 0.2
	netProfitShare   = 0.6  // planned net profit, of charter capital
	actualPriceShare = 0.94 // actual price, of the planned price
)

// Pricing is chapter 7: target profit and the wholesale price.
type Pricing struct {
	Tax               float64
	NetProfit         float64 // P_chist
	ProfitBeforeTax   float64 // P_do.nalog
	Markup            float64 // k_nats, profit over full cost
	FullCostPrice     float64 // price by the full-cost method
	VariableCostPrice float64 // price by the variable-cost method
	PlanPrice         float64 // P_proizv.plan, the larger of the two
	ActualPrice       float64 // P_fact
}

func NewPricing(uc *UnitCost, open *Opening) *Pricing {
	p := &Pricing{Tax: profitTax}
	p.NetProfit = format.Round(open.Sheet.Charter*netProfitShare, 2)
	p.ProfitBeforeTax = format.Round(p.NetProfit/(1-p.Tax), 2)
	p.Markup = p.ProfitBeforeTax / uc.Sum.Total()
	p.FullCostPrice = format.Round(uc.Unit.Total()*(1+p.Markup), 2)
	p.VariableCostPrice = format.Round(
		uc.Unit.Variable()*(1+(p.ProfitBeforeTax+uc.Sum.Const())/uc.Sum.Variable()), 2)
	p.PlanPrice = math.Max(p.FullCostPrice, p.VariableCostPrice)
	p.ActualPrice = format.Round(p.PlanPrice*actualPriceShare, 2)
	return p
}
