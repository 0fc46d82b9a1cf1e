package casestudy

import "github.com/dgallion1/costcase/internal/balance"

// Repayment tells how much of the short-term loan the year's cash covers.
type Repayment int

const (
	RepayNone Repayment = iota
	RepayPart
	RepayFull
)

func (r Repayment) String() string {
	switch r {
	case RepayFull:
		return "full"
	case RepayPart:
		return "part"
	default:
		return "none"
	}
}

// CashPosition is the year-end cash of one scenario.
type CashPosition struct {
	Available float64 // K_den.sr before repayment
	End       float64 // cash left at year end
	Debt      float64 // short-term loan left at year end
	Repayment Repayment
}

// settle repays the loan while keeping floor in cash.
func settle(available, loan, floor float64) CashPosition {
	switch {
	case available-floor > loan:
		return CashPosition{Available: available, End: available - loan, Repayment: RepayFull}
	case available > floor:
		return CashPosition{Available: available, End: floor, Debt: loan - (available - floor), Repayment: RepayPart}
	default:
		return CashPosition{Available: available, End: available, Debt: loan, Repayment: RepayNone}
	}
}

// Closing is chapter 9: cash flow and the year-end balance sheets.
type Closing struct {
	Amortisation float64
	Plan         CashPosition
	Actual       CashPosition
	PlanSheet    balance.Sheet
	ActualSheet  balance.Sheet
}

func NewClosing(p Params, costs *Costs, eq *Equipment, wc *WorkingCapital, open *Opening, res *Results) *Closing {
	c := &Closing{Amortisation: costs.Tree.Find("amortisation").Total()}
	o := open.Sheet

	cash := func(net, finished float64) float64 {
		return o.Cash + c.Amortisation + net - (wc.WorkInProgress + finished)
	}
	c.Plan = settle(cash(res.Plan.NetProfit, res.Plan.FinishedGoods), o.ShortTermLoans, p.CashFloor)
	c.Actual = settle(cash(res.Actual.NetProfit, res.Actual.FinishedGoods), o.ShortTermLoans, p.CashFloor)

	base := balance.Sheet{
		Intangible:     costs.Intangible - costs.Tree.Find("amortisation NMA").Total(),
		Fixed:          eq.FixedAssets - costs.Tree.Find("amortisation OS").Total(),
		RawMaterials:   wc.ProductionStock,
		WorkInProgress: wc.WorkInProgress,
		Deferred:       o.Deferred,
		OtherStock:     o.OtherStock,
		Charter:        o.Charter,
		LongTermLoans:  o.LongTermLoans,
		OtherShortTerm: o.OtherShortTerm,
	}

	c.PlanSheet = base
	c.PlanSheet.FinishedGoods = wc.FinishedGoods
	c.PlanSheet.Cash = c.Plan.End
	c.PlanSheet.Retained = res.Plan.NetProfit
	// The plan assumes the short-term loan is repaid in full.
	c.PlanSheet.ShortTermLoans = 0

	c.ActualSheet = base
	c.ActualSheet.FinishedGoods = res.Actual.FinishedGoods
	c.ActualSheet.Cash = c.Actual.End
	c.ActualSheet.Retained = res.Actual.NetProfit
	c.ActualSheet.ShortTermLoans = c.Actual.Debt
	return c
}
