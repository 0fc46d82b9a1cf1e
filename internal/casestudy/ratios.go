package casestudy

import (
	"math"

	"github.com/dgallion1/costcase/internal/balance"
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

// PlanActual is an indicator computed for the plan and for the actual year.
type PlanActual struct {
	Plan   float64
	Actual float64
}

func planActual(fn func(plan bool) float64) PlanActual {
	return PlanActual{Plan: fn(true), Actual: fn(false)}
}

// Ratios is chapter 10: financial condition and break-even analysis.
type Ratios struct {
	OwnWorkingCapital PlanActual // r2 - r5
	OwnFunds          PlanActual // own working capital over r2
	AbsoluteLiquidity PlanActual
	CurrentLiquidity  PlanActual

	Productivity        float64 // V, units per employee
	MeanFixedAssets     float64
	CapitalProductivity PlanActual // FO
	CapitalIntensity    PlanActual // FE

	MeanCurrentAssets PlanActual
	AssetTurnover     PlanActual
	MeanEquity        PlanActual
	EquityTurnover    PlanActual

	ProductionReturn PlanActual
	SalesReturn      PlanActual
	AssetReturn      PlanActual
	EquityReturn     PlanActual

	BreakEvenVolume   int     // N_kr
	BreakEvenRevenue  float64 // Q_kr
	Coverage          *costmodel.CalculateTable[int, float64]
	FinancialStrength PlanActual
	OperatingLeverage PlanActual
}

// costsAtFunc recomputes chapter 4 at another volume with fixed costs frozen.
type costsAtFunc func(volume int) *UnitCost

func NewRatios(in Inputs, p Params, eq *Equipment, pay *Payroll, costs *Costs, uc *UnitCost,
	open *Opening, pr *Pricing, res *Results, cl *Closing, costsAt costsAtFunc) *Ratios {
	r := &Ratios{}
	sheet := func(plan bool) balance.Sheet {
		if plan {
			return cl.PlanSheet
		}
		return cl.ActualSheet
	}
	outcome := func(plan bool) Outcome {
		if plan {
			return res.Plan
		}
		return res.Actual
	}

	r.OwnWorkingCapital = planActual(func(plan bool) float64 { s := sheet(plan); return s.R2() - s.R5() })
	r.OwnFunds = planActual(func(plan bool) float64 { s := sheet(plan); return (s.R2() - s.R5()) / s.R2() })
	r.AbsoluteLiquidity = planActual(func(plan bool) float64 { s := sheet(plan); return s.Cash / s.R5() })
	r.CurrentLiquidity = planActual(func(plan bool) float64 { s := sheet(plan); return s.R2() / s.R5() })

	r.Productivity = float64(in.PlanVolume) / float64(pay.Headcount)
	r.MeanFixedAssets = format.Round(eq.Amortisable-costs.FixedAssetAmortisation*0.5, 2)
	r.CapitalProductivity = planActual(func(plan bool) float64 { return outcome(plan).Revenue / r.MeanFixedAssets })
	r.CapitalIntensity = planActual(func(plan bool) float64 {
		return 1 / (outcome(plan).Revenue / r.MeanFixedAssets)
	})

	r.MeanCurrentAssets = planActual(func(plan bool) float64 {
		return format.Round((open.Sheet.R2()+sheet(plan).R2())*0.5, 2)
	})
	r.AssetTurnover = PlanActual{
		Plan:   res.Plan.Revenue / r.MeanCurrentAssets.Plan,
		Actual: res.Actual.Revenue / r.MeanCurrentAssets.Actual,
	}
	r.MeanEquity = planActual(func(plan bool) float64 {
		return format.Round((open.Sheet.R3()+sheet(plan).R3())*0.5, 2)
	})
	r.EquityTurnover = PlanActual{
		Plan:   res.Plan.Revenue / r.MeanEquity.Plan,
		Actual: res.Actual.Revenue / r.MeanEquity.Actual,
	}

	total := uc.Sum.Total()
	r.ProductionReturn = planActual(func(plan bool) float64 { return outcome(plan).SalesProfit / total })
	r.SalesReturn = planActual(func(plan bool) float64 { o := outcome(plan); return o.NetProfit / o.Revenue })
	r.AssetReturn = planActual(func(plan bool) float64 { return outcome(plan).NetProfit / sheet(plan).Active() })
	r.EquityReturn = PlanActual{
		Plan:   res.Plan.NetProfit / r.MeanEquity.Plan,
		Actual: res.Actual.NetProfit / r.MeanEquity.Actual,
	}

	r.BreakEvenVolume = BreakEven(in.PlanVolume, pr.PlanPrice, costsAt)
	r.BreakEvenRevenue = float64(r.BreakEvenVolume) * pr.PlanPrice
	r.Coverage = costmodel.NewCalculateTable(p.VolumeSamples, func(n int) float64 {
		return (pr.PlanPrice - costsAt(n).Unit.Variable()) / pr.PlanPrice
	})
	r.FinancialStrength = planActual(func(plan bool) float64 {
		q := outcome(plan).Revenue
		return (q - r.BreakEvenRevenue) / q
	})
	r.OperatingLeverage = PlanActual{
		Plan:   (res.Plan.Revenue - uc.Sum.Variable()) / res.Plan.SalesProfit,
		Actual: (res.Actual.Revenue - uc.Unit.Variable()*float64(res.ActualVolume)) / res.Actual.SalesProfit,
	}
	return r
}

// BreakEven bisects [0, plan] for the largest volume whose revenue at
// price does not exceed the full cost at that volume.
func BreakEven(plan int, price float64, costsAt costsAtFunc) int {
	left, right := 0, plan
	for right-left > 1 {
		mid := int(math.RoundToEven(float64(left+right) / 2))
		if float64(mid)*price > costsAt(mid).Sum.Total() {
			right = mid
		} else {
			left = mid
		}
	}
	return left
}
