package casestudy

import (
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

const (
	rawStockExtra     = 0.4 // other production stock, over materials and accessories
	cycleGamma        = 50  // batch factor of the production cycle
	finishedGoodsDays = 10  // days finished goods wait for shipment
	stockShare        = 0.6 // normalised stock share of working capital
)

// WorkingCapital is chapter 5: the working capital need.
type WorkingCapital struct {
	Materials       float64 // K_ob.sr.mk, materials and accessories stock
	ProductionStock float64 // K_ob.sr.pr.zap
	WIPFactor       float64 // k_nz, cost growth factor of work in progress
	Cycle           float64 // T_cycle, days
	WorkInProgress  float64 // K_ob.nez.pr
	FinishedGoods   float64 // K_ob.got.prod
	Extra           float64 // K_ob.extra, the non-normalised part
	Total           float64 // K_ob.sum
}

func NewWorkingCapital(in Inputs, eq *Equipment, costs *Costs, uc *UnitCost) *WorkingCapital {
	w := &WorkingCapital{}
	cal := eq.Calendar
	n := float64(in.PlanVolume)
	days := float64(cal.Days)

	mz := format.Round(in.B.Materials.CalculateSum(dailyStock(n, days)), 2)
	cz := format.Round(in.B.Accessories.CalculateSum(dailyStock(n, days)), 2)
	w.Materials = format.Round(mz+cz, 2)
	w.ProductionStock = format.Round((1+rawStockExtra)*w.Materials, 2)

	sb := uc.UnitProduction
	w.WIPFactor = (costs.UnitMaterials + sb) / (sb * 2)
	w.Cycle = format.Round(in.B.totalTime()*cycleGamma/
		float64(cal.Shifts*cal.ShiftHours)*days/float64(cal.Days-cal.DaysOff), 3)
	w.WorkInProgress = sb * n / days * w.WIPFactor * w.Cycle
	w.FinishedGoods = format.Round(sb*n/days*finishedGoodsDays, 2)

	normalised := format.Round(w.ProductionStock+w.WorkInProgress+w.FinishedGoods, 2)
	w.Total = format.Round(normalised/stockShare, 2)
	w.Extra = format.Round(w.Total-normalised, 2)
	return w
}

// dailyStock values a consumable's stock: daily need times the stock norm.
func dailyStock(volume, days float64) func(costmodel.Row) float64 {
	return func(r costmodel.Row) float64 {
		return r.Float(ColAmount) * r.Float(ColCost) * volume / days * r.Float(ColStock)
	}
}
