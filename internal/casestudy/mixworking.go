package casestudy

import "github.com/dgallion1/costcase/internal/format"

// ProductStock is the working capital one product ties up.
type ProductStock struct {
	WIPFactor      float64 // k_nz
	Cycle          float64 // T_cycle, days
	WorkInProgress float64
	FinishedGoods  float64
}

// MixWorkingCapital is section 2.6: the working capital need of the mix.
type MixWorkingCapital struct {
	Materials       float64 // K_ob.sr.mk over all products
	ProductionStock float64 // K_ob.sr.pr.zap

	A, B, C ProductStock

	WorkInProgress float64 // K_ob.nez.pr
	FinishedGoods  float64 // K_ob.got.prod
	Total          float64 // K_ob.sum
	Extra          float64 // K_ob.extra
	Deferred       float64 // K_ob.RBP, carried from the opening balance
	Cash           float64 // K_ob.ds
}

func NewMixWorkingCapital(in Inputs, mix *Mix, uc *MixUnitCost, open *Opening) *MixWorkingCapital {
	w := &MixWorkingCapital{}
	cal := mix.Calendar
	days := float64(cal.Days)

	var stock float64
	for _, pv := range mix.products(in) {
		n := float64(pv.volume)
		stock += pv.prod.Materials.CalculateSum(dailyStock(n, days))
		stock += pv.prod.Accessories.CalculateSum(dailyStock(n, days))
	}
	w.Materials = format.Round(stock, 2)
	w.ProductionStock = format.Round((1+rawStockExtra)*w.Materials, 2)

	cycle := cycleGamma / float64(cal.Shifts*cal.ShiftHours) * days / float64(cal.Days-cal.DaysOff)
	product := func(p Product, pc *ProductCost) ProductStock {
		sp := pc.Production
		daily := sp * float64(pc.Volume) / days
		ps := ProductStock{
			WIPFactor: (pc.Direct.Materials + sp) / (sp * 2),
			Cycle:     format.Round(p.totalTime()*cycle, 3),
		}
		ps.WorkInProgress = daily * ps.WIPFactor * ps.Cycle
		ps.FinishedGoods = daily * finishedGoodsDays
		return ps
	}
	w.A = product(in.A, uc.A)
	w.B = product(in.B, uc.B)
	w.C = product(in.C, uc.C)

	w.WorkInProgress = format.Round(w.A.WorkInProgress+w.B.WorkInProgress+w.C.WorkInProgress, 2)
	w.FinishedGoods = format.Round(w.A.FinishedGoods+w.B.FinishedGoods+w.C.FinishedGoods, 2)

	normalised := format.Round(w.ProductionStock+w.WorkInProgress+w.FinishedGoods, 2)
	w.Total = format.Round(normalised/stockShare, 2)
	w.Extra = format.Round(w.Total-normalised, 2)
	w.Deferred = open.Sheet.Deferred
	w.Cash = w.Total - (w.ProductionStock + w.Deferred)
	return w
}
