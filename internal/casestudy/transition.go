package casestudy

import (
	"github.com/dgallion1/costcase/internal/balance"
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

// clearanceMargin is the share of the actual margin kept when the unsold
// goods of the first period are cleared.
const clearanceMargin = 0.7

// Surplus machine table columns.
const (
	ColSurplus  = "extra"
	ColResidual = "cost" // residual value of one machine
)

// TransitionStep is one intermediate balance sheet between the periods.
type TransitionStep struct {
	Label string
	Sheet balance.Sheet
}

// Transition is section 2.7: the balance sheet moving from the end of the
// first period to the start of the second.
type Transition struct {
	ClearancePrice   float64 // TS_real.ost
	ClearanceRevenue float64 // P_real.ost
	ClearanceTax     float64
	ClearanceNet     float64

	Surplus     *costmodel.Table // name, extra, cost
	SurplusSale float64          // S_sell.OS

	EquipmentPurchase float64 // new machines
	AssetPurchase     float64 // other fixed assets the expansion adds

	EndOfPeriod   balance.Sheet
	BuyEquipment  balance.Sheet
	BuyAssets     balance.Sheet
	SellStock     balance.Sheet
	SellEquipment balance.Sheet
	Opening       balance.Sheet // start of the second period
}

// Steps lists the sheets in order.
func (t *Transition) Steps() []TransitionStep {
	return []TransitionStep{
		{"Конец I периода", t.EndOfPeriod},
		{"Покупка оборудования", t.BuyEquipment},
		{"Покупка ОПФ", t.BuyAssets},
		{"Продажа готовой продукции", t.SellStock},
		{"Продажа оборудования", t.SellEquipment},
		{"Начало II периода", t.Opening},
	}
}

// fund pays need from the cash above floor and borrows the rest short term.
func fund(s *balance.Sheet, need, floor float64) {
	free := s.Cash - floor
	if need <= free {
		s.Cash -= need
		return
	}
	s.ShortTermLoans += need - free
	s.Cash = floor
}

// repay settles the short-term loan from the cash above floor.
func repay(s *balance.Sheet, floor float64) {
	pos := settle(s.Cash, s.ShortTermLoans, floor)
	s.Cash, s.ShortTermLoans = pos.End, pos.Debt
}

func NewTransition(in Inputs, p Params, eq *Equipment, costs *Costs, uc *UnitCost, pr *Pricing,
	res *Results, cl *Closing, me *MixEquipment, wc *MixWorkingCapital) *Transition {
	t := &Transition{}
	unit := uc.Unit.Total()
	t.ClearancePrice = format.Round(unit+(pr.ActualPrice-unit)*clearanceMargin, 2)
	t.ClearanceRevenue = float64(res.Unsold) * t.ClearancePrice
	t.ClearanceTax = format.Round(t.ClearanceRevenue*pr.Tax, 2)
	t.ClearanceNet = t.ClearanceRevenue - t.ClearanceTax

	// Surplus machines are valued at the section I routing prices.
	t.Surplus = costmodel.NewTable(ColName, ColSurplus, ColResidual)
	var surplus float64
	for _, m := range me.Machines.Rows() {
		extra := m.Float(ColOnHand) - m.Float(ColNeedFact)
		if extra <= 0 {
			continue
		}
		op, ok := in.B.Operations.Find(ColName, m.Str(ColName))
		if !ok {
			continue
		}
		surplus += op.Float(ColCost) * extra
		t.Surplus.AddRow(m.Str(ColName), extra, format.Round(op.Float(ColCost)*(1-fixedAssetAmortisation), 2))
	}
	t.SurplusSale = format.Round(surplus*(1-fixedAssetAmortisation), 2)

	t.EquipmentPurchase = me.NewCost
	t.AssetPurchase = me.FixedAssets - eq.FixedAssets + costs.FixedAssetAmortisation - me.NewCost
	floor := p.CashFloor

	t.EndOfPeriod = cl.ActualSheet

	t.BuyEquipment = t.EndOfPeriod
	fund(&t.BuyEquipment, t.EquipmentPurchase, floor)
	t.BuyEquipment.Fixed += t.EquipmentPurchase

	t.BuyAssets = t.BuyEquipment
	fund(&t.BuyAssets, t.AssetPurchase, floor)
	t.BuyAssets.Fixed += t.AssetPurchase

	t.SellStock = t.BuyAssets
	sold := uc.UnitProduction * float64(res.Unsold)
	t.SellStock.Retained += t.ClearanceNet
	t.SellStock.FinishedGoods -= sold
	t.SellStock.Cash += sold + t.ClearanceNet
	repay(&t.SellStock, floor)

	t.SellEquipment = t.SellStock
	t.SellEquipment.Cash += t.SurplusSale
	t.SellEquipment.Fixed -= t.SurplusSale
	repay(&t.SellEquipment, floor)

	// The second period starts with the mix working capital; the first
	// period's goods and work in progress turn into cash.
	o := t.SellEquipment
	o.Cash += o.FinishedGoods + o.WorkInProgress
	o.FinishedGoods, o.WorkInProgress = 0, 0
	delta := wc.ProductionStock - cl.ActualSheet.RawMaterials + wc.Extra - cl.ActualSheet.OtherStock
	o.RawMaterials = wc.ProductionStock
	o.OtherStock = wc.Extra
	if delta > 0 {
		fund(&o, delta, floor)
	} else {
		o.Cash -= delta
	}
	t.Opening = o
	return t
}
