package casestudy

import (
	"github.com/dgallion1/costcase/internal/balance"
	"github.com/dgallion1/costcase/internal/format"
)

const (
	deferredShare  = 0.3  // deferred expenses, of the non-normalised working capital
	charterShare   = 0.8  // charter capital, of total assets
	longTermShare  = 0.6  // long-term loans, of liabilities
	shortTermShare = 0.25 // short-term loans, of liabilities
)

// Opening is chapter 6: the balance sheet at the start of the year.
type Opening struct {
	Sheet       balance.Sheet
	Liabilities float64 // assets not covered by the charter capital
}

func NewOpening(eq *Equipment, costs *Costs, wc *WorkingCapital) *Opening {
	o := &Opening{}
	s := &o.Sheet
	s.Intangible = costs.Intangible
	s.Fixed = eq.FixedAssets

	s.Deferred = format.Round(wc.Extra*deferredShare, 2)
	s.RawMaterials = wc.ProductionStock
	s.Cash = wc.Total - (wc.ProductionStock + s.Deferred)
	s.OtherStock = wc.Extra - s.Deferred

	s.Charter = format.Round(s.Active()*charterShare, 2)
	o.Liabilities = s.Active() - s.Charter
	s.LongTermLoans = format.Round(o.Liabilities*longTermShare, 2)
	s.ShortTermLoans = format.Round(o.Liabilities*shortTermShare, 2)
	s.OtherShortTerm = format.Round(o.Liabilities-s.LongTermLoans-s.ShortTermLoans, 2)
	return o
}
