package casestudy

import (
	"math"

	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

// Quality table columns.
const (
	ColQualityA = "A"
	ColQualityB = "B"
	ColQualityC = "C"
	ColWeightA  = "weight A" // importance for buyers of A
	ColWeightC  = "weight C" // importance for buyers of C
	ColPower    = "power"    // 1 if a larger value is better, -1 if worse
)

// qualityTable holds the quality indices of the three products. X1 is
// equal across products and does not move the price.
func qualityTable() *costmodel.Table {
	t := costmodel.NewTable(ColName, ColQualityA, ColQualityB, ColQualityC, ColWeightA, ColWeightC, ColPower)
	t.AddRow("X1", 20.0, 20.0, 20.0, 0.1, 0.2, 0.0)
	t.AddRow("X2", 15.0, 12.0, 10.0, 0.5, 0.4, 1.0)
	t.AddRow("X3", 48.0, 60.0, 75.0, 0.4, 0.4, -1.0)
	return t
}

// ProductPrice is the price of one product of the mix by each method.
type ProductPrice struct {
	Name   string
	Volume int

	Costs *costmodel.Value // "S proizv", yearly production costs of the product
	Sum   *costmodel.Value // Costs plus the product's commercial costs
	Unit  *costmodel.Value // full cost of one unit

	ParametricPrice   float64
	FullCostPrice     float64
	VariableCostPrice float64
	PlanPrice         float64 // mean of the three
}

// MixPricing is section 2.8: prices of the mix by the parametric,
// full-cost and variable-cost methods.
type MixPricing struct {
	Quality        *costmodel.Table
	IndexA, IndexC float64 // parametric price index against B

	SalesProfit    float64 // P_prodaj, at the first period's actual return
	Markup         float64 // k_nats, over full cost
	VariableMarkup float64 // over variable cost

	A, B, C *ProductPrice
}

// Products returns A, B and C in report order.
func (m *MixPricing) Products() []*ProductPrice {
	return []*ProductPrice{m.A, m.B, m.C}
}

func NewMixPricing(in Inputs, pr *Pricing, rt *Ratios, pay *Payroll, mc *MixCosts, uc *MixUnitCost) *MixPricing {
	m := &MixPricing{Quality: qualityTable()}
	index := func(col, weight string) float64 {
		return m.Quality.CalculateSum(func(r costmodel.Row) float64 {
			if r.Float(ColPower) == 0 {
				return 0
			}
			return math.Pow(r.Float(col)/r.Float(ColQualityB), r.Float(ColPower)) * r.Float(weight)
		})
	}
	m.IndexA = index(ColQualityA, ColWeightA)
	m.IndexC = index(ColQualityC, ColWeightC)

	sum := mc.Sum
	m.SalesProfit = sum.Total() * rt.ProductionReturn.Actual
	m.Markup = m.SalesProfit / sum.Total()
	m.VariableMarkup = (m.SalesProfit + sum.Const()) / sum.Variable()

	commercial := mc.Commercial.Total()
	commercialUnit := commercial / float64(in.PlanVolume)

	var workYear, otherYear float64
	for _, pc := range uc.Products() {
		workYear += pc.WorkYear
		otherYear += pc.OtherYear
	}
	newPrice := func(pc *ProductCost, share, parametric float64) *ProductPrice {
		n := max(1, float64(pc.Volume))
		w, o := pc.WorkYear/workYear, pc.OtherYear/otherYear
		pp := &ProductPrice{
			Name:            pc.Name,
			Volume:          pc.Volume,
			Costs:           productCosts(pc, w, o, pay, mc, uc),
			ParametricPrice: parametric,
			FullCostPrice:   format.Round((pc.Production+commercialUnit)*(1+m.Markup), 2),
		}
		kom := commercial * share / n
		pp.Sum = costmodel.Group("S sum", "Суммарные затраты")
		pp.Sum.AddChild(pp.Costs)
		pp.Sum.AddChild(costmodel.NewValue("S_kom", kom*n*commercialFixedShare, kom*n*(1-commercialFixedShare), "Коммерческие затраты"))

		pp.Unit = costmodel.Group("S poln", "Полная себестоимость единицы")
		pp.Unit.AddChild(costmodel.NewValue("proizv", pp.Costs.Const()/n, pp.Costs.Variable()/n, "Производственная себестоимость"))
		pp.Unit.AddChild(costmodel.NewValue("S_kom", kom*commercialFixedShare, kom*(1-commercialFixedShare), "Коммерческие затраты"))

		pp.VariableCostPrice = format.Round(pp.Unit.Variable()*(1+m.VariableMarkup), 2)
		pp.PlanPrice = format.Round((pp.ParametricPrice+pp.FullCostPrice+pp.VariableCostPrice)/3, 2)
		return pp
	}
	m.A = newPrice(uc.A, mixShareA, format.Round(pr.ActualPrice*m.IndexA, 2))
	m.B = newPrice(uc.B, 1-mixShareA-mixShareC, format.Round(pr.ActualPrice, 2))
	m.C = newPrice(uc.C, mixShareC, format.Round(pr.ActualPrice*m.IndexC, 2))
	return m
}

// productCosts allocates the program's cost estimate to one product:
// equipment-related items by its share w of machine costs, the rest by its
// share o of other indirect costs.
func productCosts(pc *ProductCost, w, o float64, pay *Payroll, mc *MixCosts, uc *MixUnitCost) *costmodel.Value {
	tree := mc.Costs.Tree
	total := func(name string) float64 { return tree.Find(name).Total() }
	indirect := func(number string) float64 {
		r, _ := uc.Indirect.Find(ColNumber, number)
		return r.Float(ColWork) + r.Float(ColOther)
	}
	n := float64(pc.Volume)

	c := costmodel.Group("S proizv", "Затраты")
	mat := c.AddChild(costmodel.Group("material", "Материальные затраты"))
	mat.AddChild(costmodel.NewValue("material_main", 0, pc.Direct.Materials*n, "Основные материалы"))
	mat.AddChild(costmodel.NewValue("helper", 0,
		total("helper")*(helperWorkShare*w+(1-helperWorkShare)*o), "Вспомогательные материалы"))
	ms := total("move save") * o
	msFixed := ms * moveSaveFixedShare
	mat.AddChild(costmodel.NewValue("move save", msFixed, ms-msFixed, "Транспортно-заготовительные расходы"))
	mat.AddChild(costmodel.NewValue("inventory",
		total("inventory")*(inventoryWorkShare*w+(1-inventoryWorkShare)*o), 0, "Инструменты, инвентарь"))
	fe := mat.AddChild(costmodel.Group("fuel total", "Топливо и энергия"))
	fe.AddChild(costmodel.NewValue("fuel tech", 0, total("fuel tech")*w, "Технологическое топливо и энергия"))
	fe.AddChild(costmodel.NewValue("fuel non tech", total("fuel non tech")*o, 0, "Нетехнологическое топливо и энергия"))

	c.AddChild(costmodel.NewValue("fot", pay.Wages.Const()*o, pc.Direct.Wages*n, "Затраты на оплату труда"))
	c.AddChild(costmodel.NewValue("fot fee", pay.Fees.Const()*o, pc.Direct.Fees*n, "Страховые взносы"))
	c.AddChild(costmodel.NewValue("amortisation", pc.Direct.Amortisation*n+indirect("7")*o, 0, "Амортизация ОС и НМА"))

	fixedShare := c.Const() / c.Total()
	extra := indirect("9") * o
	ex := c.AddChild(costmodel.Group("extra", "Прочие затраты"))
	ex.AddChild(costmodel.NewValue("pure extra", extra*fixedShare, extra*(1-fixedShare), ""))
	ex.AddChild(costmodel.NewValue("OS fix", total("OS fix")*w, 0, "Средства на ремонт ОС"))
	return c
}
