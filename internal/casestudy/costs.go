package casestudy

import (
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

// Cost structure shares.
const (
	helperShare        = 0.05 // auxiliary materials, of main materials
	moveSaveShare      = 0.12 // procurement and transport, of main materials
	moveSaveFixedShare = 0.3  // fixed part of procurement and transport
	inventoryShare     = 0.03 // tools and inventory, of main materials
	fuelShare          = 0.55 // fuel and energy, of main materials
	fuelTechShare      = 0.7  // technological part of fuel and energy

	fixedAssetAmortisation = 0.1       // yearly amortisation rate of fixed assets
	intangibleAssets       = 3_000_000 // NMA at cost
	intangibleAmortisation = 0.1       // yearly amortisation rate of intangibles
	repairShare            = 0.06      // repair fund, of amortisable fixed assets
	extraShare             = 0.05      // other costs, of all costs above
)

// Costs is chapter 3: the production cost estimate by economic element.
type Costs struct {
	UnitMaterials float64 // S_mat.i.komp, materials and accessories per unit

	Tree      *costmodel.Value // "S proizv"
	Materials *costmodel.Value // "material"

	FixedAssetAmortisation float64 // A_os
	Intangible             float64 // NMA
	IntangibleAmortisation float64 // A_nma
	Repair                 float64 // fixed-asset repair fund

	Total float64 // S_pr.tek.pl
}

// NewCosts builds the estimate. A non-nil frozen tree (a "S proizv" of the
// plan volume) keeps the fixed parts of procurement, inventory and
// non-technological fuel at their plan values.
func NewCosts(in Inputs, eq *Equipment, pay *Payroll, frozen *costmodel.Value) *Costs {
	c := &Costs{
		UnitMaterials: in.B.unitMaterialCost(),
		Intangible:    intangibleAssets,
	}
	c.Materials = materialCosts(float64(in.PlanVolume)*c.UnitMaterials, frozen)

	c.Tree = costmodel.Group("S proizv", "Затраты")
	c.Tree.AddChild(c.Materials)
	c.Tree.AddChild(pay.Wages)
	c.Tree.AddChild(pay.Fees)

	c.FixedAssetAmortisation = format.Round(fixedAssetAmortisation*eq.Amortisable, 2)
	c.IntangibleAmortisation = format.Round(intangibleAmortisation*c.Intangible, 2)
	c.Tree.AddChild(amortisation(c.FixedAssetAmortisation, c.IntangibleAmortisation))

	c.Repair = format.Round(repairShare*eq.Amortisable, 2)
	c.Tree.AddChild(costmodel.NewValue("extra",
		c.Tree.Const()*extraShare+c.Repair,
		c.Tree.Variable()*extraShare,
		"Прочие затраты"))

	c.Total = c.Tree.Total()
	return c
}

// Unit is the production cost of one unit at the given volume.
func (c *Costs) Unit(volume int) float64 {
	return c.Total / float64(volume)
}

// materialCosts builds the "material" subtree over a main-materials base.
func materialCosts(base float64, frozen *costmodel.Value) *costmodel.Value {
	m := costmodel.NewValue("material", 0, base, "Материальные затраты")
	m.AddChild(costmodel.NewValue("material_main", 0, base, "Основные материалы"))
	m.AddChild(costmodel.NewValue("helper", 0, format.Round(base*helperShare, 2), "Вспомогательные материалы"))

	ms := format.Round(base*moveSaveShare, 2)
	msFixed := format.Round(ms*moveSaveFixedShare, 2)
	msVar := format.Round(ms-msFixed, 2)
	if f := frozen.Find("move save"); f != nil {
		msFixed = f.Const()
		msVar = format.Round((1-moveSaveFixedShare)*ms, 2)
	}
	m.AddChild(costmodel.NewValue("move save", msFixed, msVar, "Транспортно-заготовительные расходы"))

	if f := frozen.Find("inventory"); f != nil {
		m.AddChild(f.Head(0))
	} else {
		m.AddChild(costmodel.NewValue("inventory", format.Round(base*inventoryShare, 2), 0, "Инструменты, инвентарь"))
	}

	fuel := format.Round(base*fuelShare, 2)
	fe := m.AddChild(costmodel.Group("fuel total", "Топливо и энергия"))
	tech := fe.AddChild(costmodel.NewValue("fuel tech", 0, format.Round(fuel*fuelTechShare, 2), "Технологическое топливо и энергия"))
	if f := frozen.Find("fuel non tech"); f != nil {
		fe.AddChild(f.Head(0))
	} else {
		fe.AddChild(costmodel.NewValue("fuel non tech", fuel-tech.Total(), 0, "Нетехнологическое топливо и энергия"))
	}
	return m
}

func amortisation(fixed, intangible float64) *costmodel.Value {
	a := costmodel.Group("amortisation", "Амортизация ОС и НМА")
	a.AddChild(costmodel.NewValue("amortisation OS", fixed, 0, "Амортизация ОС"))
	a.AddChild(costmodel.NewValue("amortisation NMA", intangible, 0, "Амортизация НМА"))
	return a
}
