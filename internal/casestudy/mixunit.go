package casestudy

import (
	"github.com/dgallion1/costcase/internal/costmodel"
)

// Indirect cost table columns.
const (
	ColWork  = "work"  // related to equipment operation
	ColOther = "other" // not related to equipment operation
)

// Equipment-related shares of the mixed indirect items.
const (
	helperWorkShare    = 0.6
	inventoryWorkShare = 0.8
)

// DirectCosts are the direct costs of one unit.
type DirectCosts struct {
	Materials    float64 // materials and accessories
	Wages        float64 // core workers' pay
	Fees         float64 // insurance fees on Wages
	Amortisation float64 // amortisation of production equipment
}

func (d DirectCosts) Total() float64 {
	return d.Materials + d.Wages + d.Fees + d.Amortisation
}

// WorkOther splits indirect costs into the part related to equipment
// operation and the rest.
type WorkOther struct {
	Work  float64
	Other float64
}

func (w WorkOther) Total() float64 { return w.Work + w.Other }

// ProductCost is the production cost of one product of the mix.
type ProductCost struct {
	Name        string
	Volume      int
	Share       float64 // unit hours over the hours of the whole program
	MachineTime float64 // t', hours per unit without manual operations

	Direct   DirectCosts
	Indirect WorkOther // per unit

	WorkYear  float64 // S_sv.s.rab.ob, yearly equipment-related indirect costs
	OtherYear float64 // S_ne.sv.s.rab.ob, yearly other indirect costs

	Production float64 // S_proizv, per unit
}

// MixUnitCost is section 2.5: direct and indirect costs allocated to the
// products of the mix.
type MixUnitCost struct {
	A, B, C *ProductCost

	DirectTotal float64
	Indirect    *costmodel.Table // n, name, work, other; sub-rows have no n

	IndirectWork  float64
	IndirectOther float64
	MachineTime   float64 // Σ N·t' over the program
	MachineHour   float64 // S_m-ch, cost of one machine hour
	OtherRate     float64 // k_kosv
}

// Products returns A, B and C in report order.
func (u *MixUnitCost) Products() []*ProductCost {
	return []*ProductCost{u.A, u.B, u.C}
}

func NewMixUnitCost(in Inputs, mix *Mix, me *MixEquipment, pay *Payroll, mc *MixCosts) *MixUnitCost {
	tree := mc.Costs.Tree
	total := func(name string) float64 { return tree.Find(name).Total() }
	wages, fees := pay.Wages.Variable(), pay.Fees.Variable()
	production := me.InitialCost * fixedAssetAmortisation
	nonProduction := (me.Amortisable-me.InitialCost)*fixedAssetAmortisation + mc.Costs.IntangibleAmortisation

	u := &MixUnitCost{
		DirectTotal: total("material_main") + wages + fees + production,
		Indirect:    costmodel.NewTable(ColNumber, ColName, ColWork, ColOther),
	}

	helper, inventory := total("helper"), total("inventory")
	fuelTech, fuelOther := total("fuel tech"), total("fuel non tech")
	ind := u.Indirect
	ind.AddRow("1", "Вспомогательные материалы", helper*helperWorkShare, helper*(1-helperWorkShare))
	ind.AddRow("2", "Транспортно-заготовительные расходы", 0.0, total("move save"))
	ind.AddRow("3", "Инструменты, инвентарь, хозяйственные принадлежности", inventory*inventoryWorkShare, inventory*(1-inventoryWorkShare))
	ind.AddRow("4", "Топливо и энергия", fuelTech, fuelOther)
	ind.AddRow("", "    на технологические цели", fuelTech, 0.0)
	ind.AddRow("", "    на нетехнологические цели", 0.0, fuelOther)
	ind.AddRow("5", "Заработная плата служащих и вспомогательных рабочих", 0.0, pay.Wages.Const())
	ind.AddRow("6", "Страховые взносы (на указанную заработную плату)", 0.0, pay.Fees.Const())
	ind.AddRow("7", "Амортизация основных средств (не используемая при производстве продукции) и нематериальных активов", 0.0, nonProduction)
	ind.AddRow("8", "Затраты на ремонт оборудования", total("OS fix"), 0.0)
	ind.AddRow("9", "Прочие расходы", 0.0, total("pure extra"))

	items := ind.FilterTable(func(r costmodel.Row) bool { return r.Str(ColNumber) != "" })
	u.IndirectWork = items.CalculateSum(func(r costmodel.Row) float64 { return r.Float(ColWork) })
	u.IndirectOther = items.CalculateSum(func(r costmodel.Row) float64 { return r.Float(ColOther) })

	newProduct := func(p Product, volume int) *ProductCost {
		share := p.totalTime() / pay.TotalTime
		pc := &ProductCost{
			Name:   p.Name,
			Volume: volume,
			Share:  share,
			Direct: DirectCosts{
				Materials:    p.unitMaterialCost(),
				Wages:        wages * share,
				Fees:         fees * share,
				Amortisation: production * share,
			},
		}
		pc.MachineTime = p.Operations.CalculateSum(func(r costmodel.Row) float64 {
			if !isMachineOperation(r.Str(ColName)) {
				return 0
			}
			return r.Float(ColTime)
		})
		return pc
	}
	u.A, u.B, u.C = newProduct(in.A, mix.A), newProduct(in.B, mix.B), newProduct(in.C, mix.C)

	for _, pc := range u.Products() {
		u.MachineTime += float64(pc.Volume) * pc.MachineTime
	}
	u.MachineHour = u.IndirectWork / u.MachineTime
	u.OtherRate = u.IndirectOther / (u.IndirectWork + wages)

	for _, pc := range u.Products() {
		n := float64(pc.Volume)
		pc.WorkYear = pc.MachineTime * n * u.MachineHour
		pc.OtherYear = (n*pc.Direct.Wages + pc.WorkYear) * u.OtherRate
		pc.Indirect = WorkOther{
			Work:  pc.MachineTime * u.MachineHour,
			Other: pc.OtherYear / max(1, n),
		}
		pc.Production = pc.Direct.Total() + pc.Indirect.Total()
	}
	return u
}
