package casestudy

import (
	"math"

	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

const (
	coreSalary     = 50_000 // monthly tariff of a core production worker
	coreBonus      = 5_000  // monthly bonus of a core worker meeting the plan
	stimulusShare  = 1.0    // yearly stimulus, in monthly salaries
	insuranceShare = 0.34   // insurance fees on payroll
)

// Insurance fee structure (share of payroll).
var insuranceFees = []struct {
	name  string
	share float64
}{
	{"ОПФ", 0.22},
	{"ФОМС", 0.051},
	{"ФСС", 0.029},
	{"Страхование от несчастных случаев на производстве и профессиональных заболеваний", 0.04},
}

// Payroll is chapter 2: headcount, wage fund and insurance fees.
type Payroll struct {
	WorkerFund float64 // F_rab.ef
	TotalTime  float64 // Σ t over the routing, hours per unit
	Operations int     // m, operations in the routing

	CoreRaw float64 // R_opr before rounding
	Core    int     // R_opr

	Auxiliary  *costmodel.PerPercentTable // VPR, payload is the monthly salary
	Staff      *costmodel.PerPercentTable // SL, payload is the monthly salary
	AuxCount   int                        // R_vpr
	StaffCount int                        // R_sl
	Headcount  int                        // R_ppp

	Salary   float64 // core monthly tariff
	Bonus    float64 // core monthly bonus
	Stimulus float64 // yearly stimulus in salaries

	HourlyRate float64 // C_tar.st
	PieceRate  float64 // p_sr

	CorePay   float64 // FOT_opr, piece wages
	CoreExtra float64 // bonuses and stimulus of core workers
	AuxPay    float64 // FOT_vpr
	StaffPay  float64 // FOT_sl

	Wages         *costmodel.Value           // "fot"
	Insurance     *costmodel.PerPercentTable // fee breakdown of the wage total
	Fees          *costmodel.Value           // "fot fee"
	WagesWithFees *costmodel.Value           // "fot total"
}

// NewPayroll computes chapter 2. When frozen is non-nil its "fot" node
// supplies the fixed wage fund (volume what-if recomputation).
func NewPayroll(in Inputs, eq *Equipment, frozen *costmodel.Value) *Payroll {
	p := &Payroll{
		WorkerFund: eq.Calendar.WorkerFund(),
		TotalTime:  in.B.totalTime(),
		Operations: in.B.Operations.Len(),
		Salary:     coreSalary,
		Bonus:      coreBonus,
		Stimulus:   stimulusShare,
	}
	n := float64(in.PlanVolume)

	p.CoreRaw = n * p.TotalTime / p.WorkerFund
	p.Core = int(math.Ceil(p.CoreRaw))

	p.Auxiliary = auxiliaryStaff(p.Core)
	p.Staff = salariedStaff(p.Core)
	p.AuxCount = int(p.Auxiliary.Total())
	p.StaffCount = int(p.Staff.Total())

	p.HourlyRate = 12 * p.Salary / p.WorkerFund
	p.PieceRate = p.HourlyRate * p.TotalTime / float64(p.Operations)

	p.CorePay = p.PieceRate * n * float64(p.Operations)
	p.CoreExtra = float64(p.Core) * (p.Bonus*12 + p.Stimulus*p.Salary)
	p.AuxPay = p.Auxiliary.CalcSum(p.yearlyPay)
	p.StaffPay = p.Staff.CalcSum(p.yearlyPay)

	p.Headcount = p.Core + p.AuxCount + p.StaffCount

	fixed := p.AuxPay + p.StaffPay
	if f := frozen.Find("fot"); f != nil {
		fixed = f.Const()
	}
	p.Wages = costmodel.NewValue("fot", fixed, p.CorePay+p.CoreExtra, "Затраты на оплату труда")
	p.attachFees()
	return p
}

func (p *Payroll) yearlyPay(amount float64, payload any) float64 {
	return amount * payload.(float64) * (12 + p.Stimulus)
}

func (p *Payroll) attachFees() {
	p.Insurance = costmodel.NewPerPercentTable(p.Wages.Total(), false, false)
	for _, f := range insuranceFees {
		p.Insurance.AddRow(f.name, f.share, nil)
	}
	p.Fees = costmodel.NewValue("fot fee",
		format.Round(p.Wages.Const()*insuranceShare, 2),
		format.Round(p.Wages.Variable()*insuranceShare, 2),
		"Страховые взносы")
	p.WagesWithFees = costmodel.Group("fot total", "ФОТ")
	p.WagesWithFees.AddChild(p.Wages)
	p.WagesWithFees.AddChild(p.Fees)
}

// auxiliaryStaff allocates auxiliary workers as shares of core workers.
func auxiliaryStaff(core int) *costmodel.PerPercentTable {
	t := costmodel.NewPerPercentCount(core, true, false)
	t.AddRow("Настройщик оборудования", 0.05, 60_000.0)
	t.AddRow("Складовщик", 0.07, 50_000.0)
	t.AddRow("Уборщик", 0.05, 30_000.0)
	t.AddRow("Контролёр ОТК", 0.07, 80_000.0)
	return t
}

// salariedStaff allocates salaried employees. Management positions are
// single seats; the rest are fixed counts expressed as shares of core
// workers, with couriers taking half of the core count less ten.
func salariedStaff(core int) *costmodel.PerPercentTable {
	r := float64(core)
	t := costmodel.NewPerPercentCount(core, true, false)
	t.AddRow("Генеральный директор", 0, 120_000.0)
	t.AddRow("HR", 0, 70_000.0)
	t.AddRow("Менеджер по закупу", 0, 70_000.0)
	t.AddRow("Менеджер по производству", 0, 85_000.0)
	t.AddRow("Инженер", 2./r, 85_000.0)
	t.AddRow("Бухгалтер", 2./r, 80_000.0)
	t.AddRow("Охранник", 4./r, 35_000.0)
	t.AddRow("Логист", 3./r, 50_000.0)
	t.AddRow("Курьер", 0.5-10./r, 45_000.0)
	return t
}
