package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/costcase/internal/balance"
	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/format"
)

// Table is a rendered report table. The first row of Rows is not a
// header; Header is written separately in bold.
type Table struct {
	Number  string
	Caption string
	Header  []string
	Rows    [][]string
}

// Title is the caption line written above the table.
func (t Table) Title() string {
	return fmt.Sprintf("Таблица %s. %s", t.Number, t.Caption)
}

type tableDef struct {
	number  string
	caption string
	build   func(s *casestudy.Study) ([]string, [][]string)
}

var tableDefs = map[string]tableDef{
	"initial-volume":      {"0.1", "Плановые показатели и режим работы", initialVolume},
	"initial-materials":   {"0.2", "Нормы расхода материалов на изделие Б", consumables(func(s *casestudy.Study) *costmodel.Table { return s.Inputs.B.Materials })},
	"initial-accessories": {"0.3", "Нормы расхода комплектующих на изделие Б", consumables(func(s *casestudy.Study) *costmodel.Table { return s.Inputs.B.Accessories })},
	"initial-operations":  {"0.4", "Технологический процесс изготовления изделия Б", operations},

	"machines":     {"1.1", "Расчёт потребности в технологическом оборудовании", machines},
	"fixed-assets": {"1.2", "Структура основных средств", fixedAssets},

	"staff":     {"2.1", "Штатное расписание", staff(func(s *casestudy.Study) *casestudy.Payroll { return s.Payroll })},
	"salaries":  {"2.2", "Фонд оплаты труда", salaries(func(s *casestudy.Study) *casestudy.Payroll { return s.Payroll })},
	"insurance": {"2.3", "Страховые взносы", insurance(func(s *casestudy.Study) *casestudy.Payroll { return s.Payroll })},

	"cost-estimate":  {"3.1", "Смета затрат на производство", costEstimate},
	"fixed-variable": {"3.2", "Постоянные и переменные затраты", fixedVariable(func(s *casestudy.Study) *costmodel.Value { return s.Costs.Tree })},

	"unit-cost":      {"4.1", "Полная себестоимость", unitCost},
	"volume-samples": {"4.2", "Затраты при различных объёмах выпуска", volumeSamples},

	"stock-norms": {"5.1", "Норматив производственных запасов", stockNorms},

	"opening-balance": {"6.1", "Баланс на начало периода", sheet(func(s *casestudy.Study) balance.Sheet { return s.Opening.Sheet })},

	"price": {"7.1", "Расчёт цены изделия", price},

	"results": {"8.1", "Отчёт о финансовых результатах", results},

	"cash-flow":      {"9.1", "Движение денежных средств", cashFlow},
	"closing-plan":   {"9.2", "Плановый баланс на конец периода", sheet(func(s *casestudy.Study) balance.Sheet { return s.Closing.PlanSheet })},
	"closing-actual": {"9.3", "Фактический баланс на конец периода", sheet(func(s *casestudy.Study) balance.Sheet { return s.Closing.ActualSheet })},

	"ratios":   {"10.1", "Показатели хозяйственной деятельности", ratios},
	"coverage": {"10.2", "Коэффициент покрытия", coverage},

	"mix-volume":        {"II.1", "Производственная программа", mixVolume},
	"mix-machines":      {"II.2", "Потребность в оборудовании", mixMachines},
	"mix-assets":        {"II.3", "Стоимость основных средств", mixAssets},
	"mix-staff":         {"II.4", "Численность и фонд оплаты труда", staff(func(s *casestudy.Study) *casestudy.Payroll { return s.MixPayroll })},
	"mix-insurance":     {"II.5", "Страховые взносы", insurance(func(s *casestudy.Study) *casestudy.Payroll { return s.MixPayroll })},
	"mix-cost-estimate": {"II.6", "Смета затрат на производственную программу", fixedVariable(func(s *casestudy.Study) *costmodel.Value { return s.MixCosts.Sum })},

	"mix-direct":    {"II.7", "Прямые затраты на единицу изделий", mixDirect},
	"mix-indirect":  {"II.8", "Смета косвенных расходов", mixIndirect},
	"mix-unit-cost": {"II.9", "Калькуляция изделий", mixUnitCost},

	"mix-working-capital": {"II.10", "Оборотные средства по изделиям", mixWorkingCapital},

	"transition-surplus": {"II.11", "Реализация избыточного оборудования", transitionSurplus},
	"transition-active":  {"II.12", "Переход ко второму периоду, актив", transitionSide(true)},
	"transition-passive": {"II.13", "Переход ко второму периоду, пассив", transitionSide(false)},

	"mix-quality": {"II.14", "Показатели качества изделий", mixQuality},
	"mix-costs-a": {"II.15", "Постоянные и переменные затраты изделия А", fixedVariable(func(s *casestudy.Study) *costmodel.Value { return s.MixPricing.A.Sum })},
	"mix-costs-b": {"II.16", "Постоянные и переменные затраты изделия Б", fixedVariable(func(s *casestudy.Study) *costmodel.Value { return s.MixPricing.B.Sum })},
	"mix-costs-c": {"II.17", "Постоянные и переменные затраты изделия В", fixedVariable(func(s *casestudy.Study) *costmodel.Value { return s.MixPricing.C.Sum })},
	"mix-prices":  {"II.18", "Цены изделий, полученные разными методами", mixPrices},
}

// TableIDs lists every registered table id, sorted.
func TableIDs() []string {
	ids := make([]string, 0, len(tableDefs))
	for id := range tableDefs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BuildTable renders the registered table id from s.
func BuildTable(id string, s *casestudy.Study) (Table, error) {
	def, ok := tableDefs[id]
	if !ok {
		return Table{}, fmt.Errorf("report: unknown table %q", id)
	}
	header, rows := def.build(s)
	return Table{Number: def.number, Caption: def.caption, Header: header, Rows: rows}, nil
}

func money(v float64) string { return format.Number(v, 2) }
func count(v float64) string { return format.Number(v, 0) }
func ratio(v float64) string { return format.Plain(v, 3) }
func share(v float64) string { return format.Percent(v, 2) }

func initialVolume(s *casestudy.Study) ([]string, [][]string) {
	c := s.Params.Calendar
	return []string{"Показатель", "Значение"}, [][]string{
		{"Плановый объём выпуска, шт./год", count(float64(s.Inputs.PlanVolume))},
		{"Календарных дней", fmt.Sprint(c.Days)},
		{"Выходных и праздничных дней", fmt.Sprint(c.DaysOff)},
		{"Смен в сутки", fmt.Sprint(c.Shifts)},
		{"Продолжительность смены, ч", fmt.Sprint(c.ShiftHours)},
		{"Отпуск, раб. дней", fmt.Sprint(c.Vacation)},
		{"Неявки, раб. дней", fmt.Sprint(c.Absence)},
		{"Простои оборудования, %", share(c.Downtime)},
		{"Нормативная загрузка оборудования", format.Plain(s.Params.LoadFactor, 2)},
	}
}

func consumables(get func(*casestudy.Study) *costmodel.Table) func(*casestudy.Study) ([]string, [][]string) {
	return func(s *casestudy.Study) ([]string, [][]string) {
		var rows [][]string
		for _, r := range get(s).Rows() {
			rows = append(rows, []string{
				r.Str(casestudy.ColName),
				money(r.Float(casestudy.ColCost)),
				count(r.Float(casestudy.ColAmount)),
				count(r.Float(casestudy.ColStock)),
			})
		}
		return []string{"Наименование", "Цена, руб.", "Норма расхода, шт.", "Норма запаса, дн."}, rows
	}
}

func operations(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, r := range s.Inputs.B.Operations.Rows() {
		rows = append(rows, []string{
			r.Str(casestudy.ColName),
			money(r.Float(casestudy.ColCost)),
			format.Plain(r.Float(casestudy.ColTime), 2),
		})
	}
	return []string{"Операция", "Стоимость оборудования, руб.", "Трудоёмкость, ч"}, rows
}

func machines(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, r := range s.Equipment.Machines.Rows() {
		rows = append(rows, []string{
			r.Str(casestudy.ColName),
			money(r.Float(casestudy.ColCost)),
			format.Plain(r.Float(casestudy.ColRequired), 3),
			count(r.Float(casestudy.ColAccepted)),
			format.Plain(r.Float(casestudy.ColLoad), 3),
		})
	}
	rows = append(rows, []string{"Итого", "", "", "", money(s.Equipment.InitialCost)})
	return []string{"Оборудование", "Цена, руб.", "n расч.", "n прин.", "β факт."}, rows
}

func fixedAssets(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, r := range s.Equipment.Assets.Rows() {
		rows = append(rows, []string{
			r.Str(casestudy.ColNumber),
			r.Str(casestudy.ColName),
			share(r.Float(casestudy.ColPercent)),
			money(r.Float(casestudy.ColCost)),
		})
	}
	rows = append(rows, []string{"", "Итого", "100.00", money(s.Equipment.FixedAssets)})
	return []string{"№", "Элемент основных средств", "Доля, %", "Стоимость, руб."}, rows
}

func staff(get func(*casestudy.Study) *casestudy.Payroll) func(*casestudy.Study) ([]string, [][]string) {
	return func(s *casestudy.Study) ([]string, [][]string) {
		p := get(s)
		rows := [][]string{{"Основные производственные рабочие", fmt.Sprint(p.Core), money(p.Salary)}}
		group := func(title string, t *costmodel.PerPercentTable) {
			rows = append(rows, []string{title, "", ""})
			for _, r := range t.Rows() {
				salary, _ := r.Payload.(float64)
				rows = append(rows, []string{"  " + r.Name, count(t.Amount(r)), money(salary)})
			}
		}
		group("Вспомогательные рабочие", p.Auxiliary)
		group("Служащие", p.Staff)
		rows = append(rows, []string{"Итого", fmt.Sprint(p.Headcount), ""})
		return []string{"Должность", "Численность, чел.", "Оклад, руб./мес."}, rows
	}
}

func salaries(get func(*casestudy.Study) *casestudy.Payroll) func(*casestudy.Study) ([]string, [][]string) {
	return func(s *casestudy.Study) ([]string, [][]string) {
		p := get(s)
		return []string{"Категория", "Численность, чел.", "ФОТ, руб./год"}, [][]string{
			{"ОПР, сдельная оплата", fmt.Sprint(p.Core), money(p.CorePay)},
			{"ОПР, надбавки и стимулирующие", "", money(p.CoreExtra)},
			{"Вспомогательные рабочие", fmt.Sprint(p.AuxCount), money(p.AuxPay)},
			{"Служащие", fmt.Sprint(p.StaffCount), money(p.StaffPay)},
			{"Итого", fmt.Sprint(p.Headcount), money(p.Wages.Total())},
		}
	}
}

func insurance(get func(*casestudy.Study) *casestudy.Payroll) func(*casestudy.Study) ([]string, [][]string) {
	return func(s *casestudy.Study) ([]string, [][]string) {
		p := get(s)
		var rows [][]string
		for _, r := range p.Insurance.Rows() {
			rows = append(rows, []string{r.Name, share(p.Insurance.Share(r)), money(p.Insurance.Amount(r))})
		}
		rows = append(rows, []string{"Итого", share(p.Insurance.TotalPercent()), money(p.Insurance.Total())})
		return []string{"Взнос", "Ставка, %", "Сумма, руб."}, rows
	}
}

func costEstimate(s *casestudy.Study) ([]string, [][]string) {
	st := &costmodel.ShareTable{}
	for _, c := range s.Costs.Tree.Children() {
		st.Add(c)
	}
	var rows [][]string
	for _, l := range st.Lines() {
		rows = append(rows, []string{depthIndent(l.Depth) + l.Label, money(l.Amount), format.Plain(l.Percent, 2)})
	}
	rows = append(rows, []string{"Итого", money(st.Total()), "100.00"})
	return []string{"Элемент затрат", "Сумма, руб.", "Доля, %"}, rows
}

func fixedVariable(get func(*casestudy.Study) *costmodel.Value) func(*casestudy.Study) ([]string, [][]string) {
	return func(s *casestudy.Study) ([]string, [][]string) {
		var rows [][]string
		get(s).Walk(func(v *costmodel.Value, depth int) {
			rows = append(rows, []string{depthIndent(depth) + v.Label(), money(v.Const()), money(v.Variable()), money(v.Total())})
		})
		return []string{"Статья", "Постоянные, руб.", "Переменные, руб.", "Всего, руб."}, rows
	}
}

func unitCost(s *casestudy.Study) ([]string, [][]string) {
	u := s.UnitCost
	line := func(v *costmodel.Value) []string {
		return []string{v.Label(), money(v.Const()), money(v.Variable()), money(v.Total())}
	}
	rows := [][]string{line(s.Costs.Tree), line(u.Commercial), line(u.Sum), line(u.Unit)}
	return []string{"Статья", "Постоянные, руб.", "Переменные, руб.", "Всего, руб."}, rows
}

func volumeSamples(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, it := range s.Samples.Items() {
		v := it.Out
		rows = append(rows, []string{
			count(float64(it.In)),
			money(v.Const()),
			money(v.Variable()),
			money(v.Total()),
			money(v.Total() / float64(it.In)),
		})
	}
	return []string{"Объём, шт.", "Постоянные, руб.", "Переменные, руб.", "Всего, руб.", "На единицу, руб."}, rows
}

func stockNorms(s *casestudy.Study) ([]string, [][]string) {
	n := float64(s.Inputs.PlanVolume)
	days := float64(s.Equipment.Calendar.Days)
	var rows [][]string
	var total float64
	add := func(kind string, t *costmodel.Table) {
		for _, r := range t.Rows() {
			v := r.Float(casestudy.ColAmount) * r.Float(casestudy.ColCost) * n / days * r.Float(casestudy.ColStock)
			total += v
			rows = append(rows, []string{kind + " " + r.Str(casestudy.ColName), count(r.Float(casestudy.ColStock)), money(v)})
		}
	}
	add("Материал", s.Inputs.B.Materials)
	add("Комплектующее", s.Inputs.B.Accessories)
	rows = append(rows, []string{"Итого", "", money(total)})
	return []string{"Наименование", "Норма запаса, дн.", "Норматив, руб."}, rows
}

func sheet(get func(*casestudy.Study) balance.Sheet) func(*casestudy.Study) ([]string, [][]string) {
	return func(s *casestudy.Study) ([]string, [][]string) {
		amount := func(v *float64) string {
			if v == nil {
				return ""
			}
			return money(*v)
		}
		var rows [][]string
		for _, l := range get(s).Rows() {
			rows = append(rows, []string{l.Active.Label, amount(l.Active.Amount), l.Passive.Label, amount(l.Passive.Amount)})
		}
		return []string{"Актив", "Сумма, руб.", "Пассив", "Сумма, руб."}, rows
	}
}

func price(s *casestudy.Study) ([]string, [][]string) {
	p := s.Pricing
	return []string{"Показатель", "Значение"}, [][]string{
		{"Полная себестоимость единицы, руб.", money(s.UnitCost.Unit.Total())},
		{"Плановая чистая прибыль, руб.", money(p.NetProfit)},
		{"Прибыль до налогообложения, руб.", money(p.ProfitBeforeTax)},
		{"Коэффициент наценки", format.Plain(p.Markup, 4)},
		{"Цена по методу полных затрат, руб.", money(p.FullCostPrice)},
		{"Цена по методу переменных затрат, руб.", money(p.VariableCostPrice)},
		{"Плановая цена, руб.", money(p.PlanPrice)},
		{"Фактическая цена, руб.", money(p.ActualPrice)},
	}
}

func results(s *casestudy.Study) ([]string, [][]string) {
	pl, ac := s.Results.Plan, s.Results.Actual
	line := func(label string, get func(casestudy.Outcome) float64) []string {
		return []string{label, money(get(pl)), money(get(ac))}
	}
	return []string{"Показатель", "План", "Факт"}, [][]string{
		{"Объём реализации, шт.", count(float64(pl.Volume)), count(float64(ac.Volume))},
		line("Выручка", func(o casestudy.Outcome) float64 { return o.Revenue }),
		line("Себестоимость продаж", func(o casestudy.Outcome) float64 { return o.CostOfSales }),
		line("Валовая прибыль", func(o casestudy.Outcome) float64 { return o.GrossProfit }),
		line("Коммерческие расходы", func(o casestudy.Outcome) float64 { return o.Commercial }),
		line("Прибыль от продаж", func(o casestudy.Outcome) float64 { return o.SalesProfit }),
		line("Прочие расходы", func(o casestudy.Outcome) float64 { return o.OtherExpenses }),
		line("Прибыль до налогообложения", func(o casestudy.Outcome) float64 { return o.ProfitBeforeTax }),
		line("Налог на прибыль", func(o casestudy.Outcome) float64 { return o.Tax }),
		line("Чистая прибыль", func(o casestudy.Outcome) float64 { return o.NetProfit }),
	}
}

func cashFlow(s *casestudy.Study) ([]string, [][]string) {
	cl := s.Closing
	open := s.Opening.Sheet
	loan := open.ShortTermLoans
	return []string{"Показатель", "План", "Факт"}, [][]string{
		{"Денежные средства на начало", money(open.Cash), money(open.Cash)},
		{"Амортизация", money(cl.Amortisation), money(cl.Amortisation)},
		{"Чистая прибыль", money(s.Results.Plan.NetProfit), money(s.Results.Actual.NetProfit)},
		{"Денежные средства до погашения кредита", money(cl.Plan.Available), money(cl.Actual.Available)},
		{"Погашено кредита", money(loan - cl.Plan.Debt), money(loan - cl.Actual.Debt)},
		{"Остаток кредита", money(cl.Plan.Debt), money(cl.Actual.Debt)},
		{"Денежные средства на конец", money(cl.Plan.End), money(cl.Actual.End)},
	}
}

func ratios(s *casestudy.Study) ([]string, [][]string) {
	r := s.Ratios
	line := func(label string, v casestudy.PlanActual, fn func(float64) string) []string {
		return []string{label, fn(v.Plan), fn(v.Actual)}
	}
	same := func(label string, v float64, fn func(float64) string) []string {
		return []string{label, fn(v), fn(v)}
	}
	return []string{"Показатель", "План", "Факт"}, [][]string{
		line("Собственные оборотные средства, руб.", r.OwnWorkingCapital, money),
		line("Обеспеченность собственными средствами", r.OwnFunds, ratio),
		line("Коэффициент абсолютной ликвидности", r.AbsoluteLiquidity, ratio),
		line("Коэффициент текущей ликвидности", r.CurrentLiquidity, ratio),
		same("Выработка, шт./чел.", r.Productivity, money),
		same("Среднегодовая стоимость ОС, руб.", r.MeanFixedAssets, money),
		line("Фондоотдача", r.CapitalProductivity, ratio),
		line("Фондоёмкость", r.CapitalIntensity, ratio),
		line("Средние оборотные активы, руб.", r.MeanCurrentAssets, money),
		line("Оборачиваемость оборотных активов", r.AssetTurnover, ratio),
		line("Средний собственный капитал, руб.", r.MeanEquity, money),
		line("Оборачиваемость собственного капитала", r.EquityTurnover, ratio),
		line("Рентабельность производства", r.ProductionReturn, ratio),
		line("Рентабельность продаж", r.SalesReturn, ratio),
		line("Рентабельность активов", r.AssetReturn, ratio),
		line("Рентабельность собственного капитала", r.EquityReturn, ratio),
		same("Критический объём, шт.", float64(r.BreakEvenVolume), count),
		same("Критическая выручка, руб.", r.BreakEvenRevenue, money),
		line("Запас финансовой прочности", r.FinancialStrength, ratio),
		line("Операционный рычаг", r.OperatingLeverage, ratio),
	}
}

func coverage(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, it := range s.Ratios.Coverage.Items() {
		rows = append(rows, []string{count(float64(it.In)), ratio(it.Out)})
	}
	return []string{"Объём, шт.", "Коэффициент покрытия"}, rows
}

func mixVolume(s *casestudy.Study) ([]string, [][]string) {
	m := s.Mix
	total := float64(s.Inputs.PlanVolume)
	line := func(name string, n int) []string {
		return []string{name, count(float64(n)), share(float64(n) / total)}
	}
	return []string{"Изделие", "Объём, шт.", "Доля, %"}, [][]string{
		line(s.Inputs.A.Name, m.A),
		line(s.Inputs.B.Name, m.B),
		line(s.Inputs.C.Name, m.C),
		{"Итого", count(total), "100.00"},
	}
}

func mixMachines(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, r := range s.MixEquipment.Machines.Rows() {
		rows = append(rows, []string{
			r.Str(casestudy.ColName),
			count(r.Float(casestudy.ColOnHand)),
			format.Plain(r.Float(casestudy.ColNeed), 3),
			count(r.Float(casestudy.ColNeedFact)),
			count(r.Float(casestudy.ColNeedNew)),
			format.Plain(r.Float(casestudy.ColLoad), 3),
			money(r.Float(casestudy.ColCost)),
		})
	}
	rows = append(rows, []string{"Итого к закупке", "", "", "", "", "", money(s.MixEquipment.NewCost)})
	return []string{"Оборудование", "Имеется", "n расч.", "n прин.", "Докупить", "β факт.", "Цена, руб."}, rows
}

func mixAssets(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, r := range s.MixEquipment.Assets.Rows() {
		rows = append(rows, []string{
			r.Str(casestudy.ColNumber),
			r.Str(casestudy.ColName),
			money(r.Float(casestudy.ColCostBefore)),
			money(r.Float(casestudy.ColAmortisation)),
			money(r.Float(casestudy.ColCostOpening)),
			money(r.Float(casestudy.ColDelta)),
			money(r.Float(casestudy.ColCostAfter)),
		})
	}
	rows = append(rows, []string{"", "Итого", "", "", "", "", money(s.MixEquipment.FixedAssets)})
	return []string{"№", "Элемент", "Стоимость I", "Амортизация I", "На начало II", "Прирост", "Стоимость II"}, rows
}

// productHeader is the first column title followed by the product names.
func productHeader(first string, s *casestudy.Study) []string {
	return []string{first, s.Inputs.A.Name, s.Inputs.B.Name, s.Inputs.C.Name}
}

func mixDirect(s *casestudy.Study) ([]string, [][]string) {
	u := s.MixUnitCost
	line := func(label string, get func(casestudy.DirectCosts) float64) []string {
		row := []string{label}
		for _, pc := range u.Products() {
			row = append(row, money(get(pc.Direct)))
		}
		return row
	}
	return productHeader("Статья, руб./шт.", s), [][]string{
		line("Материалы и комплектующие", func(d casestudy.DirectCosts) float64 { return d.Materials }),
		line("Заработная плата ОПР", func(d casestudy.DirectCosts) float64 { return d.Wages }),
		line("Страховые взносы", func(d casestudy.DirectCosts) float64 { return d.Fees }),
		line("Амортизация производственного оборудования", func(d casestudy.DirectCosts) float64 { return d.Amortisation }),
		line("Итого прямые затраты", casestudy.DirectCosts.Total),
	}
}

func mixIndirect(s *casestudy.Study) ([]string, [][]string) {
	u := s.MixUnitCost
	var rows [][]string
	for _, r := range u.Indirect.Rows() {
		work, other := r.Float(casestudy.ColWork), r.Float(casestudy.ColOther)
		rows = append(rows, []string{r.Str(casestudy.ColNumber), r.Str(casestudy.ColName), money(work), money(other), money(work + other)})
	}
	rows = append(rows, []string{"", "Итого", money(u.IndirectWork), money(u.IndirectOther), money(u.IndirectWork + u.IndirectOther)})
	return []string{"№", "Элемент сметы", "Связанные с работой оборудования, руб.", "Не связанные, руб.", "Всего, руб."}, rows
}

func mixUnitCost(s *casestudy.Study) ([]string, [][]string) {
	costs := s.MixUnitCost.Products()
	prices := s.MixPricing.Products()
	line := func(label string, get func(i int) float64) []string {
		row := []string{label}
		for i := range costs {
			row = append(row, money(get(i)))
		}
		return row
	}
	commercial := func(i int) float64 { return prices[i].Unit.Find("S_kom").Total() }
	return productHeader("Статья, руб./шт.", s), [][]string{
		line("Прямые затраты", func(i int) float64 { return costs[i].Direct.Total() }),
		line("Косвенные, связанные с работой оборудования", func(i int) float64 { return costs[i].Indirect.Work }),
		line("Косвенные, не связанные с работой оборудования", func(i int) float64 { return costs[i].Indirect.Other }),
		line("Производственная себестоимость", func(i int) float64 { return costs[i].Production }),
		line("Коммерческие затраты", commercial),
		line("Полная себестоимость", func(i int) float64 { return costs[i].Production + commercial(i) }),
	}
}

func mixWorkingCapital(s *casestudy.Study) ([]string, [][]string) {
	w := s.MixWorkingCapital
	stocks := []casestudy.ProductStock{w.A, w.B, w.C}
	line := func(label string, fn func(float64) string, get func(casestudy.ProductStock) float64) []string {
		row := []string{label}
		for _, ps := range stocks {
			row = append(row, fn(get(ps)))
		}
		return row
	}
	return productHeader("Показатель", s), [][]string{
		line("Коэффициент нарастания затрат", ratio, func(p casestudy.ProductStock) float64 { return p.WIPFactor }),
		line("Производственный цикл, дн.", ratio, func(p casestudy.ProductStock) float64 { return p.Cycle }),
		line("Незавершённое производство, руб.", money, func(p casestudy.ProductStock) float64 { return p.WorkInProgress }),
		line("Готовая продукция, руб.", money, func(p casestudy.ProductStock) float64 { return p.FinishedGoods }),
	}
}

func transitionSurplus(s *casestudy.Study) ([]string, [][]string) {
	tr := s.Transition
	var rows [][]string
	for _, r := range tr.Surplus.Rows() {
		rows = append(rows, []string{r.Str(casestudy.ColName), count(r.Float(casestudy.ColSurplus)), money(r.Float(casestudy.ColResidual))})
	}
	units := tr.Surplus.CalculateSum(func(r costmodel.Row) float64 { return r.Float(casestudy.ColSurplus) })
	rows = append(rows, []string{"Итого", count(units), money(tr.SurplusSale)})
	return []string{"Оборудование", "Излишек, шт.", "Остаточная стоимость, руб./шт."}, rows
}

// transitionSide lays one side of the transition sheets out with a column
// per step.
func transitionSide(active bool) func(*casestudy.Study) ([]string, [][]string) {
	return func(s *casestudy.Study) ([]string, [][]string) {
		steps := s.Transition.Steps()
		header := []string{"Статья"}
		layouts := make([][]balance.Line, len(steps))
		for i, st := range steps {
			header = append(header, st.Label)
			layouts[i] = st.Sheet.Rows()
		}
		side := func(l balance.Line) balance.Cell {
			if active {
				return l.Active
			}
			return l.Passive
		}
		var rows [][]string
		for j, l := range layouts[0] {
			label := side(l).Label
			if label == "" {
				continue
			}
			row := []string{label}
			for i := range steps {
				if v := side(layouts[i][j]).Amount; v != nil {
					row = append(row, count(*v))
				} else {
					row = append(row, "")
				}
			}
			rows = append(rows, row)
		}
		return header, rows
	}
}

func mixQuality(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, r := range s.MixPricing.Quality.Rows() {
		rows = append(rows, []string{
			r.Str(casestudy.ColName),
			count(r.Float(casestudy.ColQualityA)),
			count(r.Float(casestudy.ColQualityB)),
			count(r.Float(casestudy.ColQualityC)),
			format.Plain(r.Float(casestudy.ColWeightA), 2),
			format.Plain(r.Float(casestudy.ColWeightC), 2),
		})
	}
	return []string{"Показатель", s.Inputs.A.Name, s.Inputs.B.Name, s.Inputs.C.Name, "Важность I", "Важность II"}, rows
}

func mixPrices(s *casestudy.Study) ([]string, [][]string) {
	var rows [][]string
	for _, pp := range s.MixPricing.Products() {
		rows = append(rows, []string{
			pp.Name,
			money(pp.Unit.Total()),
			money(pp.FullCostPrice),
			money(pp.VariableCostPrice),
			money(pp.ParametricPrice),
			money(pp.PlanPrice),
		})
	}
	return []string{"Изделие", "Полная себестоимость, руб./шт.", "Метод полных затрат", "Метод переменных затрат", "Параметрический метод", "Установленная цена"}, rows
}

func depthIndent(depth int) string { return strings.Repeat("  ", depth) }
