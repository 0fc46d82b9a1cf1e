// Package balance holds the two-sided balance sheet (assets on the
// active side, equity and liabilities on the passive side).
package balance

// Sheet is a balance sheet at one point in time.
type Sheet struct {
	// 1. Non-current assets
	Intangible float64
	Fixed      float64

	// 2. Current assets
	RawMaterials   float64
	WorkInProgress float64
	FinishedGoods  float64
	Deferred       float64
	OtherStock     float64
	Receivables    float64
	Cash           float64

	// 3. Equity
	Charter    float64
	Additional float64
	Reserve    float64
	Retained   float64

	// 4. Long-term liabilities
	LongTermLoans float64

	// 5. Short-term liabilities
	ShortTermLoans float64
	OtherShortTerm float64
}

func (s Sheet) R1() float64 { return s.Intangible + s.Fixed }

// Stock is the inventories line of section 2.
func (s Sheet) Stock() float64 {
	return s.RawMaterials + s.WorkInProgress + s.FinishedGoods + s.Deferred + s.OtherStock
}

func (s Sheet) R2() float64 { return s.Stock() + s.Receivables + s.Cash }

func (s Sheet) R3() float64 { return s.Charter + s.Additional + s.Reserve + s.Retained }

func (s Sheet) R4() float64 { return s.LongTermLoans }

func (s Sheet) R5() float64 { return s.ShortTermLoans + s.OtherShortTerm }

func (s Sheet) Active() float64 { return s.R1() + s.R2() }

func (s Sheet) Passive() float64 { return s.R3() + s.R4() + s.R5() }

// Cell is a layout cell. Amount is nil for blank cells and headings.
type Cell struct {
	Label  string
	Amount *float64
}

// Line is one layout row: active side, passive side.
type Line struct {
	Active  Cell
	Passive Cell
}

func amt(v float64) *float64 { return &v }

// Rows lays the sheet out as the twenty-line two-column statement.
func (s Sheet) Rows() []Line {
	return []Line{
		{Cell{"1. Внеоборотные активы", nil}, Cell{"3. Капитал и резервы", nil}},
		{Cell{"Нематериальные активы", amt(s.Intangible)}, Cell{"Уставный капитал", amt(s.Charter)}},
		{Cell{"Основные средства", amt(s.Fixed)}, Cell{"Добавочный капитал", amt(s.Additional)}},
		{Cell{}, Cell{"Резервный капитал", amt(s.Reserve)}},
		{Cell{}, Cell{"Нераспределенная прибыль (непокрытый убыток)", amt(s.Retained)}},
		{Cell{"Итого по разделу 1", amt(s.R1())}, Cell{"Итого по разделу 3", amt(s.R3())}},
		{},

		{Cell{"2. Оборотные активы", nil}, Cell{"4. Долгосрочные обязательства", nil}},
		{Cell{"Запасы", amt(s.Stock())}, Cell{}},
		{Cell{" сырье и материалы", amt(s.RawMaterials)}, Cell{"Итого по 4 разделу", amt(s.R4())}},
		{Cell{" затраты в незавершенном производстве", amt(s.WorkInProgress)}, Cell{}},
		{Cell{" готовая продукция и товары для перепродажи", amt(s.FinishedGoods)}, Cell{"5. Краткосрочные обязательства", nil}},
		{Cell{" расходы будущих периодов", amt(s.Deferred)}, Cell{"Заемные средства", amt(s.ShortTermLoans)}},
		{Cell{" прочие запасы и затраты", amt(s.OtherStock)}, Cell{"Прочие обязательства", amt(s.OtherShortTerm)}},
		{Cell{"Дебиторская задолженность", amt(s.Receivables)}, Cell{}},
		{Cell{"Денежные средства", amt(s.Cash)}, Cell{}},
		{},
		{Cell{"Итого по разделу 2", amt(s.R2())}, Cell{"Итого по разделу 5", amt(s.R5())}},
		{},
		{Cell{"Баланс", amt(s.Active())}, Cell{"Баланс", amt(s.Passive())}},
	}
}

// Balanced reports whether both sides agree within tolerance.
func (s Sheet) Balanced(tolerance float64) bool {
	d := s.Active() - s.Passive()
	return d <= tolerance && d >= -tolerance
}
