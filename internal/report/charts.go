package report

import (
	"fmt"
	"sort"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/chart"
)

type chartDef struct {
	number  string
	caption string
	build   func(s *casestudy.Study) chart.Chart
}

var chartDefs = map[string]chartDef{
	"cost-volume": {"4.1", "Зависимость затрат от объёма выпуска", costVolumeChart},
	"break-even":  {"10.1", "Точка безубыточности", breakEvenChart},
	"coverage":    {"10.2", "Коэффициент покрытия при различных объёмах выпуска", coverageChart},
}

// ChartIDs lists every registered chart id, sorted.
func ChartIDs() []string {
	ids := make([]string, 0, len(chartDefs))
	for id := range chartDefs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BuildChart returns the registered chart id and its caption line.
func BuildChart(id string, s *casestudy.Study) (chart.Chart, string, error) {
	def, ok := chartDefs[id]
	if !ok {
		return chart.Chart{}, "", fmt.Errorf("report: unknown chart %q", id)
	}
	return def.build(s), fmt.Sprintf("Рисунок %s. %s", def.number, def.caption), nil
}

func volumes(s *casestudy.Study) []float64 {
	var xs []float64
	for _, n := range s.Samples.Inputs() {
		xs = append(xs, float64(n))
	}
	return xs
}

func costVolumeChart(s *casestudy.Study) chart.Chart {
	var fixed, variable, total []float64
	for _, v := range s.Samples.Outputs() {
		fixed = append(fixed, v.Const())
		variable = append(variable, v.Variable())
		total = append(total, v.Total())
	}
	xs := volumes(s)
	return chart.Chart{
		XLabel: "Объём выпуска, шт.",
		YLabel: "Затраты, руб.",
		Series: []chart.Series{
			{Name: "Постоянные", X: xs, Y: fixed, Dashed: true},
			{Name: "Переменные", X: xs, Y: variable, Dashed: true},
			{Name: "Суммарные", X: xs, Y: total},
		},
	}
}

func breakEvenChart(s *casestudy.Study) chart.Chart {
	xs := volumes(s)
	var revenue, total []float64
	for i, v := range s.Samples.Outputs() {
		revenue = append(revenue, xs[i]*s.Pricing.PlanPrice)
		total = append(total, v.Total())
	}
	return chart.Chart{
		XLabel: "Объём выпуска, шт.",
		YLabel: "руб.",
		Series: []chart.Series{
			{Name: "Выручка", X: xs, Y: revenue},
			{Name: "Суммарные затраты", X: xs, Y: total},
		},
		Marks: []chart.Mark{{Name: fmt.Sprintf("N кр = %d", s.Ratios.BreakEvenVolume), X: float64(s.Ratios.BreakEvenVolume)}},
	}
}

func coverageChart(s *casestudy.Study) chart.Chart {
	var xs []float64
	for _, n := range s.Ratios.Coverage.Inputs() {
		xs = append(xs, float64(n))
	}
	return chart.Chart{
		XLabel: "Объём выпуска, шт.",
		YLabel: "Коэффициент покрытия",
		Series: []chart.Series{{Name: "К покр", X: xs, Y: s.Ratios.Coverage.Outputs()}},
	}
}
