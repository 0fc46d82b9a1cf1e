package narrative

import (
	"strings"
	"testing"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/doctree"
	"github.com/dgallion1/costcase/internal/format"
	"github.com/dgallion1/costcase/internal/formula"
	"github.com/google/go-cmp/cmp"
)

func study(t *testing.T) *casestudy.Study {
	t.Helper()
	s, err := casestudy.Run(casestudy.DefaultInputs(45_000), casestudy.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestRender_Chapters(t *testing.T) {
	tree, err := Render(study(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != Title {
		t.Errorf("expected title %q, got %q", Title, tree.Title)
	}

	var got []string
	for _, n := range tree.Children {
		got = append(got, n.Title)
	}
	want := []string{
		"Введение",
		"Исходные данные",
		"1. Расчёт потребности в основных средствах",
		"2. Численность и фонд оплаты труда персонала",
		"3. Смета затрат на производство",
		"4. Себестоимость единицы продукции",
		"5. Потребность в оборотных средствах",
		"6. Баланс на начало периода",
		"7. Расчёт цены изделия",
		"8. Отчёт о финансовых результатах на конец первого периода",
		"9. Баланс на конец первого периода",
		"10. Показатели хозяйственной деятельности",
		"Раздел II. Переход к выпуску нескольких изделий",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chapters mismatch (-want +got):\n%s", diff)
	}

	section2 := tree.Children[len(tree.Children)-1]
	var subs []string
	for _, c := range section2.Children {
		subs = append(subs, c.Title)
	}
	if len(subs) != 8 || subs[4] != "2.5 Прямые и косвенные затраты" || subs[7] != "2.8 Цены изделий А, Б и В" {
		t.Errorf("unexpected section II subsections %v", subs)
	}
}

func TestRender_Refs(t *testing.T) {
	tree, err := Render(study(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables, charts := Refs(tree)
	for _, id := range []string{"machines", "cost-estimate", "opening-balance", "results", "closing-actual", "mix-cost-estimate", "mix-unit-cost", "transition-active", "mix-prices"} {
		if !contains(tables, id) {
			t.Errorf("expected table ref %q in %v", id, tables)
		}
	}
	if diff := cmp.Diff([]string{"cost-volume", "break-even", "coverage"}, charts); diff != "" {
		t.Errorf("charts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_FilledNumbers(t *testing.T) {
	s := study(t)
	tree, err := Render(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var formulas, texts []string
	tree.Walk(func(n *doctree.DocNode, _ int) {
		for _, b := range n.Blocks {
			if b.Kind == doctree.Formula {
				formulas = append(formulas, b.Text)
			}
			texts = append(texts, b.Text)
			if strings.Contains(b.Text, "[[") || strings.Contains(b.Text, "<no value>") {
				t.Errorf("unrendered action in %q: %q", n.Title, b.Text)
			}
		}
	})
	if len(formulas) < 30 {
		t.Errorf("expected at least 30 formulas, got %d", len(formulas))
	}

	total := "S_{пр.тек.пл} = " + format.Number(s.Costs.Total, 2)
	if !strings.Contains(strings.Join(texts, "\n"), total) {
		t.Errorf("expected text containing %q", total)
	}
}

func TestRender_FormulasParse(t *testing.T) {
	tree, err := Render(study(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree.Walk(func(n *doctree.DocNode, _ int) {
		for _, b := range n.Blocks {
			var sources []string
			if b.Kind == doctree.Formula {
				sources = append(sources, b.Text)
			} else {
				parts := strings.Split(b.Text, "`")
				for i := 1; i < len(parts); i += 2 {
					sources = append(sources, parts[i])
				}
			}
			for _, src := range sources {
				if _, err := formula.Parse(src); err != nil {
					t.Errorf("%s: %q: %v", n.Title, src, err)
				}
			}
		}
	})
}

func TestFuncs(t *testing.T) {
	f := Funcs()
	n2 := f["n2"].(func(any) (string, error))
	if got, _ := n2(1234.5); got != "1,234.50" {
		t.Errorf("expected 1,234.50, got %s", got)
	}
	if _, err := n2("x"); err == nil {
		t.Error("expected error for non-number")
	}

	div := f["div"].(func(a, b any) (float64, error))
	if got, _ := div(9, 3); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	if _, err := div(1, 0); err == nil {
		t.Error("expected division by zero error")
	}
}

func TestRepaymentText(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range []casestudy.Repayment{casestudy.RepayNone, casestudy.RepayPart, casestudy.RepayFull} {
		seen[RepaymentText(r)] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct messages, got %d", len(seen))
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
