// Package narrative fills the report's chapter templates from a computed
// study. Templates are markdown with [[ ]] actions so formula braces pass
// through untouched; the rendered text is parsed into a doctree.
package narrative

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"text/template"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/doctree"
	"github.com/dgallion1/costcase/internal/format"
	"github.com/dgallion1/costcase/internal/parser"
)

// Title is the report title.
const Title = "Технико-экономическое обоснование производства изделия"

//go:embed templates/*.md
var templateFS embed.FS

var chapters = template.Must(load())

func load() (*template.Template, error) {
	root := template.New("narrative").Delims("[[", "]]").Funcs(Funcs())
	names, err := Chapters()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		src, err := templateFS.ReadFile(path.Join("templates", name))
		if err != nil {
			return nil, err
		}
		if _, err := root.New(name).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return root, nil
}

// Chapters lists the template names in report order.
func Chapters() ([]string, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Markdown executes every chapter template against s and joins the
// results in order.
func Markdown(s *casestudy.Study) ([]byte, error) {
	names, err := Chapters()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, name := range names {
		if err := chapters.ExecuteTemplate(&buf, name, s); err != nil {
			return nil, fmt.Errorf("narrative %s: %w", name, err)
		}
		buf.WriteString("\n\n")
	}
	return buf.Bytes(), nil
}

// Render produces the report outline of s.
func Render(s *casestudy.Study) (*doctree.DocTree, error) {
	md, err := Markdown(s)
	if err != nil {
		return nil, err
	}
	return parser.ParseMarkdown(md, Title), nil
}

// Funcs are the helpers available in chapter templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"n":  func(v any, places int) (string, error) { return apply(v, places, format.Number) },
		"n0": func(v any) (string, error) { return apply(v, 0, format.Number) },
		"n2": func(v any) (string, error) { return apply(v, 2, format.Number) },
		"pct": func(v any, places int) (string, error) {
			return apply(v, places, format.Percent)
		},
		"plain": func(v any, places int) (string, error) { return apply(v, places, format.Plain) },
		"add":   arith(func(a, b float64) float64 { return a + b }),
		"sub":   arith(func(a, b float64) float64 { return a - b }),
		"mul":   arith(func(a, b float64) float64 { return a * b }),
		"div": func(a, b any) (float64, error) {
			x, y, err := pair(a, b)
			if err != nil {
				return 0, err
			}
			if y == 0 {
				return 0, fmt.Errorf("div: division by zero")
			}
			return x / y, nil
		},
		"value": func(tree *costmodel.Value, name string) (float64, error) {
			v := tree.Find(name)
			if v == nil {
				return 0, fmt.Errorf("value: no %q under %q", name, tree.Name)
			}
			return v.Total(), nil
		},
		"repay": RepaymentText,
	}
}

// RepaymentText describes a year-end repayment outcome.
func RepaymentText(r casestudy.Repayment) string {
	switch r {
	case casestudy.RepayFull:
		return "краткосрочный кредит погашается полностью"
	case casestudy.RepayPart:
		return "краткосрочный кредит погашается частично"
	default:
		return "средств на погашение краткосрочного кредита недостаточно"
	}
}

func apply(v any, places int, fn func(float64, int) string) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	return fn(f, places), nil
}

func arith(op func(a, b float64) float64) func(a, b any) (float64, error) {
	return func(a, b any) (float64, error) {
		x, y, err := pair(a, b)
		if err != nil {
			return 0, err
		}
		return op(x, y), nil
	}
}

func pair(a, b any) (float64, float64, error) {
	x, err := number(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := number(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case costmodel.Amount:
		if n == nil {
			return 0, fmt.Errorf("nil amount")
		}
		return n.Amount(), nil
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

// Refs lists the table and chart ids the tree refers to, in order of
// first appearance.
func Refs(tree *doctree.DocTree) (tables, charts []string) {
	seen := map[string]bool{}
	tree.Walk(func(n *doctree.DocNode, _ int) {
		for _, b := range n.Blocks {
			if b.Ref == "" {
				continue
			}
			key := b.Kind.String() + ":" + b.Ref
			if seen[key] {
				continue
			}
			seen[key] = true
			switch b.Kind {
			case doctree.Table:
				tables = append(tables, b.Ref)
			case doctree.Chart:
				charts = append(charts, b.Ref)
			}
		}
	})
	return tables, charts
}
