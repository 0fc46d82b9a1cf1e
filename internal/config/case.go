package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/parser"
	"gopkg.in/yaml.v3"
)

// Case is a YAML case file. Every field is optional; set fields replace
// the defaults.
//
//	plan_volume: 30000
//	volume_samples: [300, 3000, 30000]
//	products:
//	  B:
//	    materials: {csv: b_materials.csv}
//	    operations:
//	      rows:
//	        - [0, 0.4, "-ручная операция-"]
//	        - [500000, 0.3, "б"]
type Case struct {
	PlanVolume    int                    `yaml:"plan_volume"`
	VolumeSamples []int                  `yaml:"volume_samples"`
	CashFloor     *float64               `yaml:"cash_floor"`
	LoadFactor    *float64               `yaml:"load_factor"`
	MixLoadFactor *float64               `yaml:"mix_load_factor"`
	Calendar      *CalendarOverride      `yaml:"calendar"`
	Products      map[string]ProductFile `yaml:"products"`

	dir string // CSV paths resolve against it
}

type CalendarOverride struct {
	Days       *int     `yaml:"days"`
	DaysOff    *int     `yaml:"days_off"`
	Shifts     *int     `yaml:"shifts"`
	ShiftHours *int     `yaml:"shift_hours"`
	Vacation   *int     `yaml:"vacation"`
	Absence    *int     `yaml:"absence"`
	Downtime   *float64 `yaml:"downtime"`
}

type ProductFile struct {
	Materials   *TableSource `yaml:"materials"`
	Accessories *TableSource `yaml:"accessories"`
	Operations  *TableSource `yaml:"operations"`
}

// TableSource is either a CSV file with a header row or inline rows in
// column order.
type TableSource struct {
	CSV  string  `yaml:"csv"`
	Rows [][]any `yaml:"rows"`
}

// LoadCase reads and decodes a case file. Unknown keys are errors.
func LoadCase(file string) (*Case, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}
	c, err := DecodeCase(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("case file %s: %w", file, err)
	}
	c.dir = filepath.Dir(file)
	return c, nil
}

func DecodeCase(r io.Reader) (*Case, error) {
	var c Case
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &c, nil
}

// productKeys maps case file keys to products; the Cyrillic letters of
// the assignment are accepted too.
var productKeys = map[string]string{
	"A": "A", "А": "A",
	"B": "B", "Б": "B",
	"C": "C", "В": "C",
}

// Apply overrides in and p with the fields set in c.
func (c *Case) Apply(in *casestudy.Inputs, p *casestudy.Params) error {
	if c.PlanVolume < 0 {
		return &casestudy.InputError{Field: "plan_volume", Reason: "must be positive"}
	}
	if c.PlanVolume > 0 {
		in.PlanVolume = c.PlanVolume
	}
	if len(c.VolumeSamples) > 0 {
		p.VolumeSamples = append([]int(nil), c.VolumeSamples...)
	}
	if c.CashFloor != nil {
		p.CashFloor = *c.CashFloor
	}
	if c.LoadFactor != nil {
		p.LoadFactor = *c.LoadFactor
	}
	if c.MixLoadFactor != nil {
		p.MixLoadFactor = *c.MixLoadFactor
	}
	if c.Calendar != nil {
		c.Calendar.apply(&p.Calendar)
	}

	for key, pf := range c.Products {
		id, ok := productKeys[key]
		if !ok {
			return fmt.Errorf("unknown product %q", key)
		}
		var prod *casestudy.Product
		switch id {
		case "A":
			prod = &in.A
		case "B":
			prod = &in.B
		default:
			prod = &in.C
		}
		if err := c.applyProduct(id, prod, pf); err != nil {
			return err
		}
	}
	return nil
}

func (c *Case) applyProduct(id string, prod *casestudy.Product, pf ProductFile) error {
	for _, s := range []struct {
		field string
		src   *TableSource
		dst   **costmodel.Table
		empty func() *costmodel.Table
	}{
		{"materials", pf.Materials, &prod.Materials, casestudy.NewConsumables},
		{"accessories", pf.Accessories, &prod.Accessories, casestudy.NewConsumables},
		{"operations", pf.Operations, &prod.Operations, casestudy.NewOperations},
	} {
		if s.src == nil {
			continue
		}
		t, err := c.table(s.src, s.empty)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", id, s.field, err)
		}
		*s.dst = t
	}
	return nil
}

func (c *Case) table(src *TableSource, empty func() *costmodel.Table) (*costmodel.Table, error) {
	switch {
	case src.CSV != "" && len(src.Rows) > 0:
		return nil, fmt.Errorf("set either csv or rows, not both")
	case src.CSV != "":
		file := src.CSV
		if !filepath.IsAbs(file) {
			file = filepath.Join(c.dir, file)
		}
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parser.ReadTable(f)
	default:
		t := empty()
		for i, row := range src.Rows {
			if !t.AddRow(row...) {
				return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(t.Headers()))
			}
		}
		return t, nil
	}
}

func (o *CalendarOverride) apply(cal *casestudy.Calendar) {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cal.Days, o.Days)
	set(&cal.DaysOff, o.DaysOff)
	set(&cal.Shifts, o.Shifts)
	set(&cal.ShiftHours, o.ShiftHours)
	set(&cal.Vacation, o.Vacation)
	set(&cal.Absence, o.Absence)
	if o.Downtime != nil {
		cal.Downtime = *o.Downtime
	}
}
