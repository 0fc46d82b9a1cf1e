package casestudy

import (
	"testing"

	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/stretchr/testify/assert"
)

func TestNewMixUnitCost_Direct(t *testing.T) {
	u := runDefault(t).MixUnitCost

	tests := []struct {
		pc   *ProductCost
		want DirectCosts
		sum  float64
	}{
		{u.A, DirectCosts{930, 1245.8992, 423.6057, 108.8023}, 2708.3073},
		{u.B, DirectCosts{2050, 644.4306, 219.1064, 56.2771}, 2969.8141},
		{u.C, DirectCosts{295, 773.3168, 262.9277, 67.5325}, 1398.7769},
	}
	for _, tt := range tests {
		d := tt.pc.Direct
		assert.InDelta(t, tt.want.Materials, d.Materials, 1e-9, tt.pc.Name)
		assert.InDelta(t, tt.want.Wages, d.Wages, 1e-4, tt.pc.Name)
		assert.InDelta(t, tt.want.Fees, d.Fees, 1e-4, tt.pc.Name)
		assert.InDelta(t, tt.want.Amortisation, d.Amortisation, 1e-4, tt.pc.Name)
		assert.InDelta(t, tt.sum, d.Total(), 1e-4, tt.pc.Name)
	}
	assert.InDelta(t, 113_025_515.22, u.DirectTotal, 0.01)
}

func TestNewMixUnitCost_Indirect(t *testing.T) {
	u := runDefault(t).MixUnitCost

	if u.Indirect.Len() != 11 {
		t.Fatalf("expected 11 indirect rows, got %d", u.Indirect.Len())
	}
	tests := []struct {
		number      string
		work, other float64
	}{
		{"1", 1_797_187.5, 1_198_125},
		{"2", 0, 7_188_750},
		{"3", 1_437_750, 359_437.5},
		{"4", 23_063_906.25, 9_884_531.25},
		{"5", 0, 34_255_000},
		{"7", 0, 2_597_150},
		{"8", 3_328_290, 0},
		{"9", 0, 10_322_702.64},
	}
	for _, tt := range tests {
		r, ok := u.Indirect.Find(ColNumber, tt.number)
		if !ok {
			t.Fatalf("row %s not found", tt.number)
		}
		assert.InDelta(t, tt.work, r.Float(ColWork), 0.01, tt.number)
		assert.InDelta(t, tt.other, r.Float(ColOther), 0.01, tt.number)
	}

	// Fuel sub-rows repeat row 4 and stay out of the totals.
	subRows := u.Indirect.Filter(func(r costmodel.Row) bool { return r.Str(ColNumber) == "" })
	if len(subRows) != 2 {
		t.Fatalf("expected 2 sub-rows, got %d", len(subRows))
	}
	assert.InDelta(t, 29_627_133.75, u.IndirectWork, 0.01)
	assert.InDelta(t, 74_250, u.MachineTime, 1e-9)
	assert.InDelta(t, 399.018636, u.MachineHour, 1e-6)
	assert.InDelta(t, 1.158721, u.OtherRate, 1e-6)
}

func TestNewMixUnitCost_Allocation(t *testing.T) {
	u := runDefault(t).MixUnitCost

	tests := []struct {
		pc          *ProductCost
		machineTime float64
		workYear    float64
		otherYear   float64
		work, other float64
		production  float64
	}{
		{u.A, 2.6, 11_671_295.11, 29_764_834.73, 1037.4485, 2645.7631, 6391.5188},
		{u.B, 1.1, 9_875_711.25, 28_244_290.39, 438.9205, 1255.3018, 4664.0364},
		{u.C, 1.8, 8_080_127.39, 19_443_271.26, 718.2335, 1728.2908, 3845.3013},
	}
	for _, tt := range tests {
		pc := tt.pc
		assert.InDelta(t, tt.machineTime, pc.MachineTime, 1e-9, pc.Name)
		assert.InDelta(t, tt.workYear, pc.WorkYear, 0.01, pc.Name)
		assert.InDelta(t, tt.otherYear, pc.OtherYear, 0.01, pc.Name)
		assert.InDelta(t, tt.work, pc.Indirect.Work, 1e-4, pc.Name)
		assert.InDelta(t, tt.other, pc.Indirect.Other, 1e-4, pc.Name)
		assert.InDelta(t, tt.production, pc.Production, 1e-4, pc.Name)
	}

	// Equipment-related costs are fully allocated by machine hours.
	var work float64
	for _, pc := range u.Products() {
		work += pc.WorkYear
	}
	assert.InDelta(t, u.IndirectWork, work, 1e-3)
}
