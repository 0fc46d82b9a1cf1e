package casestudy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalendarFunds(t *testing.T) {
	c := DefaultParams().Calendar
	assert.InDelta(t, 3754.4, c.EquipmentFund(), 1e-9)
	if got := c.WorkerFund(); got != 1656 {
		t.Errorf("expected worker fund 1656, got %v", got)
	}
}

func TestNewEquipment(t *testing.T) {
	eq := NewEquipment(DefaultInputs(45_000), DefaultParams())

	if eq.Machines.Len() != 3 {
		t.Fatalf("expected 3 machine types, got %d", eq.Machines.Len())
	}

	tests := []struct {
		name     string
		required float64
		accepted int
		load     float64
	}{
		{"б", 4.794, 5, 0.7192},
		{"в", 3.196, 4, 0.5993},
		{"г", 9.589, 10, 0.7192},
	}
	for _, tt := range tests {
		r, ok := eq.Machines.Find(ColName, tt.name)
		if !ok {
			t.Fatalf("machine %q not found", tt.name)
		}
		assert.InDelta(t, tt.required, r.Float(ColRequired), 1e-3, tt.name)
		assert.InDelta(t, tt.load, r.Float(ColLoad), 1e-4, tt.name)
		if got := eq.Accepted(tt.name); got != tt.accepted {
			t.Errorf("%s: expected %d machines, got %d", tt.name, tt.accepted, got)
		}
	}

	assert.InDelta(t, 11_900_000, eq.InitialCost, 1e-6)
	assert.InDelta(t, 29_750_000, eq.FixedAssets, 1e-6)
	assert.InDelta(t, 25_585_000, eq.Amortisable, 1e-6)
}

func TestEquipment_ManualOperationSkipped(t *testing.T) {
	eq := NewEquipment(DefaultInputs(45_000), DefaultParams())
	if _, ok := eq.Machines.Find(ColName, "-ручная операция-"); ok {
		t.Error("expected manual operation to need no machine")
	}
	if got := eq.Accepted("а"); got != 0 {
		t.Errorf("expected 0 machines of an unused type, got %d", got)
	}
}

func TestEquipment_AssetShares(t *testing.T) {
	eq := NewEquipment(DefaultInputs(45_000), DefaultParams())
	tech, ok := eq.Assets.Find(ColName, techEquipmentRow)
	if !ok {
		t.Fatal("technological equipment row missing")
	}
	assert.InDelta(t, eq.InitialCost, tech.Float(ColCost), 1e-6)

	land, _ := eq.Assets.Find(ColNumber, landRowNumber)
	assert.InDelta(t, eq.FixedAssets-eq.Amortisable, land.Float(ColCost), 1e-6)
}
