package casestudy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMixWorkingCapital(t *testing.T) {
	s := runDefault(t)
	w := s.MixWorkingCapital

	assert.InDelta(t, 8_029_109.59, w.Materials, 1e-6)
	assert.InDelta(t, 11_240_753.43, w.ProductionStock, 1e-6)

	tests := []struct {
		name  string
		stock ProductStock
		wip   float64
		cycle float64
	}{
		{"А", w.A, 0.572753, 13.392},
		{"Б", w.B, 0.719767, 6.927},
		{"В", w.C, 0.538359, 8.312},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.wip, tt.stock.WIPFactor, 1e-6, tt.name)
		assert.InDelta(t, tt.cycle, tt.stock.Cycle, 1e-9, tt.name)
	}

	assert.InDelta(t, 3_474_866.48, w.WorkInProgress, 1e-6)
	assert.InDelta(t, 6_030_275.22, w.FinishedGoods, 1e-6)
	assert.InDelta(t, 34_576_491.88, w.Total, 1e-6)
	assert.InDelta(t, 13_830_596.75, w.Extra, 1e-6)
	assert.InDelta(t, s.Opening.Sheet.Deferred, w.Deferred, 1e-9)
	assert.InDelta(t, 17_529_892.04, w.Cash, 1e-6)
}
