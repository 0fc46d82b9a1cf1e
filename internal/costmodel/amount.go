package costmodel

// Amount is anything that contributes a number to quick report arithmetic:
// a bare Number or a *Value (through its total).
type Amount interface {
	Amount() float64
}

// Number is a plain numeric Amount.
type Number float64

func (n Number) Amount() float64 { return float64(n) }

// Sum adds the amounts of all operands.
func Sum(operands ...Amount) float64 {
	var s float64
	for _, o := range operands {
		if o == nil {
			continue
		}
		s += o.Amount()
	}
	return s
}
