package casestudy

import "fmt"

// Calendar holds the working-time assumptions of the plan year.
type Calendar struct {
	Days       int     // T_pl, calendar days
	DaysOff    int     // B, weekends and holidays
	Shifts     int     // C, shifts per day
	ShiftHours int     // D, hours per shift
	Vacation   int     // O, vacation working days
	Absence    int     // H, planned absence working days
	Downtime   float64 // γ, planned equipment downtime share
}

// EquipmentFund is F_ob.ef, effective equipment hours per year.
func (c Calendar) EquipmentFund() float64 {
	return float64(c.Days-c.DaysOff) * float64(c.Shifts) * float64(c.ShiftHours) * (1 - c.Downtime)
}

// WorkerFund is F_rab.ef, effective hours per worker per year.
func (c Calendar) WorkerFund() float64 {
	return float64((c.Days - c.DaysOff - c.Vacation - c.Absence) * c.ShiftHours)
}

// Params are the case-wide assumptions that are not per-product data.
type Params struct {
	Calendar Calendar

	LoadFactor    float64 // β, planned equipment load (section I)
	MixLoadFactor float64 // β, planned equipment load (section II)

	CashFloor float64 // minimum cash kept before repaying short-term loans

	VolumeSamples []int // volumes for the cost-vs-volume tables and charts
}

func DefaultParams() Params {
	return Params{
		Calendar: Calendar{
			Days:       365,
			DaysOff:    118,
			Shifts:     2,
			ShiftHours: 8,
			Vacation:   20,
			Absence:    20,
			Downtime:   0.05,
		},
		LoadFactor:    0.75,
		MixLoadFactor: 0.7,
		CashFloor:     500_000,
		VolumeSamples: []int{450, 2700, 7200, 18900, 33750, 45000},
	}
}

// Validate rejects parameters the chapters cannot compute with: a year
// with no working time, loads outside (0, 1] and a negative cash floor.
func (p Params) Validate() error {
	c := p.Calendar
	switch {
	case c.Shifts <= 0:
		return &InputError{Field: "calendar.shifts", Reason: "must be positive"}
	case c.ShiftHours <= 0:
		return &InputError{Field: "calendar.shift_hours", Reason: "must be positive"}
	case c.DaysOff < 0 || c.Vacation < 0 || c.Absence < 0:
		return &InputError{Field: "calendar", Reason: "days off, vacation and absence cannot be negative"}
	case c.Days <= c.DaysOff+c.Vacation+c.Absence:
		return &InputError{Field: "calendar.days", Reason: fmt.Sprintf("%d days leave no working time", c.Days)}
	case c.Downtime < 0 || c.Downtime >= 1:
		return &InputError{Field: "calendar.downtime", Reason: "must be in [0, 1)"}
	}
	for _, l := range []struct {
		field string
		v     float64
	}{{"load_factor", p.LoadFactor}, {"mix_load_factor", p.MixLoadFactor}} {
		if l.v <= 0 || l.v > 1 {
			return &InputError{Field: l.field, Reason: fmt.Sprintf("%g is not in (0, 1]", l.v)}
		}
	}
	if p.CashFloor < 0 {
		return &InputError{Field: "cash_floor", Reason: "cannot be negative"}
	}
	if len(p.VolumeSamples) == 0 {
		return &InputError{Field: "volume_samples", Reason: "no volumes to sample"}
	}
	for _, n := range p.VolumeSamples {
		if n <= 0 {
			return &InputError{Field: "volume_samples", Reason: fmt.Sprintf("volume %d is not positive", n)}
		}
	}
	return nil
}
