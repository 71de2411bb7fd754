package models

import "time"

// RangePreset names a relative date window used to scope trend and listing
// queries.
type RangePreset string

const (
	RangeLast24Hours  RangePreset = "last24hours"
	RangeLast7Days    RangePreset = "last7days"
	RangeLast30Days   RangePreset = "last30days"
	RangeLast12Months RangePreset = "last12months"
)

// RangeDefault is the fallback preset when neither the request nor the
// user's settings name one.
const RangeDefault = RangeLast30Days

// RangePresets lists all selectable presets.
var RangePresets = []RangePreset{
	RangeLast24Hours,
	RangeLast7Days,
	RangeLast30Days,
	RangeLast12Months,
}

// Valid reports whether r is a known preset.
func (r RangePreset) Valid() bool {
	switch r {
	case RangeLast24Hours, RangeLast7Days, RangeLast30Days, RangeLast12Months:
		return true
	}
	return false
}

// Window returns the half-open interval [from, to) the preset selects,
// anchored at now.
func (r RangePreset) Window(now time.Time) (from, to time.Time) {
	to = now
	switch r {
	case RangeLast24Hours:
		from = now.Add(-24 * time.Hour)
	case RangeLast7Days:
		from = now.AddDate(0, 0, -7)
	case RangeLast30Days:
		from = now.AddDate(0, 0, -30)
	case RangeLast12Months:
		from = now.AddDate(-1, 0, 0)
	default:
		from = now.AddDate(0, 0, -30)
	}
	return from, to
}

// PreviousWindow returns the window of equal length immediately preceding
// Window. Trend widgets compare the two to show change over time.
func (r RangePreset) PreviousWindow(now time.Time) (from, to time.Time) {
	curFrom, curTo := r.Window(now)
	return curFrom.Add(-curTo.Sub(curFrom)), curFrom
}
