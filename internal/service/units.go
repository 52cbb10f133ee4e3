package service

import (
	"fmt"

	"trailpace/internal/analysis"
	"trailpace/internal/config"
)

// Units provides unit conversion and formatting based on user preferences.
// The core always works in km, m and min/km.
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit == "mi"
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// PaceLabel returns the pace unit label ("min/mi" or "min/km")
func (u Units) PaceLabel() string {
	return "min/" + u.DistanceLabel()
}

// SplitInterval returns the split spacing in km: one km or one mile
func (u Units) SplitInterval() float64 {
	if u.IsMiles() {
		return KmPerMile
	}
	return 1
}

// Distance converts km to the user's unit
func (u Units) Distance(km float64) float64 {
	if u.IsMiles() {
		return km / KmPerMile
	}
	return km
}

// FromDistance converts a distance in the user's unit back to km
func (u Units) FromDistance(value float64) float64 {
	if u.IsMiles() {
		return value * KmPerMile
	}
	return value
}

// FormatDistance formats km in the user's preferred unit
func (u Units) FormatDistance(km float64) string {
	return fmt.Sprintf("%.2f %s", u.Distance(km), u.DistanceLabel())
}

// PaceValue converts a pace to minutes per user unit, 0 when undefined
func (u Units) PaceValue(p analysis.Pace) float64 {
	if !p.Valid {
		return 0
	}
	if u.IsMiles() {
		return p.MinutesPerKm * KmPerMile
	}
	return p.MinutesPerKm
}

// FormatSpeedPace formats a speed (m/s) as a pace in the user's unit
func (u Units) FormatSpeedPace(speed float64) string {
	if u.IsMiles() && speed > 0 {
		// Same "mm:ss" rounding as min/km, on a mile
		return analysis.FormatPace(speed / KmPerMile)
	}
	return analysis.FormatPace(speed)
}

// FormatPace formats a Pace in the user's unit
func (u Units) FormatPace(p analysis.Pace) string {
	if !p.Valid {
		return "-"
	}
	return u.FormatSpeedPace(1000 / (p.MinutesPerKm * 60))
}

// FormatPaceWithUnit formats a speed as pace with the unit label
func (u Units) FormatPaceWithUnit(speed float64) string {
	pace := u.FormatSpeedPace(speed)
	if pace == "-" {
		return pace
	}
	return pace + "/" + u.DistanceLabel()
}
