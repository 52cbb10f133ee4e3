package service

import (
	"math"
	"testing"

	"trailpace/internal/analysis"
	"trailpace/internal/config"
)

func TestUnitsLabels(t *testing.T) {
	km := NewUnits(config.DisplayConfig{DistanceUnit: "km"})
	mi := NewUnits(config.DisplayConfig{DistanceUnit: "mi"})

	if km.IsMiles() || !mi.IsMiles() {
		t.Fatal("IsMiles mismatch")
	}
	if km.DistanceLabel() != "km" || mi.DistanceLabel() != "mi" {
		t.Errorf("labels = %q/%q", km.DistanceLabel(), mi.DistanceLabel())
	}
	if km.PaceLabel() != "min/km" || mi.PaceLabel() != "min/mi" {
		t.Errorf("pace labels = %q/%q", km.PaceLabel(), mi.PaceLabel())
	}
	if km.SplitInterval() != 1 || mi.SplitInterval() != KmPerMile {
		t.Errorf("split intervals = %v/%v", km.SplitInterval(), mi.SplitInterval())
	}
}

func TestUnitsDistance(t *testing.T) {
	mi := NewUnits(config.DisplayConfig{DistanceUnit: "mi"})

	if got := mi.Distance(KmPerMile); math.Abs(got-1) > 1e-12 {
		t.Errorf("Distance(one mile in km) = %v, want 1", got)
	}
	if got := mi.FromDistance(mi.Distance(42.195)); math.Abs(got-42.195) > 1e-9 {
		t.Errorf("FromDistance round trip = %v, want 42.195", got)
	}
	if got := mi.FormatDistance(KmPerMile * 26.2); got != "26.20 mi" {
		t.Errorf("FormatDistance = %q, want 26.20 mi", got)
	}

	km := NewUnits(config.DisplayConfig{DistanceUnit: "km"})
	if got := km.FormatDistance(21.1); got != "21.10 km" {
		t.Errorf("FormatDistance = %q, want 21.10 km", got)
	}
}

func TestUnitsPace(t *testing.T) {
	km := NewUnits(config.DisplayConfig{DistanceUnit: "km"})
	mi := NewUnits(config.DisplayConfig{DistanceUnit: "mi"})

	// 1000/360 m/s is 6:00 min/km
	speed := 1000.0 / 360
	tests := []struct {
		name  string
		units Units
		want  string
	}{
		{"km", km, "06:00"},
		{"mi", mi, "09:39"}, // 6 min/km * 1.60934 = 9.656 min
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.units.FormatSpeedPace(speed); got != tt.want {
				t.Errorf("FormatSpeedPace = %q, want %q", got, tt.want)
			}
			if got := tt.units.FormatPace(analysis.PaceFromSpeed(speed)); got != tt.want {
				t.Errorf("FormatPace = %q, want %q", got, tt.want)
			}
		})
	}

	if got := km.FormatPace(analysis.Pace{}); got != "-" {
		t.Errorf("FormatPace(invalid) = %q, want -", got)
	}
	if got := km.FormatPaceWithUnit(0); got != "-" {
		t.Errorf("FormatPaceWithUnit(0) = %q, want -", got)
	}
	if got := km.FormatPaceWithUnit(speed); got != "06:00/km" {
		t.Errorf("FormatPaceWithUnit = %q, want 06:00/km", got)
	}

	if got := mi.PaceValue(analysis.PaceFromSpeed(speed)); math.Abs(got-6*KmPerMile) > 1e-9 {
		t.Errorf("PaceValue = %v, want %v", got, 6*KmPerMile)
	}
	if got := km.PaceValue(analysis.Pace{}); got != 0 {
		t.Errorf("PaceValue(invalid) = %v, want 0", got)
	}
}
