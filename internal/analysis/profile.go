package analysis

import (
	"math"

	"trailpace/internal/route"
)

// Pace is a pace in minutes per km. Valid is false when the speed it was
// derived from was zero, so no pace exists.
type Pace struct {
	MinutesPerKm float64
	Valid        bool
}

// PaceFromSpeed converts m/s to min/km
func PaceFromSpeed(speed float64) Pace {
	if speed <= 0 {
		return Pace{}
	}
	return Pace{MinutesPerKm: (1000 / speed) / 60, Valid: true}
}

// Profile holds every per-segment series for one flat speed and model.
// Midpoints, Slopes, Speeds and Paces have one entry per segment;
// CumulativeTime has one entry per sample.
type Profile struct {
	FlatSpeed      float64
	Midpoints      []float64 // km
	Slopes         []float64 // percent
	Speeds         []float64 // m/s
	Paces          []Pace
	CumulativeTime []float64 // seconds
}

// SimulateTotalTime returns the time (s) to cover trace at flatSpeed
func SimulateTotalTime(flatSpeed float64, trace route.Trace, m CostModel) float64 {
	return simulate(trace.Segments(), flatSpeed, m)
}

func simulate(segs []route.Segment, flatSpeed float64, m CostModel) float64 {
	total := 0.0
	for _, s := range segs {
		v := AdjustedSpeed(flatSpeed, s.SlopePercent, m)
		if v != 0 {
			total += s.DistanceMeters / v
		}
	}
	return total
}

// CumulativeTime returns the elapsed time (s) at each sample, starting at 0.
// Segments with no progress leave the time unchanged.
func CumulativeTime(flatSpeed float64, trace route.Trace, m CostModel) []float64 {
	if trace.Len() == 0 {
		return nil
	}

	times := make([]float64, 1, trace.Len())
	for _, s := range trace.Segments() {
		next := times[len(times)-1]
		if v := AdjustedSpeed(flatSpeed, s.SlopePercent, m); v > 0 {
			next += s.DistanceMeters / v
		}
		times = append(times, next)
	}
	return times
}

// AdjustedSpeeds returns the slope-adjusted speed of every segment
func AdjustedSpeeds(trace route.Trace, flatSpeed float64, m CostModel) []float64 {
	segs := trace.Segments()
	speeds := make([]float64, len(segs))
	for i, s := range segs {
		speeds[i] = AdjustedSpeed(flatSpeed, s.SlopePercent, m)
	}
	return speeds
}

// Paces returns the pace of every segment
func Paces(trace route.Trace, flatSpeed float64, m CostModel) []Pace {
	speeds := AdjustedSpeeds(trace, flatSpeed, m)
	paces := make([]Pace, len(speeds))
	for i, v := range speeds {
		paces[i] = PaceFromSpeed(v)
	}
	return paces
}

// ComputeProfile derives all per-segment series in one pass
func ComputeProfile(flatSpeed float64, trace route.Trace, m CostModel) Profile {
	p := Profile{
		FlatSpeed:      flatSpeed,
		Midpoints:      trace.Midpoints(),
		CumulativeTime: CumulativeTime(flatSpeed, trace, m),
	}

	segs := trace.Segments()
	p.Slopes = make([]float64, len(segs))
	p.Speeds = make([]float64, len(segs))
	p.Paces = make([]Pace, len(segs))
	for i, s := range segs {
		v := AdjustedSpeed(flatSpeed, s.SlopePercent, m)
		p.Slopes[i] = s.SlopePercent
		p.Speeds[i] = v
		p.Paces[i] = PaceFromSpeed(v)
	}
	return p
}

// FinishTime returns the last cumulative time, or 0 for an empty profile
func (p Profile) FinishTime() float64 {
	if len(p.CumulativeTime) == 0 {
		return 0
	}
	return p.CumulativeTime[len(p.CumulativeTime)-1]
}

// SlopeRow is one line of a slope -> pace reference table
type SlopeRow struct {
	SlopePercent  float64
	Speed         float64 // m/s
	Pace          Pace
	VerticalSpeed float64 // m/h, negative when descending
}

// SlopeTable evaluates the model on an arbitrary grid of slopes (percent),
// independently of any route
func SlopeTable(flatSpeed float64, m CostModel, slopes []float64) []SlopeRow {
	rows := make([]SlopeRow, len(slopes))
	for i, slope := range slopes {
		v := AdjustedSpeed(flatSpeed, slope, m)
		rows[i] = SlopeRow{
			SlopePercent:  slope,
			Speed:         v,
			Pace:          PaceFromSpeed(v),
			VerticalSpeed: v * slope / 100 * 3600,
		}
	}
	return rows
}

// SlopeRange returns from, from+step, ... up to and including to
func SlopeRange(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	slopes := make([]float64, n)
	for i := range slopes {
		// Avoid accumulating float error across the grid
		slopes[i] = math.Round((from+float64(i)*step)*1e6) / 1e6
	}
	return slopes
}
