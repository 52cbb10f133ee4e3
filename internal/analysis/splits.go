package analysis

import (
	"sort"

	"trailpace/internal/route"
)

// Split is the estimated passage at a distance marker
type Split struct {
	DistanceKm float64
	Elapsed    float64 // seconds since the start
	Duration   float64 // seconds since the previous split
	Climb      float64 // meters gained since the previous split
	Descent    float64 // meters lost since the previous split (non-positive)
}

// PassageTime estimates the elapsed time at km along the route by linear
// interpolation inside the segment containing it. cumulative must come from
// CumulativeTime for the same trace. It returns false when km is outside
// the route.
func PassageTime(trace route.Trace, cumulative []float64, km float64) (float64, bool) {
	n := trace.Len()
	if n == 0 || len(cumulative) != n || km < 0 || km > trace.TotalDistanceKm() {
		return 0, false
	}

	// First sample at or beyond km
	i := sort.SearchFloat64s(trace.Distances, km)
	if i == 0 {
		return cumulative[0], true
	}
	if i >= n {
		return cumulative[n-1], true
	}

	d0, d1 := trace.Distances[i-1], trace.Distances[i]
	if d1 == d0 {
		return cumulative[i], true
	}
	ratio := (km - d0) / (d1 - d0)
	return cumulative[i-1] + ratio*(cumulative[i]-cumulative[i-1]), true
}

// KilometerSplits returns one split per whole kilometer plus the finish
func KilometerSplits(trace route.Trace, cumulative []float64) []Split {
	return DistanceSplits(trace, cumulative, 1)
}

// DistanceSplits returns one split every intervalKm plus the finish
func DistanceSplits(trace route.Trace, cumulative []float64, intervalKm float64) []Split {
	if trace.Empty() || len(cumulative) != trace.Len() || intervalKm <= 0 {
		return nil
	}

	total := trace.TotalDistanceKm()
	var markers []float64
	for i := 1; float64(i)*intervalKm < total; i++ {
		markers = append(markers, float64(i)*intervalKm)
	}
	markers = append(markers, total)

	var splits []Split
	prevElapsed := 0.0
	prevIdx := 0
	for _, km := range markers {
		elapsed, ok := PassageTime(trace, cumulative, km)
		if !ok {
			continue
		}

		// Elevation is counted sample to sample, up to the last sample
		// at or before the marker.
		idx := sort.SearchFloat64s(trace.Distances, km)
		if idx >= trace.Len() || trace.Distances[idx] > km {
			idx--
		}
		idx = max(idx, prevIdx)
		climb, descent := ElevationTotalsBetween(trace.Elevations, prevIdx, idx)

		splits = append(splits, Split{
			DistanceKm: km,
			Elapsed:    elapsed,
			Duration:   elapsed - prevElapsed,
			Climb:      climb,
			Descent:    descent,
		})
		prevElapsed = elapsed
		prevIdx = idx
	}
	return splits
}
