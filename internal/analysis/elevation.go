package analysis

// ElevationTotals returns the total climb (D+) and total descent (D-) of a
// sequence of elevations. Descent is accumulated as a non-positive number.
func ElevationTotals(elevations []float64) (climb, descent float64) {
	return ElevationTotalsBetween(elevations, 0, len(elevations)-1)
}

// ElevationTotalsBetween returns climb and descent over points from..to
// inclusive. Sub-ranges sharing a boundary point add up exactly:
// totals(0, k) + totals(k, n-1) == totals(0, n-1).
func ElevationTotalsBetween(elevations []float64, from, to int) (climb, descent float64) {
	if from < 0 {
		from = 0
	}
	if to > len(elevations)-1 {
		to = len(elevations) - 1
	}
	for i := from + 1; i <= to; i++ {
		d := elevations[i] - elevations[i-1]
		if d > 0 {
			climb += d
		} else {
			descent += d
		}
	}
	return climb, descent
}

// CumulativeElevation returns running D+ and D- at every point
func CumulativeElevation(elevations []float64) (gain, loss []float64) {
	if len(elevations) == 0 {
		return nil, nil
	}
	gain = make([]float64, len(elevations))
	loss = make([]float64, len(elevations))
	for i := 1; i < len(elevations); i++ {
		d := elevations[i] - elevations[i-1]
		gain[i], loss[i] = gain[i-1], loss[i-1]
		if d > 0 {
			gain[i] += d
		} else {
			loss[i] += d
		}
	}
	return gain, loss
}
