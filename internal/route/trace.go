package route

import (
	"github.com/tkrajina/gpxgo/gpx"
)

// DefaultMinSpacing is the default distance in meters between kept samples
const DefaultMinSpacing = 30.0

// TracePoint is a single source point of a route
type TracePoint struct {
	Lat       float64
	Lon       float64
	Elevation float64 // meters
}

// DistanceFunc returns the distance in meters between two points
type DistanceFunc func(a, b TracePoint) float64

// Distance3D returns the surface distance between a and b combined with
// their elevation difference, in meters.
func Distance3D(a, b TracePoint) float64 {
	pa := gpx.Point{
		Latitude:  a.Lat,
		Longitude: a.Lon,
		Elevation: *gpx.NewNullableFloat64(a.Elevation),
	}
	pb := gpx.Point{
		Latitude:  b.Lat,
		Longitude: b.Lon,
		Elevation: *gpx.NewNullableFloat64(b.Elevation),
	}
	return pa.Distance3D(&pb)
}

// ResampleConfig controls how densely a trace is sampled
type ResampleConfig struct {
	MinSpacing float64 // meters between kept samples
}

// DefaultResampleConfig returns the default resampling settings
func DefaultResampleConfig() ResampleConfig {
	return ResampleConfig{MinSpacing: DefaultMinSpacing}
}

// Trace is a resampled route: cumulative distance (km) and elevation (m)
// for each kept sample. Both slices always have the same length.
type Trace struct {
	Distances  []float64
	Elevations []float64
}

// Segment is the stretch between two consecutive samples of a Trace
type Segment struct {
	DistanceMeters float64
	ElevationDelta float64
	SlopePercent   float64
}

// Resample reduces points to a Trace. The first point is always kept; after
// that a point is kept once the distance walked since the last kept point
// reaches cfg.MinSpacing. A nil dist uses Distance3D.
func Resample(points []TracePoint, dist DistanceFunc, cfg ResampleConfig) Trace {
	if dist == nil {
		dist = Distance3D
	}

	var t Trace
	if len(points) == 0 {
		return t
	}

	total := 0.0
	sinceLastKept := 0.0

	t.Distances = append(t.Distances, 0)
	t.Elevations = append(t.Elevations, points[0].Elevation)

	for i := 1; i < len(points); i++ {
		d := dist(points[i-1], points[i])
		if d < 0 {
			d = 0
		}
		total += d
		sinceLastKept += d

		if sinceLastKept >= cfg.MinSpacing {
			t.Distances = append(t.Distances, total/1000)
			t.Elevations = append(t.Elevations, points[i].Elevation)
			sinceLastKept = 0
		}
	}

	return t
}

// Len returns the number of samples
func (t Trace) Len() int {
	return len(t.Distances)
}

// Empty reports whether the trace has no segments
func (t Trace) Empty() bool {
	return len(t.Distances) < 2
}

// TotalDistanceKm returns the distance of the last sample
func (t Trace) TotalDistanceKm() float64 {
	if len(t.Distances) == 0 {
		return 0
	}
	return t.Distances[len(t.Distances)-1]
}

// Midpoints returns the distance (km) halfway through each segment, used as
// the x-axis of per-segment series.
func (t Trace) Midpoints() []float64 {
	if t.Empty() {
		return nil
	}
	mids := make([]float64, len(t.Distances)-1)
	for i := 1; i < len(t.Distances); i++ {
		mids[i-1] = (t.Distances[i] + t.Distances[i-1]) / 2
	}
	return mids
}

// Segments returns the length, climb and slope of every segment
func (t Trace) Segments() []Segment {
	if t.Empty() {
		return nil
	}
	segs := make([]Segment, len(t.Distances)-1)
	for i := 1; i < len(t.Distances); i++ {
		d := (t.Distances[i] - t.Distances[i-1]) * 1000
		dz := t.Elevations[i] - t.Elevations[i-1]
		segs[i-1] = Segment{
			DistanceMeters: d,
			ElevationDelta: dz,
			SlopePercent:   SlopePercent(dz, d),
		}
	}
	return segs
}

// SlopePercent returns the grade of a segment in percent. A zero-length
// segment has a slope of 0.
func SlopePercent(dz, d float64) float64 {
	if d == 0 {
		return 0
	}
	return dz / d * 100
}
