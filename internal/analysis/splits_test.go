package analysis

import (
	"math"
	"testing"

	"trailpace/internal/route"
)

func splitsFixture() (route.Trace, []float64) {
	trace := route.Trace{
		Distances:  []float64{0, 0.5, 1.0, 1.5, 2.0, 2.5},
		Elevations: []float64{0, 10, 20, 10, 10, 30},
	}
	cumulative := []float64{0, 200, 400, 600, 800, 1000}
	return trace, cumulative
}

func TestPassageTime(t *testing.T) {
	trace, cumulative := splitsFixture()

	tests := []struct {
		name   string
		km     float64
		want   float64
		wantOK bool
	}{
		{"start", 0, 0, true},
		{"on a sample", 1.0, 400, true},
		{"inside a segment", 1.25, 500, true},
		{"finish", 2.5, 1000, true},
		{"past the finish", 2.6, 0, false},
		{"negative", -0.1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PassageTime(trace, cumulative, tt.km)
			if ok != tt.wantOK {
				t.Fatalf("PassageTime(%v) ok = %v, want %v", tt.km, ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PassageTime(%v) = %v, want %v", tt.km, got, tt.want)
			}
		})
	}

	if _, ok := PassageTime(trace, cumulative[:3], 1); ok {
		t.Error("mismatched series should not give a passage time")
	}
	if _, ok := PassageTime(route.Trace{}, nil, 0); ok {
		t.Error("empty trace should not give a passage time")
	}
}

func TestKilometerSplits(t *testing.T) {
	trace, cumulative := splitsFixture()
	splits := KilometerSplits(trace, cumulative)

	want := []Split{
		{DistanceKm: 1, Elapsed: 400, Duration: 400, Climb: 20, Descent: 0},
		{DistanceKm: 2, Elapsed: 800, Duration: 400, Climb: 0, Descent: -10},
		{DistanceKm: 2.5, Elapsed: 1000, Duration: 200, Climb: 20, Descent: 0},
	}
	if len(splits) != len(want) {
		t.Fatalf("got %d splits, want %d: %+v", len(splits), len(want), splits)
	}
	for i, w := range want {
		s := splits[i]
		if s.DistanceKm != w.DistanceKm ||
			math.Abs(s.Elapsed-w.Elapsed) > 1e-9 ||
			math.Abs(s.Duration-w.Duration) > 1e-9 ||
			s.Climb != w.Climb || s.Descent != w.Descent {
			t.Errorf("split %d = %+v, want %+v", i, s, w)
		}
	}
}

func TestKilometerSplitsShortRoute(t *testing.T) {
	trace := route.Trace{
		Distances:  []float64{0, 0.4, 0.8},
		Elevations: []float64{0, 0, 0},
	}
	splits := KilometerSplits(trace, []float64{0, 100, 200})
	if len(splits) != 1 {
		t.Fatalf("got %d splits, want only the finish", len(splits))
	}
	if splits[0].DistanceKm != 0.8 || splits[0].Elapsed != 200 {
		t.Errorf("finish split = %+v", splits[0])
	}

	if got := KilometerSplits(route.Trace{}, nil); got != nil {
		t.Errorf("KilometerSplits(empty) = %v, want nil", got)
	}
}

func TestDistanceSplitsInterval(t *testing.T) {
	trace, cumulative := splitsFixture()

	splits := DistanceSplits(trace, cumulative, 0.5)
	if len(splits) != 5 {
		t.Fatalf("got %d splits, want 5", len(splits))
	}
	for i, s := range splits {
		if math.Abs(s.Duration-200) > 1e-9 {
			t.Errorf("split %d duration = %v, want 200", i, s.Duration)
		}
	}

	if got := DistanceSplits(trace, cumulative, 0); got != nil {
		t.Errorf("DistanceSplits(interval 0) = %v, want nil", got)
	}
}
