package analysis

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"trailpace/internal/route"
)

// flatTrace builds a route of totalKm with a sample every stepKm
func flatTrace(totalKm, stepKm, elevation float64) route.Trace {
	var tr route.Trace
	n := int(math.Round(totalKm / stepKm))
	for i := 0; i <= n; i++ {
		tr.Distances = append(tr.Distances, float64(i)*stepKm)
		tr.Elevations = append(tr.Elevations, elevation)
	}
	return tr
}

// hillyTrace builds a rolling route with climbs and descents up to ~20%
func hillyTrace(totalKm float64) route.Trace {
	var tr route.Trace
	n := int(totalKm * 20) // 50 m samples
	for i := 0; i <= n; i++ {
		km := float64(i) * 0.05
		tr.Distances = append(tr.Distances, km)
		tr.Elevations = append(tr.Elevations, 800+300*math.Sin(km/1.5))
	}
	return tr
}

func TestBisect(t *testing.T) {
	cfg := DefaultSolverConfig()
	eval := func(v float64) float64 { return 10000 / v }

	sol := Bisect(eval, 3600, cfg)
	if sol.Status != StatusConverged {
		t.Fatalf("Status = %v, want converged", sol.Status)
	}
	if math.Abs(eval(sol.Speed)-3600) >= cfg.Precision {
		t.Errorf("eval(%v) = %v, want within %v of 3600", sol.Speed, eval(sol.Speed), cfg.Precision)
	}
	if sol.SimulatedTime != eval(sol.Speed) {
		t.Errorf("SimulatedTime = %v, want %v", sol.SimulatedTime, eval(sol.Speed))
	}
	if sol.Iterations == 0 || sol.Iterations > cfg.MaxIterations {
		t.Errorf("Iterations = %d, want 1..%d", sol.Iterations, cfg.MaxIterations)
	}
	if sol.Err() != nil {
		t.Errorf("Err() = %v, want nil", sol.Err())
	}
}

func TestBisectSaturation(t *testing.T) {
	cfg := DefaultSolverConfig()
	eval := func(v float64) float64 { return 10000 / v }

	tests := []struct {
		name      string
		target    float64
		want      SolveStatus
		nearSpeed float64
	}{
		{"target needs a crawl", 100000, StatusTooSlow, cfg.MinSpeed},
		{"target needs a sprint", 100, StatusTooFast, cfg.MaxSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := Bisect(eval, tt.target, cfg)
			if sol.Status != tt.want {
				t.Errorf("Status = %v, want %v", sol.Status, tt.want)
			}
			if math.Abs(sol.Speed-tt.nearSpeed) > 0.001 {
				t.Errorf("Speed = %v, want ~%v", sol.Speed, tt.nearSpeed)
			}
			if !errors.Is(sol.Err(), ErrInfeasible) {
				t.Errorf("Err() = %v, want ErrInfeasible", sol.Err())
			}
		})
	}
}

func TestBisectIterationCap(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.MaxIterations = 3
	cfg.Precision = 1e-9

	sol := Bisect(func(v float64) float64 { return 10000 / v }, 3600, cfg)
	if sol.Iterations != 3 {
		t.Errorf("Iterations = %d, want 3", sol.Iterations)
	}
	if sol.Status != StatusExhausted {
		t.Errorf("Status = %v, want exhausted", sol.Status)
	}
	if !errors.Is(sol.Err(), ErrNotConverged) {
		t.Errorf("Err() = %v, want ErrNotConverged", sol.Err())
	}
	if sol.Speed < cfg.MinSpeed || sol.Speed > cfg.MaxSpeed {
		t.Errorf("Speed = %v outside [%v, %v]", sol.Speed, cfg.MinSpeed, cfg.MaxSpeed)
	}
}

func TestSolveFlatSpeedFlatRoute(t *testing.T) {
	trace := flatTrace(10, 0.1, 350)
	cfg := DefaultSolverConfig()

	var speeds []float64
	for _, m := range Models() {
		sol := SolveFlatSpeed(trace, m, 3600, cfg)
		if sol.Status != StatusConverged {
			t.Fatalf("%s: Status = %v, want converged", m.Name(), sol.Status)
		}
		if math.Abs(sol.Speed-10000.0/3600) > 0.001 {
			t.Errorf("%s: Speed = %v, want ~2.778", m.Name(), sol.Speed)
		}
		if got := FormatPace(sol.Speed); got != "06:00" {
			t.Errorf("%s: FormatPace = %q, want 06:00", m.Name(), got)
		}
		speeds = append(speeds, sol.Speed)
	}

	// cost(0) normalizes away on the flat, so both models agree exactly
	if speeds[0] != speeds[1] {
		t.Errorf("minetti %v != strava %v on a flat route", speeds[0], speeds[1])
	}
}

func TestSolveFlatSpeedReproducesTarget(t *testing.T) {
	cfg := DefaultSolverConfig()

	routes := []struct {
		name string
		km   float64
	}{
		{"marathon", 42.2},
		{"100k", 100},
		{"170k ultra", 170},
	}
	speeds := []float64{1.2, 1.8, 5}

	for _, r := range routes {
		trace := hillyTrace(r.km)
		for _, m := range Models() {
			for _, v := range speeds {
				// A target the solver can reach with a flat speed of about v
				target := math.Round(SimulateTotalTime(v, trace, m))

				t.Run(fmt.Sprintf("%s/%s/%.1f", r.name, m.Name(), v), func(t *testing.T) {
					sol := SolveFlatSpeed(trace, m, target, cfg)
					if sol.Status != StatusConverged {
						t.Fatalf("Status = %v after %d iterations, want converged", sol.Status, sol.Iterations)
					}
					if sol.Err() != nil {
						t.Errorf("Err() = %v, want nil", sol.Err())
					}

					times := CumulativeTime(sol.Speed, trace, m)
					finish := times[len(times)-1]
					if math.Abs(finish-target) >= cfg.Precision {
						t.Errorf("finish = %v, want within %v of %v", finish, cfg.Precision, target)
					}
					if math.Abs(sol.Speed-v) > 0.01 {
						t.Errorf("Speed = %v, want about %v", sol.Speed, v)
					}

					// Hills cost time, so the flat speed must beat the average speed
					avg := trace.TotalDistanceKm() * 1000 / target
					if sol.Speed <= avg {
						t.Errorf("flat speed %v should exceed average speed %v", sol.Speed, avg)
					}
				})
			}
		}
	}
}

func TestBisectBracketTolerance(t *testing.T) {
	// 10000 s per m/s near 1.7 m/s: a bracket of 0.01 m/s is worth ~35 s
	eval := func(v float64) float64 { return 100000 / v }
	target := 100000 / 1.7345678

	cfg := DefaultSolverConfig()
	sol := Bisect(eval, target, cfg)
	if sol.Status != StatusConverged {
		t.Fatalf("default config: Status = %v, want converged", sol.Status)
	}

	cfg.BracketTolerance = 0.01
	sol = Bisect(eval, target, cfg)
	if sol.Status != StatusExhausted {
		t.Fatalf("coarse tolerance: Status = %v, want approximate", sol.Status)
	}
	if sol.Iterations >= cfg.MaxIterations {
		t.Errorf("Iterations = %d, tolerance should stop the search early", sol.Iterations)
	}
	if !errors.Is(sol.Err(), ErrNotConverged) {
		t.Errorf("Err() = %v, want ErrNotConverged", sol.Err())
	}
}

func TestSolveFlatSpeedDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		trace route.Trace
	}{
		{"empty", route.Trace{}},
		{"single sample", route.Trace{Distances: []float64{0}, Elevations: []float64{100}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := SolveFlatSpeed(tt.trace, Minetti, 3600, DefaultSolverConfig())
			if sol.Status != StatusNoSegments {
				t.Errorf("Status = %v, want no segments", sol.Status)
			}
			if sol.Speed != 0 {
				t.Errorf("Speed = %v, want 0", sol.Speed)
			}
			if sol.Err() != nil {
				t.Errorf("Err() = %v, want nil", sol.Err())
			}
		})
	}
}

func TestSolverConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SolverConfig)
		wantErr bool
	}{
		{"defaults", func(c *SolverConfig) {}, false},
		{"zero min speed", func(c *SolverConfig) { c.MinSpeed = 0 }, true},
		{"inverted bounds", func(c *SolverConfig) { c.MaxSpeed = 0.5 }, true},
		{"no iterations", func(c *SolverConfig) { c.MaxIterations = 0 }, true},
		{"zero precision", func(c *SolverConfig) { c.Precision = 0 }, true},
		{"negative tolerance", func(c *SolverConfig) { c.BracketTolerance = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSolverConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
