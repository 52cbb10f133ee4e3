package analysis

import (
	"errors"
	"fmt"
	"math"

	"trailpace/internal/route"
)

// Solver defaults
const (
	DefaultMinSpeed         = 1.0 // m/s
	DefaultMaxSpeed         = 6.0 // m/s
	DefaultMaxIterations    = 100
	DefaultPrecision        = 1.0 // seconds
	DefaultBracketTolerance = 0.0 // m/s, 0 leaves precision and MaxIterations to end the search
)

var (
	// ErrInfeasible is returned when the target time cannot be reached
	// within the configured speed range
	ErrInfeasible = errors.New("target time outside the solvable speed range")

	// ErrNotConverged is returned when the iteration cap is hit before the
	// simulated time is within precision of the target
	ErrNotConverged = errors.New("flat speed search did not converge")
)

// SolverConfig bounds the flat speed search
type SolverConfig struct {
	MinSpeed         float64 // m/s
	MaxSpeed         float64 // m/s
	MaxIterations    int
	Precision        float64 // seconds
	BracketTolerance float64 // m/s, stop once the bracket is this narrow; 0 disables
}

// DefaultSolverConfig returns the standard running speed envelope
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		MinSpeed:         DefaultMinSpeed,
		MaxSpeed:         DefaultMaxSpeed,
		MaxIterations:    DefaultMaxIterations,
		Precision:        DefaultPrecision,
		BracketTolerance: DefaultBracketTolerance,
	}
}

// Validate checks the config is usable
func (c SolverConfig) Validate() error {
	if c.MinSpeed <= 0 {
		return fmt.Errorf("min speed must be positive, got %v", c.MinSpeed)
	}
	if c.MaxSpeed <= c.MinSpeed {
		return fmt.Errorf("max speed (%v) must be greater than min speed (%v)", c.MaxSpeed, c.MinSpeed)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Precision <= 0 {
		return fmt.Errorf("precision must be positive, got %v", c.Precision)
	}
	if c.BracketTolerance < 0 {
		return fmt.Errorf("bracket tolerance must not be negative, got %v", c.BracketTolerance)
	}
	return nil
}

// SolveStatus describes how a search ended
type SolveStatus int

const (
	StatusConverged  SolveStatus = iota // simulated time within precision
	StatusExhausted                     // iteration cap or bracket tolerance hit first
	StatusTooSlow                       // target slower than MinSpeed allows
	StatusTooFast                       // target faster than MaxSpeed allows
	StatusNoSegments                    // nothing to simulate
)

func (s SolveStatus) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusExhausted:
		return "approximate"
	case StatusTooSlow:
		return "target too slow"
	case StatusTooFast:
		return "target too fast"
	case StatusNoSegments:
		return "no segments"
	default:
		return "unknown"
	}
}

// Solution is the result of a flat speed search
type Solution struct {
	Speed         float64 // m/s
	Iterations    int
	Status        SolveStatus
	SimulatedTime float64 // seconds, evaluated at Speed
}

// Err returns an error describing an unusable or approximate solution
func (s Solution) Err() error {
	switch s.Status {
	case StatusTooSlow:
		return fmt.Errorf("%w: would need less than the minimum speed", ErrInfeasible)
	case StatusTooFast:
		return fmt.Errorf("%w: would need more than the maximum speed", ErrInfeasible)
	case StatusExhausted:
		return fmt.Errorf("%w after %d iterations", ErrNotConverged, s.Iterations)
	default:
		return nil
	}
}

// Bisect finds the speed at which eval returns target. eval must decrease
// as speed increases (a faster runner finishes sooner).
//
// The search stops as soon as a midpoint lands within cfg.Precision of the
// target. Otherwise it keeps halving the bracket until cfg.MaxIterations
// have run (or, when cfg.BracketTolerance is set, until the bracket is that
// narrow) and returns the bracket midpoint. When the target lies outside
// [eval(MaxSpeed), eval(MinSpeed)] the result saturates at a bound and the
// status says which one.
func Bisect(eval func(speed float64) float64, target float64, cfg SolverConfig) Solution {
	lo, hi := cfg.MinSpeed, cfg.MaxSpeed

	status := StatusExhausted
	if slowest := eval(lo); target-slowest >= cfg.Precision {
		status = StatusTooSlow
	} else if fastest := eval(hi); fastest-target >= cfg.Precision {
		status = StatusTooFast
	}

	iterations := 0
	for hi-lo > cfg.BracketTolerance && iterations < cfg.MaxIterations {
		iterations++
		mid := (lo + hi) / 2
		t := eval(mid)

		if math.Abs(t-target) < cfg.Precision {
			return Solution{Speed: mid, Iterations: iterations, Status: StatusConverged, SimulatedTime: t}
		}

		if t > target {
			lo = mid // too slow, go faster
		} else {
			hi = mid
		}
	}

	speed := (lo + hi) / 2
	return Solution{Speed: speed, Iterations: iterations, Status: status, SimulatedTime: eval(speed)}
}

// SolveFlatSpeed finds the flat speed whose simulated finish time over trace
// matches targetSeconds
func SolveFlatSpeed(trace route.Trace, m CostModel, targetSeconds float64, cfg SolverConfig) Solution {
	if trace.Empty() {
		return Solution{Status: StatusNoSegments}
	}

	segs := trace.Segments()
	eval := func(speed float64) float64 {
		return simulate(segs, speed, m)
	}
	return Bisect(eval, targetSeconds, cfg)
}
