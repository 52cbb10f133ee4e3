package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"trailpace/internal/analysis"
	"trailpace/internal/config"
	"trailpace/internal/route"
)

var (
	// ErrNoRoute is returned when planning without a loaded route
	ErrNoRoute = errors.New("no route loaded")

	// ErrInvalidTarget is returned for a non-positive target time
	ErrInvalidTarget = errors.New("target time must be positive")
)

// PlanService turns routes and target times into pacing plans
type PlanService struct {
	cfg    config.Config
	solver analysis.SolverConfig
	units  Units
}

// NewPlanService creates a new plan service
func NewPlanService(cfg config.Config) *PlanService {
	return &PlanService{
		cfg:    cfg,
		solver: cfg.SolverConfig(),
		units:  NewUnits(cfg.Display),
	}
}

// Units returns the display units in use
func (s *PlanService) Units() Units {
	return s.units
}

// DefaultModel returns the configured cost model, Minetti if unset
func (s *PlanService) DefaultModel() analysis.CostModel {
	m, err := analysis.ModelByName(s.cfg.Plan.Model)
	if err != nil {
		return analysis.Minetti
	}
	return m
}

// Route is a resampled route ready for planning
type Route struct {
	Name    string
	Trace   route.Trace
	Summary RouteSummary
}

// RouteSummary describes a route independently of any target time
type RouteSummary struct {
	DistanceKm float64
	Climb      float64 // D+, meters
	Descent    float64 // D-, meters (non-positive)
	Points     int     // source points
	Samples    int     // kept after resampling
	MaxSlope   float64 // percent
	MinSlope   float64 // percent
}

// LoadRoute reads and resamples a GPX file
func (s *PlanService) LoadRoute(path string) (*Route, error) {
	points, err := route.LoadGPX(path)
	if err != nil {
		return nil, fmt.Errorf("loading route: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s.NewRoute(name, points), nil
}

// NewRoute resamples in-memory points into a Route
func (s *PlanService) NewRoute(name string, points []route.TracePoint) *Route {
	trace := route.Resample(points, route.Distance3D, s.cfg.ResampleConfig())
	climb, descent := analysis.ElevationTotals(trace.Elevations)

	summary := RouteSummary{
		DistanceKm: trace.TotalDistanceKm(),
		Climb:      climb,
		Descent:    descent,
		Points:     len(points),
		Samples:    trace.Len(),
	}
	for i, seg := range trace.Segments() {
		if i == 0 || seg.SlopePercent > summary.MaxSlope {
			summary.MaxSlope = seg.SlopePercent
		}
		if i == 0 || seg.SlopePercent < summary.MinSlope {
			summary.MinSlope = seg.SlopePercent
		}
	}

	return &Route{Name: name, Trace: trace, Summary: summary}
}

// Plan is a solved pacing plan for one route, target and model
type Plan struct {
	Model         analysis.CostModel
	ModelLabel    string
	TargetSeconds float64
	TargetTime    string

	Solution     analysis.Solution
	FlatSpeed    float64 // m/s
	FlatSpeedKmh float64
	FlatPace     string // in the display unit
	Status       string
	Warning      string // set when the solution is approximate or infeasible
	Finish       string // simulated finish time

	Profile analysis.Profile
	Splits  []analysis.Split

	// Chart series, aligned on segment midpoints
	ElevationSeries []float64
	PaceSeries      []float64 // undefined paces are dropped

	// Running D+ and D- at every sample
	ClimbSeries   []float64
	DescentSeries []float64
}

// Plan solves the flat speed for r and derives its full profile
func (s *PlanService) Plan(r *Route, targetSeconds float64, m analysis.CostModel) (*Plan, error) {
	if r == nil {
		return nil, ErrNoRoute
	}
	if targetSeconds <= 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidTarget, targetSeconds)
	}
	if m == nil {
		m = s.DefaultModel()
	}

	sol := analysis.SolveFlatSpeed(r.Trace, m, targetSeconds, s.solver)
	profile := analysis.ComputeProfile(sol.Speed, r.Trace, m)

	p := &Plan{
		Model:         m,
		ModelLabel:    analysis.ModelLabel(m),
		TargetSeconds: targetSeconds,
		TargetTime:    analysis.FormatDuration(targetSeconds),
		Solution:      sol,
		FlatSpeed:     sol.Speed,
		FlatSpeedKmh:  sol.Speed * 3.6,
		FlatPace:      s.units.FormatSpeedPace(sol.Speed),
		Status:        sol.Status.String(),
		Finish:        analysis.FormatDuration(profile.FinishTime()),
		Profile:       profile,
		Splits:        analysis.DistanceSplits(r.Trace, profile.CumulativeTime, s.units.SplitInterval()),
	}
	if err := sol.Err(); err != nil {
		p.Warning = err.Error()
	}

	if r.Trace.Len() > 1 {
		p.ElevationSeries = r.Trace.Elevations[1:]
	}
	p.ClimbSeries, p.DescentSeries = analysis.CumulativeElevation(r.Trace.Elevations)
	for _, pace := range profile.Paces {
		if pace.Valid {
			p.PaceSeries = append(p.PaceSeries, s.units.PaceValue(pace))
		}
	}

	return p, nil
}

// Compare plans the same route and target with every cost model
func (s *PlanService) Compare(r *Route, targetSeconds float64) ([]*Plan, error) {
	var plans []*Plan
	for _, m := range analysis.Models() {
		p, err := s.Plan(r, targetSeconds, m)
		if err != nil {
			return nil, fmt.Errorf("planning with %s: %w", m.Name(), err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// PassageTime returns the formatted elapsed time at a distance given in
// the display unit
func (s *PlanService) PassageTime(r *Route, p *Plan, distance float64) (string, bool) {
	if r == nil || p == nil {
		return "", false
	}
	secs, ok := analysis.PassageTime(r.Trace, p.Profile.CumulativeTime, s.units.FromDistance(distance))
	if !ok {
		return "", false
	}
	return analysis.FormatDuration(secs), true
}

// SlopeRowDisplay is a formatted row of the slope reference table
type SlopeRowDisplay struct {
	Slope         string
	Speed         string // km/h
	Pace          string
	VerticalSpeed string // m/h
	Row           analysis.SlopeRow
}

// SlopeReference evaluates the configured slope grid at flatSpeed
func (s *PlanService) SlopeReference(flatSpeed float64, m analysis.CostModel) []SlopeRowDisplay {
	slopes := analysis.SlopeRange(s.cfg.Slopes.From, s.cfg.Slopes.To, s.cfg.Slopes.Step)
	rows := analysis.SlopeTable(flatSpeed, m, slopes)

	display := make([]SlopeRowDisplay, len(rows))
	for i, row := range rows {
		display[i] = SlopeRowDisplay{
			Slope:         fmt.Sprintf("%+.0f%%", row.SlopePercent),
			Speed:         fmt.Sprintf("%.1f", row.Speed*3.6),
			Pace:          s.units.FormatPace(row.Pace),
			VerticalSpeed: fmt.Sprintf("%+.0f", row.VerticalSpeed),
			Row:           row,
		}
	}
	return display
}
