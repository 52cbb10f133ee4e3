package service

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"trailpace/internal/analysis"
)

// WriteReport writes a plain-text pacing plan for r and p
func (s *PlanService) WriteReport(w io.Writer, r *Route, p *Plan) error {
	if r == nil {
		return ErrNoRoute
	}
	if p == nil {
		return fmt.Errorf("writing report: no plan")
	}

	var b strings.Builder
	u := s.units

	fmt.Fprintf(&b, "%s\n", r.Name)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", max(len(r.Name), 20)))

	// Route
	sum := r.Summary
	fmt.Fprintf(&b, "Distance     %s\n", u.FormatDistance(sum.DistanceKm))
	fmt.Fprintf(&b, "Climb        D+ %s m   D- %s m\n", formatMeters(sum.Climb), formatMeters(sum.Descent))
	fmt.Fprintf(&b, "Slopes       %+.1f%% to %+.1f%%\n", sum.MinSlope, sum.MaxSlope)
	fmt.Fprintf(&b, "Samples      %s of %s points\n\n", humanize.Comma(int64(sum.Samples)), humanize.Comma(int64(sum.Points)))

	// Plan
	fmt.Fprintf(&b, "Model        %s\n", p.ModelLabel)
	fmt.Fprintf(&b, "Target       %s\n", p.TargetTime)
	fmt.Fprintf(&b, "Flat pace    %s (%.2f km/h)\n", u.FormatPaceWithUnit(p.FlatSpeed), p.FlatSpeedKmh)
	fmt.Fprintf(&b, "Finish       %s\n", p.Finish)
	fmt.Fprintf(&b, "Solver       %s after %d iterations\n", p.Status, p.Solution.Iterations)
	if p.Warning != "" {
		fmt.Fprintf(&b, "Warning      %s\n", p.Warning)
	}
	b.WriteString("\n")

	if len(p.Splits) > 0 {
		b.WriteString(renderSplitsTable(u, p.Splits))
		b.WriteString("\n")
	}

	rows := s.SlopeReference(p.FlatSpeed, p.Model)
	if len(rows) > 0 {
		b.WriteString(renderSlopeTable(u, rows))
		b.WriteString("\n")
	}

	if chart := Chart(p.ElevationSeries, "Elevation (m)", 0); chart != "" {
		b.WriteString(chart)
		b.WriteString("\n\n")
	}
	if chart := Chart(p.PaceSeries, fmt.Sprintf("Pace (%s)", u.PaceLabel()), 0); chart != "" {
		b.WriteString(chart)
		b.WriteString("\n\n")
	}
	if chart := Chart(p.ClimbSeries, "Cumulative D+ (m)", 0); chart != "" {
		b.WriteString(chart)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SplitRow is a formatted split line shared by the report and the TUI
func SplitRow(u Units, sp analysis.Split) string {
	return fmt.Sprintf("%8.2f  %9s  %9s  %7s  %7s",
		u.Distance(sp.DistanceKm),
		analysis.FormatDuration(sp.Elapsed),
		analysis.FormatDuration(sp.Duration),
		"+"+formatMeters(sp.Climb),
		formatMeters(sp.Descent),
	)
}

// SplitHeader is the column header matching SplitRow
func SplitHeader(u Units) string {
	return fmt.Sprintf("%8s  %9s  %9s  %7s  %7s", u.DistanceLabel(), "Elapsed", "Split", "D+", "D-")
}

// SlopeHeader is the column header matching SlopeRowString
func SlopeHeader(u Units) string {
	return fmt.Sprintf("%6s  %7s  %8s  %6s", "Slope", "km/h", u.PaceLabel(), "m/h")
}

// SlopeRowString formats a slope reference row
func SlopeRowString(row SlopeRowDisplay) string {
	return fmt.Sprintf("%6s  %7s  %8s  %6s", row.Slope, row.Speed, row.Pace, row.VerticalSpeed)
}

func renderSplitsTable(u Units, splits []analysis.Split) string {
	var lines []string
	lines = append(lines, "Splits")
	lines = append(lines, SplitHeader(u))
	for _, sp := range splits {
		lines = append(lines, SplitRow(u, sp))
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderSlopeTable(u Units, rows []SlopeRowDisplay) string {
	var lines []string
	lines = append(lines, "Slope reference")
	lines = append(lines, SlopeHeader(u))
	for _, row := range rows {
		lines = append(lines, SlopeRowString(row))
	}
	return strings.Join(lines, "\n") + "\n"
}

// formatMeters rounds to whole meters with thousands separators
func formatMeters(m float64) string {
	return humanize.Comma(int64(math.Round(m)))
}
