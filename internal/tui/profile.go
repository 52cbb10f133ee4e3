package tui

import (
	"fmt"
	"strings"

	"trailpace/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProfileModel is the route profile screen: summary plus elevation and
// pace charts
type ProfileModel struct {
	units    service.Units
	route    *service.Route
	plan     *service.Plan
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewProfileModel creates a new profile model
func NewProfileModel(units service.Units, r *service.Route, width, height int) ProfileModel {
	m := ProfileModel{
		units:  units,
		route:  r,
		width:  width,
		height: height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-reservedLines)
		m.ready = true
	}

	return m
}

// Init initializes the profile screen
func (m ProfileModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		m.plan = msg.plan
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-reservedLines)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - reservedLines
		}
		m.viewport.SetContent(m.renderContent())
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the profile screen
func (m ProfileModel) View() string {
	if m.plan == nil {
		return "\n  Solving flat pace..."
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m ProfileModel) renderContent() string {
	if m.route == nil || m.plan == nil {
		return "No data"
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderSummary())

	if chart := service.Chart(m.plan.ElevationSeries, "", m.chartWidth()); chart != "" {
		sections = append(sections, sectionTitle("Elevation (m)"), chart, "")
	}
	if chart := service.Chart(m.plan.PaceSeries, "", m.chartWidth()); chart != "" {
		sections = append(sections, sectionTitle(fmt.Sprintf("Pace (%s)", m.units.PaceLabel())), chart, "")
	}
	if chart := service.Chart(m.plan.ClimbSeries, "", m.chartWidth()); chart != "" {
		sections = append(sections, sectionTitle("Cumulative D+ (m)"), chart, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ProfileModel) chartWidth() int {
	// asciigraph needs room for the axis labels
	w := m.width - 12
	if w > service.ChartMaxPoints {
		w = service.ChartMaxPoints
	}
	if w < 20 {
		return service.ChartWidth
	}
	return w
}

func (m ProfileModel) renderHeader() string {
	title := cardTitleStyle.Render(m.route.Name)

	s := m.route.Summary
	stats := fmt.Sprintf("%s  •  D+ %.0f m  •  D- %.0f m",
		m.units.FormatDistance(s.DistanceKm), s.Climb, -s.Descent)
	statsLine := lipgloss.NewStyle().Foreground(textColor).Bold(true).Render(stats)

	subtitle := lipgloss.NewStyle().Foreground(mutedColor).Render(
		fmt.Sprintf("%d samples from %d points", s.Samples, s.Points))

	return lipgloss.JoinVertical(lipgloss.Left, "", title, statsLine, subtitle, "")
}

func (m ProfileModel) renderSummary() string {
	var lines []string
	p := m.plan

	lines = append(lines, sectionTitle("Plan"))
	lines = append(lines, RenderMetric("Cost model", p.ModelLabel, ""))
	lines = append(lines, RenderMetric("Target time", p.TargetTime, ""))
	lines = append(lines, RenderMetric("Flat pace", m.units.FormatPaceWithUnit(p.FlatSpeed), fmt.Sprintf("%.2f km/h", p.FlatSpeedKmh)))
	lines = append(lines, RenderMetric("Simulated finish", p.Finish, ""))
	lines = append(lines, RenderMetric("Solver", p.Status, fmt.Sprintf("%d iterations", p.Solution.Iterations)))
	lines = append(lines, RenderMetric("Slope range",
		fmt.Sprintf("%+.1f%% to %+.1f%%", m.route.Summary.MinSlope, m.route.Summary.MaxSlope), ""))

	if p.Warning != "" {
		lines = append(lines, warningStyle.Render("  "+p.Warning))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
