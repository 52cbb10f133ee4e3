package tui

import (
	"fmt"
	"strings"

	"trailpace/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SlopesModel is the slope reference screen: speed, pace and vertical
// speed at fixed grades for the current flat speed
type SlopesModel struct {
	planService *service.PlanService
	units       service.Units
	plan        *service.Plan
	rows        []service.SlopeRowDisplay
	viewport    viewport.Model
	width       int
	height      int
	ready       bool
}

// NewSlopesModel creates a new slopes model
func NewSlopesModel(ps *service.PlanService, width, height int) SlopesModel {
	m := SlopesModel{
		planService: ps,
		units:       ps.Units(),
		width:       width,
		height:      height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-reservedLines)
		m.ready = true
	}

	return m
}

// Init initializes the slopes screen
func (m SlopesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m SlopesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		m.plan = msg.plan
		m.rows = nil
		if m.plan != nil {
			m.rows = m.planService.SlopeReference(m.plan.FlatSpeed, m.plan.Model)
		}
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

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the slopes screen
func (m SlopesModel) View() string {
	if m.plan == nil {
		return "\n  Solving flat pace..."
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  m: switch model")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m SlopesModel) renderContent() string {
	if m.plan == nil {
		return "No data"
	}

	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionTitle(fmt.Sprintf("Slope Reference at %s flat", m.units.FormatPaceWithUnit(m.plan.FlatSpeed))))
	lines = append(lines, lipgloss.NewStyle().Foreground(mutedColor).Render("  "+m.plan.ModelLabel))
	lines = append(lines, "")

	header := "  " + service.SlopeHeader(m.units)
	lines = append(lines, lipgloss.NewStyle().Foreground(primaryColor).Render(header))

	for _, row := range m.rows {
		line := "  " + service.SlopeRowString(row)
		switch {
		case row.Row.SlopePercent == 0:
			line = metricValueStyle.Render(line)
		case !row.Row.Pace.Valid:
			line = errorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")

	speeds := make([]float64, len(m.rows))
	for i, row := range m.rows {
		speeds[i] = row.Row.Speed * 3.6
	}
	if chart := service.Chart(speeds, "", service.ChartWidth); chart != "" {
		lines = append(lines, sectionTitle("Speed by slope (km/h)"), chart, "")
	}

	return strings.Join(lines, "\n")
}
