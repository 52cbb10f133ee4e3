package tui

import (
	"fmt"
	"strconv"
	"strings"

	"trailpace/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SplitsModel is the splits screen: a split table plus a passage time
// lookup at any distance
type SplitsModel struct {
	planService *service.PlanService
	units       service.Units
	route       *service.Route
	plan        *service.Plan
	viewport    viewport.Model
	width       int
	height      int
	ready       bool

	// Passage time lookup
	searching bool
	input     textinput.Model
	lookup    string
}

// NewSplitsModel creates a new splits model
func NewSplitsModel(ps *service.PlanService, r *service.Route, width, height int) SplitsModel {
	input := textinput.New()
	input.Placeholder = "distance"
	input.CharLimit = 7
	input.Width = 8

	m := SplitsModel{
		planService: ps,
		units:       ps.Units(),
		route:       r,
		width:       width,
		height:      height,
		input:       input,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-reservedLines)
		m.ready = true
	}

	return m
}

// Init initializes the splits screen
func (m SplitsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m SplitsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		m.plan = msg.plan
		m.lookup = ""
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

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			m.searching = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m SplitsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.input.Blur()
		m.lookup = m.passageTime(m.input.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// passageTime formats the elapsed time at the distance typed by the user
func (m SplitsModel) passageTime(value string) string {
	value = strings.TrimSpace(value)
	d, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("  %q is not a distance", value))
	}
	elapsed, ok := m.planService.PassageTime(m.route, m.plan, d)
	if !ok {
		return errorStyle.Render(fmt.Sprintf("  %.2f %s is outside the route", d, m.units.DistanceLabel()))
	}
	return successStyle.Render(fmt.Sprintf("  At %.2f %s: %s", d, m.units.DistanceLabel(), elapsed))
}

// View renders the splits screen
func (m SplitsModel) View() string {
	if m.plan == nil {
		return "\n  Solving flat pace..."
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	var footer string
	switch {
	case m.searching:
		footer = statusStyle.Render(fmt.Sprintf("  Passage time at (%s): ", m.units.DistanceLabel())) + m.input.View()
	case m.lookup != "":
		footer = lipgloss.JoinVertical(lipgloss.Left, m.lookup,
			statusStyle.Render("  j/k or arrows: scroll  /: passage time"))
	default:
		footer = statusStyle.Render("  j/k or arrows: scroll  /: passage time")
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m SplitsModel) renderContent() string {
	if m.plan == nil {
		return "No data"
	}
	if len(m.plan.Splits) == 0 {
		return lipgloss.NewStyle().Foreground(mutedColor).Render("\n  Route too short for splits.")
	}

	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionTitle(fmt.Sprintf("Splits per %s", m.units.DistanceLabel())))

	header := "  " + service.SplitHeader(m.units)
	lines = append(lines, lipgloss.NewStyle().Foreground(primaryColor).Render(header))

	for _, sp := range m.plan.Splits {
		lines = append(lines, "  "+service.SplitRow(m.units, sp))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
