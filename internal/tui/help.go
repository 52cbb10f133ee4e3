package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Keyboard Shortcuts"))

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Route profile"},
		{"2", "Splits"},
		{"3", "Slope reference"},
		{"?", "Help (this screen)"},
		{"esc", "Close help"},
		{"q", "Quit"},
	}))

	sections = append(sections, m.renderSection("Plan", []keyHelp{
		{"m", "Switch cost model"},
		{"t", "Edit target time (hh:mm:ss)"},
	}))

	sections = append(sections, m.renderSection("Splits", []keyHelp{
		{"/", "Passage time at a distance"},
		{"j / k", "Scroll"},
	}))

	sections = append(sections, m.renderModelsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionTitle(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderModelsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionTitle("How It Works"))
	lines = append(lines, "")

	topics := []struct {
		name string
		desc string
	}{
		{"Flat pace", "The pace on level ground that finishes the route in the target time."},
		{"Minetti", "Metabolic cost of running on slopes (Minetti 2002). Capped at 1.3x flat speed downhill."},
		{"Strava GAP", "Grade adjusted pace fitted on Strava data. Gentler on steep descents."},
		{"Vertical speed", "Meters climbed (or lost) per hour at that slope."},
	}

	for _, topic := range topics {
		lines = append(lines, "  "+helpKeyStyle.Render(topic.name))
		lines = append(lines, "  "+helpDescStyle.Render(topic.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
