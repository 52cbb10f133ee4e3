package tui

import (
	"fmt"

	"trailpace/internal/analysis"
	"trailpace/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenProfile Screen = iota
	ScreenSplits
	ScreenSlopes
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	profile ProfileModel
	splits  SplitsModel
	slopes  SlopesModel
	help    HelpModel

	// Plan inputs
	planService *service.PlanService
	route       *service.Route
	model       analysis.CostModel
	target      float64

	plan *service.Plan
	err  error

	// Target time editor
	editing bool
	input   textinput.Model

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App planning r with the given target and model
func NewApp(ps *service.PlanService, r *service.Route, targetSeconds float64, m analysis.CostModel) *App {
	if m == nil {
		m = ps.DefaultModel()
	}

	input := textinput.New()
	input.Placeholder = "hh:mm:ss"
	input.CharLimit = 8
	input.Width = 10

	units := ps.Units()
	return &App{
		screen:      ScreenProfile,
		planService: ps,
		route:       r,
		model:       m,
		target:      targetSeconds,
		input:       input,
		profile:     NewProfileModel(units, r, 0, 0),
		splits:      NewSplitsModel(ps, r, 0, 0),
		slopes:      NewSlopesModel(ps, 0, 0),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.replan
}

// planReadyMsg carries a freshly solved plan to every screen
type planReadyMsg struct {
	plan *service.Plan
	err  error
}

func (a *App) replan() tea.Msg {
	plan, err := a.planService.Plan(a.route, a.target, a.model)
	return planReadyMsg{plan: plan, err: err}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.editing {
			return a.updateEditor(msg)
		}

		// Global keybindings (unless a screen is taking text input)
		if !a.splits.searching {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenProfile
				return a, nil
			case "2":
				a.screen = ScreenSplits
				return a, nil
			case "3":
				a.screen = ScreenSlopes
				return a, nil
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
				}
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			case "m":
				a.model = nextModel(a.model)
				a.status = "Cost model: " + analysis.ModelLabel(a.model)
				return a, a.replan
			case "t":
				a.editing = true
				a.input.SetValue(analysis.FormatDuration(a.target))
				a.input.CursorEnd()
				return a, a.input.Focus()
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.broadcast(msg)
		return a, nil

	case planReadyMsg:
		a.plan = msg.plan
		a.err = msg.err
		if msg.plan != nil && msg.plan.Warning != "" {
			a.status = "Warning: " + msg.plan.Warning
		}
		a.broadcast(msg)
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenProfile:
		var m tea.Model
		m, cmd = a.profile.Update(msg)
		a.profile = m.(ProfileModel)
	case ScreenSplits:
		var m tea.Model
		m, cmd = a.splits.Update(msg)
		a.splits = m.(SplitsModel)
	case ScreenSlopes:
		var m tea.Model
		m, cmd = a.slopes.Update(msg)
		a.slopes = m.(SlopesModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// broadcast forwards msg to every screen, not only the visible one
func (a *App) broadcast(msg tea.Msg) {
	var m tea.Model
	m, _ = a.profile.Update(msg)
	a.profile = m.(ProfileModel)
	m, _ = a.splits.Update(msg)
	a.splits = m.(SplitsModel)
	m, _ = a.slopes.Update(msg)
	a.slopes = m.(SlopesModel)
}

func (a *App) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.editing = false
		a.input.Blur()
		a.status = ""
		return a, nil
	case "enter":
		secs, err := analysis.ParseDuration(a.input.Value())
		if err != nil || secs <= 0 {
			a.status = fmt.Sprintf("Invalid target time %q, use hh:mm:ss", a.input.Value())
			return a, nil
		}
		a.editing = false
		a.input.Blur()
		a.target = secs
		a.status = "Target: " + analysis.FormatDuration(secs)
		return a, a.replan
	case "ctrl+c":
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// nextModel cycles through the available cost models
func nextModel(current analysis.CostModel) analysis.CostModel {
	models := analysis.Models()
	for i, m := range models {
		if m.Name() == current.Name() {
			return models[(i+1)%len(models)]
		}
	}
	return models[0]
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch {
	case a.err != nil && a.screen != ScreenHelp:
		content = errorStyle.Render(fmt.Sprintf("\n  Error: %v", a.err))
	default:
		switch a.screen {
		case ScreenProfile:
			content = a.profile.View()
		case ScreenSplits:
			content = a.splits.View()
		case ScreenSlopes:
			content = a.slopes.View()
		case ScreenHelp:
			content = a.help.View()
		}
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	title := "Trail Pace Planner"
	if a.route != nil {
		title += " - " + a.route.Name
	}
	return headerStyle.Render(title)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Profile", ScreenProfile},
		{"2", "Splits", ScreenSplits},
		{"3", "Slopes", ScreenSlopes},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[m] Model  [t] Target  [q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.editing {
		return statusStyle.Render("Target time: ") + a.input.View() +
			helpDescStyle.Render("  enter: apply  esc: cancel")
	}

	var line string
	if a.plan != nil {
		line = fmt.Sprintf("%s  •  target %s  •  flat %s  •  %s",
			a.plan.ModelLabel, a.plan.TargetTime,
			a.planService.Units().FormatPaceWithUnit(a.plan.FlatSpeed), a.plan.Status)
	}
	footer := statusStyle.Render(line)
	if a.status != "" {
		style := helpDescStyle
		if a.plan != nil && a.plan.Warning != "" {
			style = warningStyle
		}
		footer += "\n" + style.Render(a.status)
	}
	return footer
}
