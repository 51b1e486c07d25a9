package tui

import (
	"transit-dashboard/screen"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if err := m.dashboard.Finish(msg.snap, msg.err); err == nil && m.active == screen.ScreenDashboard {
			m.status = "Dashboard updated"
		}
		return m, nil
	case advancedLoadedMsg:
		if err := m.advanced.Finish(msg.snap, msg.err); err == nil && m.active == screen.ScreenAdvanced {
			m.status = "Analytics updated"
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.selector().Next()
		m.actionIndex = 0
	case "shift+tab", "left", "h":
		m.selector().Prev()
		m.actionIndex = 0
	case "1", "2", "3", "4":
		i := int(key[0] - '0')
		opts := m.selector().Options()
		if i > len(opts) {
			break
		}
		if err := m.selector().Select(opts[i-1]); err != nil {
			log.Error().Err(err).Str("section", string(opts[i-1])).Msg("Failed to select section")
			m.status = err.Error()
			break
		}
		m.actionIndex = 0
	case "s":
		if m.active == screen.ScreenDashboard {
			m.active = screen.ScreenAdvanced
		} else {
			m.active = screen.ScreenDashboard
		}
		m.actionIndex = 0
		m.status = ""
	case "r":
		return m, m.refreshCmd()
	case "x", "esc":
		if m.active == screen.ScreenAdvanced {
			m.advanced.DismissAlert()
		} else {
			m.dashboard.DismissAlert()
		}
	case "down", "j":
		if n := len(m.actions()); n > 0 {
			m.actionIndex = (m.actionIndex + 1) % n
		}
	case "up", "k":
		if n := len(m.actions()); n > 0 {
			m.actionIndex = (m.actionIndex - 1 + n) % n
		}
	case "enter":
		actions := m.actions()
		if m.actionIndex < len(actions) {
			m = m.activate(actions[m.actionIndex])
		}
	}
	return m, nil
}
