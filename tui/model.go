package tui

import (
	"context"
	"strings"
	"time"

	"transit-dashboard/model"
	"transit-dashboard/screen"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultLoadTimeout = 15 * time.Second

// Navigator receives quick action and report targets the client cannot open itself
type Navigator func(target string)

type Options struct {
	Navigate    Navigator
	LoadTimeout time.Duration
	Start       string // screen shown first; defaults to the dashboard
}

type dashboardLoadedMsg struct {
	snap *model.DashboardSnapshot
	err  error
}

type advancedLoadedMsg struct {
	snap *model.AdvancedAnalyticsSnapshot
	err  error
}

// Model is the bubbletea model of the terminal dashboard
type Model struct {
	dashboardSource screen.Source[model.DashboardSnapshot]
	advancedSource  screen.Source[model.AdvancedAnalyticsSnapshot]

	dashboard *screen.Loader[model.DashboardSnapshot]
	advanced  *screen.Loader[model.AdvancedAnalyticsSnapshot]
	tabs      *screen.Selector
	sections  *screen.Selector

	active      string
	actionIndex int
	status      string
	navigate    Navigator
	timeout     time.Duration
	width       int
}

func New(dashboard screen.Source[model.DashboardSnapshot], advanced screen.Source[model.AdvancedAnalyticsSnapshot], opts Options) Model {
	timeout := opts.LoadTimeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	active := screen.ScreenDashboard
	if opts.Start == screen.ScreenAdvanced {
		active = screen.ScreenAdvanced
	}
	return Model{
		dashboardSource: dashboard,
		advancedSource:  advanced,
		dashboard:       screen.NewDashboardLoader(dashboard),
		advanced:        screen.NewAdvancedLoader(advanced),
		tabs:            screen.NewDashboardSelector(),
		sections:        screen.NewAdvancedSelector(),
		active:          active,
		navigate:        opts.Navigate,
		timeout:         timeout,
	}
}

func (m Model) Init() tea.Cmd {
	m.dashboard.Begin()
	m.advanced.Begin()
	return tea.Batch(m.loadDashboardCmd(), m.loadAdvancedCmd())
}

func (m Model) loadDashboardCmd() tea.Cmd {
	source, timeout := m.dashboardSource, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := source.Fetch(ctx)
		return dashboardLoadedMsg{snap: snap, err: err}
	}
}

func (m Model) loadAdvancedCmd() tea.Cmd {
	source, timeout := m.advancedSource, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := source.Fetch(ctx)
		return advancedLoadedMsg{snap: snap, err: err}
	}
}

// refreshCmd reloads the active screen
func (m Model) refreshCmd() tea.Cmd {
	if m.active == screen.ScreenAdvanced {
		if m.advanced.State().Loading {
			return nil
		}
		m.advanced.BeginRefresh()
		return m.loadAdvancedCmd()
	}
	if m.dashboard.State().Loading {
		return nil
	}
	m.dashboard.BeginRefresh()
	return m.loadDashboardCmd()
}

// currentView renders the active screen's selected section
func (m Model) currentView() screen.View {
	if m.active == screen.ScreenAdvanced {
		return screen.RenderAdvanced(m.advanced.Snapshot(), m.sections.Current())
	}
	return screen.RenderDashboard(m.dashboard.Snapshot(), m.tabs.Current())
}

func (m Model) selector() *screen.Selector {
	if m.active == screen.ScreenAdvanced {
		return m.sections
	}
	return m.tabs
}

func (m Model) loading() (loading, refreshing bool, alert string) {
	if m.active == screen.ScreenAdvanced {
		st := m.advanced.State()
		return st.Loading, st.Refreshing, st.Alert
	}
	st := m.dashboard.State()
	return st.Loading, st.Refreshing, st.Alert
}

func (m Model) actions() []screen.Action {
	var out []screen.Action
	for _, c := range m.currentView().Cards {
		out = append(out, c.Actions...)
	}
	return out
}

// activate follows a quick action. The analytics target opens the advanced screen.
func (m Model) activate(a screen.Action) Model {
	switch {
	case a.Target == screen.TargetAnalytics:
		m.active = screen.ScreenAdvanced
		m.actionIndex = 0
		m.status = "Opened advanced analytics"
	case m.navigate != nil:
		m.navigate(a.Target)
		m.status = "Opened " + a.Label
	default:
		m.status = a.Label + ": " + strings.TrimPrefix(a.Target, "report:")
	}
	return m
}
