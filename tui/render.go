package tui

import (
	"fmt"
	"strings"

	"transit-dashboard/screen"

	"github.com/charmbracelet/lipgloss"
)

var screenTitles = map[string]string{
	screen.ScreenDashboard: "Transit Dashboard",
	screen.ScreenAdvanced:  "Advanced Analytics",
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(screenTitles[m.active]))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	loading, refreshing, alert := m.loading()
	if alert != "" {
		b.WriteString(alertStyle.Render("! " + alert))
		b.WriteString("\n\n")
	}

	switch {
	case refreshing:
		b.WriteString(loadingStyle.Render("Refreshing..."))
		b.WriteString("\n")
	case loading:
		b.WriteString(loadingStyle.Render("Loading..."))
		b.WriteString("\n")
	}

	action := 0
	for _, card := range m.currentView().Cards {
		b.WriteString(m.renderCard(card, &action))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(labelStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("tab/←→ section · 1-4 jump · s switch screen · r refresh · ↑↓ enter action · x dismiss · q quit"))
	return b.String()
}

func (m Model) renderTabs() string {
	sel := m.selector()
	current := sel.Current()
	parts := make([]string, 0, 4)
	for i, opt := range sel.Options() {
		label := fmt.Sprintf("%d %s", i+1, opt)
		if opt == current {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderCard draws one card. action counts actions across cards so the cursor can be highlighted.
func (m Model) renderCard(c screen.Card, action *int) string {
	lines := []string{cardTitleStyle.Render(c.Title)}

	for _, s := range c.Stats {
		lines = append(lines, renderStat(s))
	}
	for _, s := range c.Series {
		lines = append(lines, renderSeries(s))
	}
	for _, it := range c.Items {
		line := "• " + it.Title
		if it.Badge != "" {
			line += " " + badgeStyle.Render("["+it.Badge+"]")
		}
		if it.Detail != "" {
			line += " " + labelStyle.Render(it.Detail)
		}
		lines = append(lines, line)
		for _, f := range it.Fields {
			lines = append(lines, "    "+renderStat(f))
		}
	}
	for _, a := range c.Actions {
		label := "→ " + a.Label
		if *action == m.actionIndex {
			lines = append(lines, selectedStyle.Render(label))
		} else {
			lines = append(lines, actionStyle.Render(label))
		}
		*action++
	}

	style := cardStyle
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderStat(s screen.Stat) string {
	line := labelStyle.Render(s.Label+": ") + valueStyle.Render(s.Value)
	if s.Change != "" {
		line += " " + changeStyle.Render(s.Change)
	}
	return line
}

// renderSeries lists the points as label=value pairs
func renderSeries(s screen.Series) string {
	pairs := make([]string, 0, len(s.Points))
	for i, p := range s.Points {
		label := ""
		if i < len(s.Labels) {
			label = s.Labels[i]
		}
		pairs = append(pairs, fmt.Sprintf("%s=%g", label, p))
	}
	return labelStyle.Render(s.Name+": ") + strings.Join(pairs, "  ")
}
