package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorAccent  = colorBlue
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabStyle       = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSurface0).Background(colorFocus).Padding(0, 1)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	labelStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	changeStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	badgeStyle     = lipgloss.NewStyle().Foreground(colorPeach)
	actionStyle    = lipgloss.NewStyle().Foreground(colorTeal)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSurface0).Background(colorTeal)
	alertStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	loadingStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	footerStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
)
