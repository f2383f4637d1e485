package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/user/govaudit/pkg/engine"
)

var (
	PrimaryColor = lipgloss.Color("#7D56F4")
	SubtleColor  = lipgloss.Color("#888888")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(PrimaryColor).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	subtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
)

var severityColors = map[engine.Severity]lipgloss.Color{
	engine.SeverityCritical: lipgloss.Color("#9B0000"),
	engine.SeverityHigh:     lipgloss.Color("#FF5F56"),
	engine.SeverityMedium:   lipgloss.Color("#FF8C00"),
	engine.SeverityLow:      lipgloss.Color("#27C93F"),
}

func severityBadge(sev engine.Severity) string {
	return lipgloss.NewStyle().Bold(true).Foreground(severityColors[sev]).Render("[" + string(sev) + "]")
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return lipgloss.NewStyle().Foreground(severityColors[engine.SeverityLow])
	case score >= 50:
		return lipgloss.NewStyle().Foreground(severityColors[engine.SeverityMedium])
	default:
		return lipgloss.NewStyle().Foreground(severityColors[engine.SeverityCritical])
	}
}
