package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-video-fetcher/models"
)

var (
	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var statusStyles = map[models.TaskStatus]lipgloss.Style{
	models.TaskStatusQueued:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	models.TaskStatusDownloading: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	models.TaskStatusComplete:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	models.TaskStatusError:       errorStyle,
}

// StatusLabel renders status in its color.
func StatusLabel(status models.TaskStatus) string {
	style, ok := statusStyles[status]
	if !ok {
		return string(status)
	}
	return style.Render(string(status))
}
