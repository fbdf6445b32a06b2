package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorTitle   = "#58a6ff"
	colorSuccess = "#3fb950"
	colorError   = "#f85149"
	colorMuted   = "#8b949e"
)

// styles holds the lipgloss styles bound to the console's output writer.
type styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Route   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Result  lipgloss.Style
}

// newStyles binds styles to w so colour is dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle)),
		Prompt:  r.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Route:   r.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Success: r.NewStyle().Foreground(lipgloss.Color(colorSuccess)),
		Error:   r.NewStyle().Foreground(lipgloss.Color(colorError)),
		Result:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSuccess)),
	}
}
