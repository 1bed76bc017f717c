// Package styles holds the palette and lipgloss styles of the terminal UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Theme is the colour palette.
type Theme struct {
	Accent    lipgloss.Color // titles, focus
	Highlight lipgloss.Color // the user's side of the chat
	Text      lipgloss.Color
	Faded     lipgloss.Color
	Frame     lipgloss.Color
	Bar       lipgloss.Color // status bar background

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme is a dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    "#2DD4BF",
		Highlight: "#FBBF24",
		Text:      "#E5E7EB",
		Faded:     "#6B7280",
		Frame:     "#374151",
		Bar:       "#111827",
		Success:   "#4ADE80",
		Warning:   "#FB923C",
		Error:     "#F87171",
	}
}

// Styles are the rendered styles built from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Panes and inputs.
	Border        lipgloss.Style
	FocusedBorder lipgloss.Style
	InputField    lipgloss.Style
	StatusBar     lipgloss.Style

	// Transcript.
	UserMessage lipgloss.Style
	BotMessage  lipgloss.Style
	Source      lipgloss.Style

	// Dimmed marks documents that cannot be chatted with yet.
	Dimmed lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	frame := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(c)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Highlight).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Faded),
		Help:     fg(theme.Faded),
		Selected: fg(theme.Bar).Background(theme.Accent).Bold(true),

		Success: fg(theme.Success),
		Warning: fg(theme.Warning),
		Error:   fg(theme.Error),

		Border:        frame(theme.Frame),
		FocusedBorder: frame(theme.Accent),
		InputField:    frame(theme.Frame).Padding(0, 1),
		StatusBar:     fg(theme.Faded).Background(theme.Bar).Padding(0, 1),

		UserMessage: fg(theme.Highlight).Bold(true),
		BotMessage:  fg(theme.Text),
		Source:      fg(theme.Faded).Italic(true),
		Dimmed:      fg(theme.Faded).Faint(true),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ForLevel returns the style a notification of level is shown in.
func (s *Styles) ForLevel(level domain.NotificationLevel) lipgloss.Style {
	switch level {
	case domain.NotifyError:
		return s.Error
	case domain.NotifyWarn:
		return s.Warning
	case domain.NotifySuccess:
		return s.Success
	default:
		return s.Normal
	}
}
