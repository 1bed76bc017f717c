package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"accent":    theme.Accent,
		"highlight": theme.Highlight,
		"text":      theme.Text,
		"faded":     theme.Faded,
		"frame":     theme.Frame,
		"bar":       theme.Bar,
		"success":   theme.Success,
		"warning":   theme.Warning,
		"error":     theme.Error,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_StatusColoursDiffer(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEqual(t, theme.Success, theme.Warning)
	assert.NotEqual(t, theme.Warning, theme.Error)
	assert.NotEqual(t, theme.Accent, theme.Highlight)
}

func TestNewStyles(t *testing.T) {
	theme := DefaultTheme()
	s := NewStyles(theme)

	require.NotNil(t, s)
	assert.Same(t, theme, s.Theme())
	assert.Equal(t, theme.Accent, s.Title.GetForeground())
	assert.True(t, s.Title.GetBold())
	assert.Equal(t, theme.Accent, s.FocusedBorder.GetBorderTopForeground())
	assert.Equal(t, theme.Frame, s.Border.GetBorderTopForeground())
	assert.True(t, s.Source.GetItalic())
	assert.True(t, s.Dimmed.GetFaint())
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestDefaultStyles_Render(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.UserMessage.Render("You: hi"), "You: hi")
	assert.Contains(t, s.Selected.Render("report.pdf"), "report.pdf")
	assert.Greater(t, s.InputField.GetHorizontalFrameSize(), 0)
}

func TestForLevel(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		level domain.NotificationLevel
		want  lipgloss.TerminalColor
	}{
		{domain.NotifyError, theme.Error},
		{domain.NotifyWarn, theme.Warning},
		{domain.NotifySuccess, theme.Success},
		{domain.NotifyInfo, theme.Text},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, s.ForLevel(tt.level).GetForeground())
		})
	}
}
