// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
)

const (
	placeholderReady    = "Ask a question about this document..."
	placeholderDisabled = "Select a document to start chatting"
)

// ChatInput wraps a bubbles textinput for composing chat messages.
// A disabled input ignores keystrokes and keeps its value.
type ChatInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	enabled   bool
	width     int
}

// NewChatInput creates a new, disabled chat input.
func NewChatInput(s *styles.Styles) *ChatInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholderDisabled
	ti.CharLimit = 2000
	ti.Width = 50

	return &ChatInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the chat input.
func (c *ChatInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *ChatInput) Update(msg tea.Msg) (*ChatInput, tea.Cmd) {
	if !c.enabled {
		return c, nil
	}
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the chat input.
func (c *ChatInput) View() string {
	label := c.styles.Title.Render("> ")
	if !c.enabled {
		label = c.styles.Muted.Render("> ")
	}
	input := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// SetEnabled toggles whether the input accepts keystrokes.
func (c *ChatInput) SetEnabled(enabled bool) {
	c.enabled = enabled
	if enabled {
		c.textinput.Placeholder = placeholderReady
	} else {
		c.textinput.Placeholder = placeholderDisabled
	}
}

// Enabled reports whether the input accepts keystrokes.
func (c *ChatInput) Enabled() bool {
	return c.enabled
}

// SetPlaceholder overrides the placeholder text.
func (c *ChatInput) SetPlaceholder(p string) {
	c.textinput.Placeholder = p
}

// Placeholder returns the placeholder text.
func (c *ChatInput) Placeholder() string {
	return c.textinput.Placeholder
}

// Value returns the current input value.
func (c *ChatInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *ChatInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (c *ChatInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *ChatInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *ChatInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *ChatInput) SetWidth(width int) {
	c.width = width
	inputWidth := width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *ChatInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *ChatInput) Reset() {
	c.textinput.Reset()
}
