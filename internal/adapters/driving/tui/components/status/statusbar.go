// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Mode selects which keybinding hints are shown.
type Mode string

const (
	ModeLogin   Mode = "login"
	ModeSidebar Mode = "sidebar"
	ModeChat    Mode = "chat"
)

// Bar displays the latest notification and keybinding hints.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	mode   Mode
	note   *domain.Notification
	user   string
	width  int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		mode:   ModeLogin,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - s.styles.StatusBar.GetHorizontalFrameSize() -
		lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.note != nil {
		return s.styles.ForLevel(s.note.Level).Render(s.note.Message)
	}
	if s.user != "" {
		return s.styles.Muted.Render(s.user)
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.mode {
	case ModeSidebar:
		bindings = s.keymap.SidebarHelp()
	case ModeChat:
		bindings = s.keymap.ChatHelp()
	default:
		bindings = s.keymap.LoginHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetMode sets which hints are displayed.
func (s *Bar) SetMode(mode Mode) {
	s.mode = mode
}

// Mode returns the current mode.
func (s *Bar) Mode() Mode {
	return s.mode
}

// SetNotification shows n until it is replaced or cleared.
func (s *Bar) SetNotification(n domain.Notification) {
	s.note = &n
}

// Notification returns the displayed notification, if any.
func (s *Bar) Notification() (domain.Notification, bool) {
	if s.note == nil {
		return domain.Notification{}, false
	}
	return *s.note, true
}

// SetUser sets the account shown when there is no notification.
func (s *Bar) SetUser(email string) {
	s.user = email
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear removes the notification.
func (s *Bar) Clear() {
	s.note = nil
}
