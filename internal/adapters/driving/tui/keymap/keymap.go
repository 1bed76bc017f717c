// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection or submits input.
	Select key.Binding

	// Cancel closes a prompt.
	Cancel key.Binding

	// SwitchFocus moves focus between the sidebar and the chat pane,
	// or between fields on the login form.
	SwitchFocus key.Binding

	// NewChat clears the active conversation.
	NewChat key.Binding

	// Upload opens the upload prompt.
	Upload key.Binding

	// Delete asks to delete the highlighted document.
	Delete key.Binding

	// Refresh reloads the document list.
	Refresh key.Binding

	// Confirm accepts a confirmation prompt.
	Confirm key.Binding

	// Logout clears the credential.
	Logout key.Binding

	// ToggleRegister switches the login form between login and register.
	ToggleRegister key.Binding

	// Suggestion picks one of the suggested questions.
	Suggestion key.Binding

	// ScrollUp and ScrollDown page the transcript.
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new chat"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		ToggleRegister: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "login/register"),
		),
		Suggestion: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "suggestion"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// SidebarHelp returns the hints shown while the sidebar has focus.
func (k *KeyMap) SidebarHelp() []key.Binding {
	return []key.Binding{k.Select, k.NewChat, k.Upload, k.Delete, k.Refresh, k.SwitchFocus, k.Logout}
}

// ChatHelp returns the hints shown while the chat pane has focus.
func (k *KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Select, k.ScrollUp, k.SwitchFocus, k.Logout, k.Quit}
}

// LoginHelp returns the hints shown on the login form.
func (k *KeyMap) LoginHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.Select, k.ToggleRegister, k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
