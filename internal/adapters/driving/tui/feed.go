package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Connect subscribes to every service that changes state off the event
// loop and forwards a StateChanged signal through send.
//
// Callbacks can fire from inside Update (a command's service call
// notifies synchronously), where a blocking Program.Send would deadlock,
// so each signal is sent from its own goroutine.
func Connect(p *Ports, send func(tea.Msg)) {
	if p == nil || send == nil {
		return
	}
	signal := func() { go send(messages.StateChanged{}) }

	if p.Registry != nil {
		p.Registry.Subscribe(func([]domain.Document) { signal() })
	}
	if p.Selection != nil {
		p.Selection.Subscribe(func(int64, bool) { signal() })
	}
	if p.Conversations != nil {
		p.Conversations.Subscribe(func(*domain.Conversations) { signal() })
	}
	if p.Auth != nil {
		p.Auth.OnChange(func(bool) { signal() })
	}
}
