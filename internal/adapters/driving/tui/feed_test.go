package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestConnect_SubscribesEverySource(t *testing.T) {
	p, svc := testPorts()
	got := make(chan tea.Msg, 8)

	Connect(p, func(msg tea.Msg) { got <- msg })

	require.Len(t, svc.registry.subscribers, 1)
	require.Len(t, svc.selection.subscribers, 1)
	require.Len(t, svc.feed.subscribers, 1)
	require.Len(t, svc.auth.onChange, 1)

	svc.registry.subscribers[0](nil)
	svc.selection.subscribers[0](1, true)
	svc.feed.subscribers[0](domain.NewConversations())
	svc.auth.onChange[0](false)

	for i := 0; i < 4; i++ {
		select {
		case msg := <-got:
			assert.IsType(t, messages.StateChanged{}, msg)
		case <-time.After(time.Second):
			t.Fatalf("signal %d not delivered", i)
		}
	}
}

func TestConnect_DoesNotBlockCaller(t *testing.T) {
	p, svc := testPorts()
	release := make(chan struct{})
	defer close(release)

	Connect(p, func(tea.Msg) { <-release })

	done := make(chan struct{})
	go func() {
		svc.registry.subscribers[0](nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscriber callback blocked on send")
	}
}

func TestConnect_NilArguments(t *testing.T) {
	p, svc := testPorts()

	Connect(nil, func(tea.Msg) {})
	Connect(p, nil)

	assert.Empty(t, svc.registry.subscribers)
}
