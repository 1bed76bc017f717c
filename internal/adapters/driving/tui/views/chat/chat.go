// Package chat provides the conversation pane for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// NoSelectionText is shown when no document is active.
const NoSelectionText = "Select a document from the list to start chatting, or press u to upload one."

const snippetLen = 160

// View renders the active document's transcript above the input.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	session   driving.SessionController
	selection driving.SelectionCoordinator
	registry  driving.DocumentRegistry
	ctx       context.Context

	viewport viewport.Model
	spinner  spinner.Model
	input    *input.ChatInput

	docID        int64
	hasDoc       bool
	filename     string
	conversation domain.Conversation
	inFlight     bool
	spinning     bool
	focused      bool

	width  int
	height int
}

// NewView creates a new chat pane.
func NewView(
	s *styles.Styles,
	session driving.SessionController,
	selection driving.SelectionCoordinator,
	registry driving.DocumentRegistry,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Muted

	v := &View{
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		session:   session,
		selection: selection,
		registry:  registry,
		ctx:       context.Background(),
		viewport:  viewport.New(60, 10),
		spinner:   sp,
		input:     input.NewChatInput(s),
	}
	v.Refresh()
	return v
}

// WithContext sets the context used for chat requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Refresh re-reads the selection and transcript from the services.
func (v *View) Refresh() tea.Cmd {
	v.hasDoc = false
	v.filename = ""
	v.conversation = nil
	v.inFlight = false

	if v.selection != nil {
		v.docID, v.hasDoc = v.selection.Active()
	}
	if v.hasDoc {
		v.filename = fmt.Sprintf("document %d", v.docID)
		if v.registry != nil {
			if doc, ok := v.registry.Get(v.docID); ok {
				v.filename = doc.Filename
			}
		}
		if v.session != nil {
			v.conversation = v.session.Conversation(v.docID)
			v.inFlight = v.session.InFlight(v.docID)
		}
	}

	v.input.SetEnabled(v.hasDoc && !v.inFlight)
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()

	if v.inFlight && !v.spinning {
		v.spinning = true
		return v.spinner.Tick
	}
	return nil
}

// Update handles messages for the chat pane.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.inFlight {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AnswerReceived, messages.StateChanged, messages.DocumentSelected:
		return v, v.Refresh()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Select):
		return v, v.submit(v.input.Value())

	case keymap.Matches(keyStr, v.keymap.ScrollUp):
		v.viewport.HalfViewUp()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ScrollDown):
		v.viewport.HalfViewDown()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Suggestion) && v.suggesting():
		i := int(keyStr[0] - '1')
		if i >= 0 && i < len(domain.SuggestedQuestions) {
			return v, v.submit(domain.SuggestedQuestions[i])
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// suggesting reports whether the suggested questions are on screen and
// the input is empty, so digit keys pick one.
func (v *View) suggesting() bool {
	return v.hasDoc && v.conversation.Fresh() && !v.inFlight && v.input.Value() == ""
}

// submit posts text and returns a command that resolves the answer.
// Guard rejections are silent. Credential failures are already reported
// by the session controller.
func (v *View) submit(text string) tea.Cmd {
	if v.session == nil {
		return nil
	}
	sub, err := v.session.Submit(v.ctx, text)
	if err != nil {
		if domain.IsGuardRejection(err) ||
			errors.Is(err, domain.ErrAuthRequired) || errors.Is(err, domain.ErrAuthExpired) {
			return nil
		}
		return func() tea.Msg {
			return messages.Notified{Notification: domain.Notification{
				Level:   domain.NotifyError,
				Message: err.Error(),
			}}
		}
	}

	v.input.Reset()
	tick := v.Refresh()

	ctx, session := v.ctx, v.session
	resolve := func() tea.Msg {
		answer := session.Resolve(ctx, sub)
		return messages.AnswerReceived{DocumentID: sub.DocumentID, Message: answer}
	}
	return tea.Batch(tick, resolve)
}

// renderTranscript renders the conversation, or the welcome text.
func (v *View) renderTranscript() string {
	width := max(20, v.viewport.Width-2)
	wrap := lipgloss.NewStyle().Width(width)

	if !v.hasDoc {
		return v.styles.Muted.Render(wrap.Render(NoSelectionText))
	}

	var b strings.Builder
	if v.conversation.Fresh() {
		b.WriteString(v.styles.Subtitle.Render("Start chatting with " + v.filename))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Try one of these:"))
		b.WriteString("\n")
		for i, q := range domain.SuggestedQuestions {
			b.WriteString(v.styles.Normal.Render(wrap.Render(fmt.Sprintf("  [%d] %s", i+1, q))))
			b.WriteString("\n")
		}
		return b.String()
	}

	for i, m := range v.conversation {
		if i > 0 {
			b.WriteString("\n")
		}
		switch {
		case m.IsUser():
			b.WriteString(v.styles.UserMessage.Render("You: "))
			b.WriteString(wrap.Render(m.Text))
		case m.Failed:
			b.WriteString(v.styles.Error.Render(wrap.Render("Bot: " + m.Text)))
		default:
			b.WriteString(v.styles.BotMessage.Render(wrap.Render("Bot: " + m.Text)))
			for _, src := range m.Sources {
				b.WriteString("\n")
				b.WriteString(v.styles.Source.Render(wrap.Render(
					fmt.Sprintf("  • %s: %s", src.Filename, snippet(src.Text)))))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// snippet collapses whitespace and truncates a source passage.
func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > snippetLen {
		return string(runes[:snippetLen-1]) + "…"
	}
	return text
}

// View renders the chat pane.
func (v *View) View() string {
	var b strings.Builder

	title := "Chat"
	if v.hasDoc {
		title = "Chat: " + v.filename
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")

	if v.inFlight {
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" Answering…"))
	}
	b.WriteString("\n")
	b.WriteString(v.input.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(3, height-4)
	v.input.SetWidth(width)
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

// Focus gives the input keyboard focus.
func (v *View) Focus() tea.Cmd {
	v.focused = true
	return v.input.Focus()
}

// Blur removes keyboard focus.
func (v *View) Blur() {
	v.focused = false
	v.input.Blur()
}

// Focused reports whether the pane has focus.
func (v *View) Focused() bool {
	return v.focused
}

// Active returns the displayed document, if any.
func (v *View) Active() (int64, bool) {
	return v.docID, v.hasDoc
}

// Conversation returns the displayed transcript.
func (v *View) Conversation() domain.Conversation {
	return v.conversation
}

// InFlight reports whether the displayed document awaits an answer.
func (v *View) InFlight() bool {
	return v.inFlight
}

// Input returns the chat input.
func (v *View) Input() *input.ChatInput {
	return v.input
}
