// Package login provides the login and registration form for the TUI.
package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

type field int

const (
	fieldEmail field = iota
	fieldPassword
)

// View is the login form. ctrl+r switches it into registration mode.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	auth   driving.AuthGate
	ctx    context.Context

	email    textinput.Model
	password textinput.Model
	focus    field

	register   bool
	submitting bool
	info       string
	err        error

	width  int
	height int
}

// NewView creates a new login view.
func NewView(s *styles.Styles, auth driving.AuthGate) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		auth:     auth,
		ctx:      context.Background(),
		email:    email,
		password: password,
	}
}

// WithContext sets the context used for auth calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AuthCompleted:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			v.info = ""
			return v, nil
		}
		v.err = nil
		v.password.Reset()
		if msg.Register {
			v.register = false
			v.info = "Account created. Log in to continue."
			v.focusField(fieldPassword)
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.SwitchFocus), keyStr == "up", keyStr == "down":
		if v.focus == fieldEmail {
			v.focusField(fieldPassword)
		} else {
			v.focusField(fieldEmail)
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ToggleRegister):
		v.register = !v.register
		v.err = nil
		v.info = ""
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Select):
		if v.focus == fieldEmail && v.password.Value() == "" {
			v.focusField(fieldPassword)
			return v, nil
		}
		return v, v.submit()
	}

	var cmd tea.Cmd
	if v.focus == fieldEmail {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *View) focusField(f field) {
	v.focus = f
	if f == fieldEmail {
		v.password.Blur()
		v.email.Focus()
		return
	}
	v.email.Blur()
	v.password.Focus()
}

// submit returns a command that logs in or registers.
func (v *View) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	if email == "" || password == "" {
		v.err = errors.New("email and password are required")
		return nil
	}
	if v.auth == nil {
		v.err = errors.New("auth service not available")
		return nil
	}

	v.submitting = true
	v.err = nil
	register := v.register
	ctx := v.ctx
	auth := v.auth
	return func() tea.Msg {
		var err error
		if register {
			err = auth.Register(ctx, email, password)
		} else {
			err = auth.Login(ctx, email, password)
		}
		return messages.AuthCompleted{Register: register, Email: email, Err: err}
	}
}

// View renders the login form.
func (v *View) View() string {
	var b strings.Builder

	title := "Log in to docchat"
	if v.register {
		title = "Create a docchat account"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(v.label("Email", fieldEmail))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.email.View()))
	b.WriteString("\n\n")
	b.WriteString(v.label("Password", fieldPassword))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.password.View()))
	b.WriteString("\n\n")

	switch {
	case v.submitting:
		b.WriteString(v.styles.Muted.Render("Please wait..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errorText(v.err)))
	case v.info != "":
		b.WriteString(v.styles.Success.Render(v.info))
	}
	b.WriteString("\n\n")

	if v.register {
		b.WriteString(v.styles.Help.Render("[enter] register  [tab] next field  [ctrl+r] back to login"))
	} else {
		b.WriteString(v.styles.Help.Render("[enter] log in  [tab] next field  [ctrl+r] register"))
	}

	return b.String()
}

func (v *View) label(text string, f field) string {
	if v.focus == f {
		return v.styles.Selected.Render(text)
	}
	return v.styles.Normal.Render(text)
}

// errorText maps auth failures to short form messages.
func errorText(err error) string {
	var msg interface{ Message() string }
	switch {
	case errors.Is(err, domain.ErrAuthInvalid):
		return "Invalid email or password."
	case errors.As(err, &msg):
		return msg.Message()
	default:
		return err.Error()
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Reset clears the form and returns it to login mode.
func (v *View) Reset() {
	v.email.Reset()
	v.password.Reset()
	v.register = false
	v.submitting = false
	v.info = ""
	v.err = nil
	v.focusField(fieldEmail)
}

// SetEmail prefills the email field.
func (v *View) SetEmail(email string) {
	v.email.SetValue(email)
}

// Email returns the email field value.
func (v *View) Email() string {
	return v.email.Value()
}

// Registering reports whether the form is in registration mode.
func (v *View) Registering() bool {
	return v.register
}

// Submitting reports whether a request is pending.
func (v *View) Submitting() bool {
	return v.submitting
}

// Info returns the informational line, if any.
func (v *View) Info() string {
	return v.info
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
