package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Pane identifies which half of the main view has keyboard focus.
type Pane int

const (
	PaneSidebar Pane = iota
	PaneChat
)

const minSidebarWidth = 24

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	loginView *login.View
	sidebar   *documents.View
	chatView  *chat.View
	statusBar *status.Bar

	currentView messages.ViewType
	focus       Pane

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// An authenticated session starts on the main view.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		loginView: login.NewView(s, ports.Auth),
		sidebar:   documents.NewView(s, ports.Documents, ports.Registry, ports.Selection),
		chatView:  chat.NewView(s, ports.Session, ports.Selection, ports.Registry),
		statusBar: status.NewBar(s, km),
	}

	if ports.Auth.Authenticated() {
		a.enterMain()
	} else {
		a.currentView = messages.ViewLogin
		a.statusBar.SetMode(status.ModeLogin)
	}
	return a, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.sidebar.WithContext(ctx)
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("docchat"),
		a.loginView.Init(),
	}
	if a.currentView == messages.ViewMain {
		cmds = append(cmds, a.refreshDocuments())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewLogin {
			a.loginView, cmd = a.loginView.Update(msg)
			return a, cmd
		}
		return a.handleMainKey(msg)

	case messages.AuthCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil || msg.Register {
			return a, cmd
		}
		a.enterMain()
		return a, tea.Batch(cmd, a.refreshDocuments())

	case messages.LoggedOut:
		a.enterLogin()
		if msg.Err != nil {
			a.statusBar.SetNotification(domain.Notification{Level: domain.NotifyWarn, Message: msg.Err.Error()})
		}
		return a, nil

	case messages.StateChanged:
		if a.currentView == messages.ViewMain && !a.ports.Auth.Authenticated() {
			a.enterLogin()
			return a, nil
		}
		return a, a.refreshPanes(msg)

	case messages.Notified:
		a.statusBar.SetNotification(msg.Notification)
		return a, nil

	case messages.DocumentSelected:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, tea.Batch(cmd, a.setFocus(PaneChat))

	case messages.AnswerReceived, spinner.TickMsg:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.UploadCompleted, messages.RefreshCompleted:
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd

	case messages.DeleteCompleted:
		return a, a.refreshPanes(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keyStr := msg.String()

	if keymap.Matches(keyStr, a.keymap.Logout) {
		return a, a.logout()
	}

	if a.focus == PaneSidebar {
		if !a.sidebar.Capturing() && keymap.Matches(keyStr, a.keymap.SwitchFocus) {
			return a, a.setFocus(PaneChat)
		}
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}

	if keymap.Matches(keyStr, a.keymap.SwitchFocus) {
		return a, a.setFocus(PaneSidebar)
	}
	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// refreshPanes forwards msg to both panes of the main view.
func (a *App) refreshPanes(msg tea.Msg) tea.Cmd {
	var sideCmd, chatCmd tea.Cmd
	a.sidebar, sideCmd = a.sidebar.Update(msg)
	a.chatView, chatCmd = a.chatView.Update(messages.StateChanged{})
	return tea.Batch(sideCmd, chatCmd)
}

func (a *App) setFocus(p Pane) tea.Cmd {
	a.focus = p
	if p == PaneChat {
		a.statusBar.SetMode(status.ModeChat)
		return a.chatView.Focus()
	}
	a.chatView.Blur()
	a.statusBar.SetMode(status.ModeSidebar)
	return nil
}

func (a *App) enterMain() {
	a.currentView = messages.ViewMain
	a.focus = PaneSidebar
	a.chatView.Blur()
	a.statusBar.SetMode(status.ModeSidebar)
	a.statusBar.Clear()
	if creds := a.ports.Auth.Credentials(); creds != nil {
		a.statusBar.SetUser(creds.Email)
	}
	a.sidebar.Refresh()
	a.chatView.Refresh()
}

func (a *App) enterLogin() {
	email := a.loginView.Email()
	a.currentView = messages.ViewLogin
	a.loginView.Reset()
	a.loginView.SetEmail(email)
	a.chatView.Blur()
	a.statusBar.SetUser("")
	a.statusBar.SetMode(status.ModeLogin)
}

// refreshDocuments returns a command that fetches the document list.
func (a *App) refreshDocuments() tea.Cmd {
	ctx, reg := a.ctx, a.ports.Registry
	return func() tea.Msg {
		return messages.RefreshCompleted{Err: reg.Refresh(ctx)}
	}
}

// logout returns a command that clears the credential.
func (a *App) logout() tea.Cmd {
	ctx, auth := a.ctx, a.ports.Auth
	return func() tea.Msg {
		return messages.LoggedOut{Err: auth.Logout(ctx)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	if a.currentView == messages.ViewLogin {
		body = lipgloss.NewStyle().
			Width(a.width).
			Height(a.height - 1).
			Padding(1, 2).
			Render(a.loginView.View())
	} else {
		body = a.viewMain()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

func (a *App) viewMain() string {
	sideWidth, chatWidth, paneHeight := a.layout()

	sideStyle, chatStyle := a.styles.Border, a.styles.FocusedBorder
	if a.focus == PaneSidebar {
		sideStyle, chatStyle = a.styles.FocusedBorder, a.styles.Border
	}

	side := sideStyle.Width(sideWidth).Height(paneHeight).Render(a.sidebar.View())
	pane := chatStyle.Width(chatWidth).Height(paneHeight).Render(a.chatView.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, pane)
}

// layout splits the screen into the two panes. Borders take two cells in
// each direction and the status bar one line.
func (a *App) layout() (sideWidth, chatWidth, paneHeight int) {
	sideWidth = max(minSidebarWidth, a.width/3)
	chatWidth = max(20, a.width-sideWidth-4)
	paneHeight = max(5, a.height-3)
	return sideWidth, chatWidth, paneHeight
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	sideWidth, chatWidth, paneHeight := a.layout()
	a.loginView.SetDimensions(width, height-1)
	a.sidebar.SetDimensions(sideWidth, paneHeight)
	a.chatView.SetDimensions(chatWidth, paneHeight)
	a.statusBar.SetWidth(width)
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Focus returns the pane with keyboard focus.
func (a *App) Focus() Pane {
	return a.focus
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}
