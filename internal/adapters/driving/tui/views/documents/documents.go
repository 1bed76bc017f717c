// Package documents provides the document sidebar for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// EmptyText is shown when the account has no documents.
const EmptyText = "You have no documents yet. Press u to upload."

// Mode is what the sidebar is currently asking of the user.
type Mode int

const (
	// ModeList is normal navigation.
	ModeList Mode = iota
	// ModeUpload shows the path prompt.
	ModeUpload
	// ModeConfirmDelete asks before deleting the highlighted document.
	ModeConfirmDelete
)

// View is the document list shown beside the chat pane.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	documents driving.DocumentService
	registry  driving.DocumentRegistry
	selection driving.SelectionCoordinator
	ctx       context.Context

	items        []domain.Document
	active       int64
	hasActive    bool
	selected     int
	scrollOffset int
	mode         Mode
	pathInput    textinput.Model
	pending      int64
	busy         bool

	width  int
	height int
}

// NewView creates a new sidebar.
func NewView(
	s *styles.Styles,
	documents driving.DocumentService,
	registry driving.DocumentRegistry,
	selection driving.SelectionCoordinator,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	path := textinput.New()
	path.Placeholder = "/path/to/file.pdf"
	path.CharLimit = 1024
	path.Width = 30

	v := &View{
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		documents: documents,
		registry:  registry,
		selection: selection,
		ctx:       context.Background(),
		pathInput: path,
	}
	v.Refresh()
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Refresh re-reads the document list and selection from the services.
func (v *View) Refresh() {
	if v.registry != nil {
		v.items = v.registry.Documents()
	}
	if v.selection != nil {
		v.active, v.hasActive = v.selection.Active()
	}
	if v.selected >= len(v.items) {
		v.selected = len(v.items) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	if v.mode == ModeConfirmDelete {
		if _, ok := domain.FindDocument(v.items, v.pending); !ok {
			v.mode = ModeList
		}
	}
	v.adjustScroll()
}

// Update handles messages for the sidebar.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch v.mode {
		case ModeUpload:
			return v.handleUploadKey(msg)
		case ModeConfirmDelete:
			return v.handleConfirmKey(msg)
		default:
			return v.handleKeyMsg(msg)
		}

	case messages.UploadCompleted:
		v.busy = false
		if msg.Err != nil && errors.Is(msg.Err, domain.ErrUnsupportedFile) {
			return v, notify(domain.NotifyWarn, "Only PDF files can be uploaded.")
		}
		v.Refresh()
		return v, nil

	case messages.DeleteCompleted:
		v.busy = false
		v.Refresh()
		return v, nil

	case messages.RefreshCompleted:
		if errors.Is(msg.Err, domain.ErrRateLimited) {
			return v, notify(domain.NotifyInfo, "Refreshed a moment ago. Try again shortly.")
		}
		v.Refresh()
		return v, nil

	case messages.StateChanged:
		v.Refresh()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(keyStr, v.keymap.Select):
		return v, v.selectHighlighted()
	case keymap.Matches(keyStr, v.keymap.NewChat):
		if v.selection != nil {
			v.selection.NewChat()
			v.Refresh()
		}
	case keymap.Matches(keyStr, v.keymap.Upload):
		v.mode = ModeUpload
		v.pathInput.Reset()
		return v, v.pathInput.Focus()
	case keymap.Matches(keyStr, v.keymap.Delete):
		if doc := v.SelectedDocument(); doc != nil && !v.busy {
			v.pending = doc.ID
			v.mode = ModeConfirmDelete
		}
	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, v.requestRefresh()
	}

	return v, nil
}

func (v *View) handleUploadKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeList
		v.pathInput.Blur()
		return v, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(v.pathInput.Value())
		v.mode = ModeList
		v.pathInput.Blur()
		if path == "" {
			return v, nil
		}
		return v, v.upload(path)
	}

	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = ModeList
	if keymap.Matches(msg.String(), v.keymap.Confirm) {
		return v, v.deleteDocument(v.pending)
	}
	return v, nil
}

// selectHighlighted makes the highlighted document the chat target.
func (v *View) selectHighlighted() tea.Cmd {
	doc := v.SelectedDocument()
	if doc == nil || v.selection == nil {
		return nil
	}
	if !doc.Selectable() {
		return notify(domain.NotifyWarn,
			fmt.Sprintf("%s is not ready for chat (%s).", doc.Filename, doc.Status.Description()))
	}
	if err := v.selection.Select(*doc); err != nil {
		return notify(domain.NotifyWarn, err.Error())
	}
	v.active, v.hasActive = doc.ID, true
	id := doc.ID
	return func() tea.Msg {
		return messages.DocumentSelected{DocumentID: id}
	}
}

// upload returns a command that uploads the file at path.
func (v *View) upload(path string) tea.Cmd {
	if v.documents == nil {
		return notify(domain.NotifyError, "document service not available")
	}
	v.busy = true
	ctx, svc := v.ctx, v.documents
	return func() tea.Msg {
		doc, err := svc.Upload(ctx, path)
		return messages.UploadCompleted{Path: path, Document: doc, Err: err}
	}
}

// deleteDocument returns a command that deletes the document.
func (v *View) deleteDocument(id int64) tea.Cmd {
	if v.documents == nil {
		return notify(domain.NotifyError, "document service not available")
	}
	v.busy = true
	ctx, svc := v.ctx, v.documents
	return func() tea.Msg {
		return messages.DeleteCompleted{DocumentID: id, Err: svc.Delete(ctx, id)}
	}
}

// requestRefresh returns a command that asks the registry for a throttled refresh.
func (v *View) requestRefresh() tea.Cmd {
	if v.registry == nil {
		return nil
	}
	ctx, reg := v.ctx, v.registry
	return func() tea.Msg {
		return messages.RefreshCompleted{Err: reg.RequestRefresh(ctx)}
	}
}

func notify(level domain.NotificationLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return messages.Notified{Notification: domain.Notification{Level: level, Message: text}}
	}
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of rows that fit.
func (v *View) visibleItemCount() int {
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the sidebar.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.items))))
	b.WriteString("\n\n")

	switch v.mode {
	case ModeUpload:
		b.WriteString(v.styles.Subtitle.Render("Upload a PDF"))
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.pathInput.View()))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] upload  [esc] cancel"))
		return b.String()
	case ModeConfirmDelete:
		name := fmt.Sprintf("document %d", v.pending)
		if doc, ok := domain.FindDocument(v.items, v.pending); ok {
			name = doc.Filename
		}
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %s?", name)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[y] delete  [any other key] cancel"))
		return b.String()
	}

	if len(v.items) == 0 {
		if v.registry != nil && !v.registry.Loaded() {
			b.WriteString(v.styles.Muted.Render("Loading documents..."))
		} else {
			b.WriteString(v.styles.Muted.Render(EmptyText))
		}
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.items) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDocument(i, v.items[i]))
		b.WriteString("\n")
	}

	if len(v.items) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.items)),
			len(v.items))))
	}

	return b.String()
}

// StatusIcon returns the glyph shown for a processing state.
func StatusIcon(status domain.DocumentStatus) string {
	switch status {
	case domain.StatusCompleted:
		return "▤"
	case domain.StatusFailed:
		return "✗"
	default:
		return "⋯"
	}
}

// renderDocument renders a single document row.
func (v *View) renderDocument(index int, doc domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	marker := " "
	if v.hasActive && v.active == doc.ID {
		marker = "*"
	}

	name := doc.Filename
	maxLen := v.width - 8
	if maxLen < 10 {
		maxLen = 10
	}
	if !doc.Selectable() {
		maxLen -= len(doc.Status.Description()) + 3
	}
	if maxLen > 3 && len(name) > maxLen {
		name = name[:maxLen-3] + "..."
	}

	line := fmt.Sprintf("%s%s%s %s", indicator, marker, StatusIcon(doc.Status), name)
	if !doc.Selectable() {
		line += fmt.Sprintf(" (%s)", doc.Status.Description())
	}

	switch {
	case index == v.selected:
		return v.styles.Selected.Render(line)
	case !doc.Selectable():
		return v.styles.Dimmed.Render(line)
	default:
		return v.styles.Normal.Render(line)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.pathInput.Width = max(10, width-6)
	v.adjustScroll()
}

// Documents returns the displayed documents.
func (v *View) Documents() []domain.Document {
	return v.items
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the highlighted document.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected >= 0 && v.selected < len(v.items) {
		doc := v.items[v.selected]
		return &doc
	}
	return nil
}

// Mode returns what the sidebar is prompting for.
func (v *View) Mode() Mode {
	return v.mode
}

// Capturing reports whether the sidebar is consuming all keys for a prompt.
func (v *View) Capturing() bool {
	return v.mode != ModeList
}
