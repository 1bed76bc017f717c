package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docchat.

The document list sits on the left and the conversation on the right.

Controls:
  tab       - Switch between the list and the chat
  ↑/k, ↓/j  - Move through documents
  enter     - Select a document / send a message
  n         - New chat
  u         - Upload a PDF
  d         - Delete a document
  r         - Refresh the list
  ctrl+l    - Log out
  ctrl+c    - Quit`,
	Args: cobra.NoArgs,
}

func init() {
	tuiCmd.RunE = runTUI
	rootCmd.AddCommand(tuiCmd)
}

func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Auth:          authGate,
		Documents:     documentService,
		Registry:      documentRegistry,
		Session:       sessionController,
		Selection:     selection,
		Conversations: conversationFeed,
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("terminal UI crashed")
		}
	}()

	ports := tuiPorts()
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := cmd.Context()
	app.WithContext(ctx)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	tui.Connect(ports, p.Send)
	if notifications != nil {
		notifications.SetHandler(func(n domain.Notification) {
			go p.Send(messages.Notified{Notification: n})
		})
		defer notifications.SetHandler(nil)
	}
	if lifecycle != nil {
		lifecycle.Bind(ctx, authGate)
		defer lifecycle.Stop()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
