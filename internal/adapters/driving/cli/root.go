// Package cli implements the docchat command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	ephemeral bool
)

// NotificationSink routes service notifications to the active surface.
type NotificationSink interface {
	SetHandler(h func(domain.Notification))
}

// Lifecycle runs background polling while a credential is held.
type Lifecycle interface {
	Bind(ctx context.Context, auth driving.AuthGate)
	Stop()
}

// Services holds the driving ports the commands use.
type Services struct {
	Auth          driving.AuthGate
	Documents     driving.DocumentService
	Registry      driving.DocumentRegistry
	Session       driving.SessionController
	Selection     driving.SelectionCoordinator
	Settings      driving.SettingsService
	Conversations tui.ConversationFeed
	Notifications NotificationSink
	Lifecycle     Lifecycle
}

// Options describes how the services should be built.
type Options struct {
	// Ephemeral keeps every store in memory.
	Ephemeral bool

	// Interactive is set when the terminal UI owns the screen, so logs
	// must go to a file.
	Interactive bool
}

// Bootstrap builds the services. The returned func releases them.
type Bootstrap func(opts Options) (*Services, func(), error)

// Services used by the commands. Populated by SetServices.
var (
	authGate          driving.AuthGate
	documentService   driving.DocumentService
	documentRegistry  driving.DocumentRegistry
	sessionController driving.SessionController
	selection         driving.SelectionCoordinator
	settingsService   driving.SettingsService
	conversationFeed  tui.ConversationFeed
	notifications     NotificationSink
	lifecycle         Lifecycle
)

var (
	bootstrap Bootstrap
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your PDF documents",
	Long: `docchat uploads PDF documents to a document question-answering backend
and lets you hold a separate conversation with each of them.

Run without a command to open the interactive terminal UI.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.RunE = runTUI
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep credentials and state in memory only")
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	authGate = s.Auth
	documentService = s.Documents
	documentRegistry = s.Registry
	sessionController = s.Session
	selection = s.Selection
	settingsService = s.Settings
	conversationFeed = s.Conversations
	notifications = s.Notifications
	lifecycle = s.Lifecycle
}

// SetBootstrap registers the function that builds the services once flags
// have been parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	defer release()
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cleanup != nil || cmd == versionCmd {
		return nil
	}

	svc, done, err := bootstrap(Options{
		Ephemeral:   ephemeral,
		Interactive: cmd == rootCmd || cmd == tuiCmd,
	})
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	SetServices(svc)
	cleanup = done
	if cleanup == nil {
		cleanup = func() {}
	}
	return nil
}

func release() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// requireAuth returns a readable error when no usable credential is held.
func requireAuth() error {
	if authGate == nil {
		return errors.New("auth service not configured")
	}
	if !authGate.Authenticated() {
		return errors.New("not logged in: run 'docchat login' first")
	}
	return nil
}
