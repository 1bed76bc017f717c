// Command docchat chats with PDF documents held by a document
// question-answering backend.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docchat/internal/adapters/driven/backend"
	"github.com/custodia-labs/docchat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docchat/internal/adapters/driven/notify"
	"github.com/custodia-labs/docchat/internal/adapters/driven/pdf"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/services"
	"github.com/custodia-labs/docchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = ""

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(build)

	err := cli.Execute()
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

// build wires the adapters and services for one command run.
func build(opts cli.Options) (*cli.Services, func(), error) {
	configDir, err := file.DefaultConfigDir()
	if err != nil {
		return nil, nil, fmt.Errorf("locating config directory: %w", err)
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	overlay, err := file.LoadEnvOverlay(".env")
	if err != nil {
		return nil, nil, fmt.Errorf("reading .env: %w", err)
	}
	configStore.SetOverlay(overlay)

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}

	logFile := settings.Log.File
	if logFile == "" && opts.Interactive {
		logFile = filepath.Join(configDir, "docchat.log")
	}
	if logFile != "" {
		if err := logger.SetFile(logFile); err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
	}

	var (
		credentials driven.CredentialsStore
		taskStore   driven.SchedulerStore
		closers     []func() error
	)
	if opts.Ephemeral {
		credentials = memory.NewCredentialsStore()
		taskStore = memory.NewSchedulerStore()
	} else {
		store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening store: %w", err)
		}
		credentials = store.CredentialsStore()
		taskStore = store.SchedulerStore()
		closers = append(closers, store.Close)
	}
	release := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("closing store: %v", err)
			}
		}
	}

	authClient, err := backend.NewClient(backend.Config{
		BaseURL: settings.Backend.BaseURL,
		Timeout: settings.Backend.Timeout,
	})
	if err != nil {
		release()
		return nil, nil, err
	}
	authGate := services.NewAuthGate(authClient, credentials)

	client, err := backend.NewClient(backend.Config{
		BaseURL: settings.Backend.BaseURL,
		Timeout: settings.Backend.Timeout,
		Tokens:  authGate,
	})
	if err != nil {
		release()
		return nil, nil, err
	}

	dispatcher := notify.NewDispatcher(0)
	conversations := services.NewConversationStore()
	selection := services.NewSelectionCoordinator(conversations)
	registry := services.NewDocumentRegistry(client, selection, dispatcher)
	documents := services.NewDocumentService(client, registry, selection, pdf.NewInspector(), dispatcher)
	session := services.NewSessionController(services.SessionDeps{
		Store:         conversations,
		Selection:     selection,
		Registry:      registry,
		Chat:          client,
		Tokens:        authGate,
		Notifier:      dispatcher,
		HistoryWindow: settings.Chat.HistoryWindow,
	})
	scheduler := services.NewScheduler(settingsService.GetSchedulerConfig(), taskStore, registry)
	lifecycle := services.NewLifecycle(scheduler, selection, conversations, registry)

	if err := authGate.Restore(context.Background()); err != nil {
		logger.Warn("restoring credentials: %v", err)
	}

	logger.Debug("backend %s, history window %d", settings.Backend.BaseURL, settings.Chat.HistoryWindow)

	return &cli.Services{
		Auth:          authGate,
		Documents:     documents,
		Registry:      registry,
		Session:       session,
		Selection:     selection,
		Settings:      settingsService,
		Conversations: conversations,
		Notifications: dispatcher,
		Lifecycle:     lifecycle,
	}, release, nil
}
