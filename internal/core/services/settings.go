package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBackendURL     = "backend.base_url"
	KeyBackendTimeout = "backend.timeout_seconds"
	KeyPollInterval   = "polling.interval_seconds"
	KeyHistoryWindow  = "chat.history_window"
	KeyWatchDir       = "upload.watch_dir"
	KeyLogFile        = "log.file"
	keySchedulerOn    = "scheduler.enabled"
)

var intKeys = map[string]bool{
	KeyBackendTimeout: true,
	KeyPollInterval:   true,
	KeyHistoryWindow:  true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{KeyBackendURL, KeyBackendTimeout, KeyPollInterval, KeyHistoryWindow, KeyWatchDir, KeyLogFile}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			BaseURL: strings.TrimRight(s.getString(KeyBackendURL, defaults.Backend.BaseURL), "/"),
			Timeout: s.getSeconds(KeyBackendTimeout, defaults.Backend.Timeout),
		},
		Polling: domain.PollingSettings{
			Interval: s.getSeconds(KeyPollInterval, defaults.Polling.Interval),
		},
		Chat: domain.ChatSettings{
			HistoryWindow: s.getInt(KeyHistoryWindow, defaults.Chat.HistoryWindow),
		},
		Upload: domain.UploadSettings{
			WatchDir: s.configStore.GetString(KeyWatchDir),
		},
		Log: domain.LogSettings{
			File: s.configStore.GetString(KeyLogFile),
		},
	}

	return settings, nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	if !s.known(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if intKeys[key] {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		if err := s.configStore.Set(key, n); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}

	if key == KeyBackendURL && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetSchedulerConfig returns the scheduler configuration derived from the
// polling settings.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	settings, err := s.Get()
	if err != nil {
		return domain.DefaultSchedulerConfig()
	}
	cfg := settings.SchedulerConfig()

	if _, exists := s.configStore.Get(keySchedulerOn); exists {
		cfg.Enabled = s.configStore.GetBool(keySchedulerOn)
	}
	return cfg
}

func (s *SettingsService) known(key string) bool {
	for _, k := range s.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}
