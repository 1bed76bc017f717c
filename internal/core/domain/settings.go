package domain

import "time"

// Default setting values.
const (
	DefaultBackendURL     = "http://localhost:8000/api/v1"
	DefaultRequestTimeout = 60 * time.Second
)

// AppSettings holds user-configurable settings.
type AppSettings struct {
	Backend BackendSettings
	Polling PollingSettings
	Chat    ChatSettings
	Upload  UploadSettings
	Log     LogSettings
}

// BackendSettings configures the HTTP backend.
type BackendSettings struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api/v1.
	BaseURL string

	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout time.Duration
}

// PollingSettings configures document list refresh.
type PollingSettings struct {
	// Interval is the time between refreshes while logged in.
	Interval time.Duration
}

// ChatSettings configures conversations.
type ChatSettings struct {
	// HistoryWindow is the number of trailing messages searched for history.
	HistoryWindow int
}

// UploadSettings configures uploads.
type UploadSettings struct {
	// WatchDir is the default folder for the watch command.
	WatchDir string
}

// LogSettings configures logging.
type LogSettings struct {
	// File is where logs go when the terminal UI owns the screen.
	File string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			BaseURL: DefaultBackendURL,
			Timeout: DefaultRequestTimeout,
		},
		Polling: PollingSettings{
			Interval: DefaultPollInterval,
		},
		Chat: ChatSettings{
			HistoryWindow: DefaultHistoryWindow,
		},
	}
}

// Validate checks that settings are usable.
func (s *AppSettings) Validate() error {
	if s.Backend.BaseURL == "" {
		return ErrInvalidInput
	}
	if s.Polling.Interval <= 0 || s.Chat.HistoryWindow <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// SchedulerConfig derives the scheduler configuration from settings.
func (s *AppSettings) SchedulerConfig() SchedulerConfig {
	cfg := DefaultSchedulerConfig()
	cfg.TaskConfigs[TaskIDDocumentRefresh] = TaskConfig{
		Enabled:    true,
		Interval:   s.Polling.Interval,
		RunOnStart: true,
	}
	return cfg
}
