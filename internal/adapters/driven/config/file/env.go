package file

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// EnvKeys maps environment variables to the config keys they override.
var EnvKeys = map[string]string{
	"DOCCHAT_BACKEND_URL":     "backend.base_url",
	"DOCCHAT_TIMEOUT_SECONDS": "backend.timeout_seconds",
	"DOCCHAT_POLL_SECONDS":    "polling.interval_seconds",
	"DOCCHAT_HISTORY_WINDOW":  "chat.history_window",
	"DOCCHAT_WATCH_DIR":       "upload.watch_dir",
	"DOCCHAT_LOG_FILE":        "log.file",
}

// LoadEnvOverlay builds config overrides from envFile (if it exists) and
// the process environment. Process variables win over the file. Empty
// values are ignored.
func LoadEnvOverlay(envFile string) (map[string]string, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	overlay := make(map[string]string)
	for env, key := range EnvKeys {
		if val, ok := os.LookupEnv(env); ok && val != "" {
			overlay[key] = val
			continue
		}
		if val := fileVars[env]; val != "" {
			overlay[key] = val
		}
	}
	return overlay, nil
}
