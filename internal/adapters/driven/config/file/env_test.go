package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearDocchatEnv(t *testing.T) {
	t.Helper()
	for env := range EnvKeys {
		t.Setenv(env, "")
	}
}

func TestLoadEnvOverlay_ProcessEnvironment(t *testing.T) {
	clearDocchatEnv(t)
	t.Setenv("DOCCHAT_BACKEND_URL", "http://env.test")
	t.Setenv("DOCCHAT_HISTORY_WINDOW", "4")

	overlay, err := LoadEnvOverlay("")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"backend.base_url":    "http://env.test",
		"chat.history_window": "4",
	}, overlay)
}

func TestLoadEnvOverlay_DotEnvFile(t *testing.T) {
	clearDocchatEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "DOCCHAT_BACKEND_URL=http://file.test\nDOCCHAT_POLL_SECONDS=60\nUNRELATED=1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("DOCCHAT_BACKEND_URL", "http://env.test")

	overlay, err := LoadEnvOverlay(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env.test", overlay["backend.base_url"], "process env wins")
	assert.Equal(t, "60", overlay["polling.interval_seconds"])
	assert.Len(t, overlay, 2)
}

func TestLoadEnvOverlay_MissingFile(t *testing.T) {
	clearDocchatEnv(t)

	overlay, err := LoadEnvOverlay(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Empty(t, overlay)
}
