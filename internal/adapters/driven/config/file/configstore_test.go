package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), s.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("backend.base_url", "http://localhost:8000"))
	require.NoError(t, s.Set("chat.history_window", 4))
	require.NoError(t, s.Set("scheduler.enabled", true))

	assert.Equal(t, "http://localhost:8000", s.GetString("backend.base_url"))
	assert.Equal(t, 4, s.GetInt("chat.history_window"))
	assert.True(t, s.GetBool("scheduler.enabled"))

	_, ok := s.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, s.GetString("missing"))
	assert.Zero(t, s.GetInt("missing"))
	assert.False(t, s.GetBool("missing"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("backend.base_url", "http://example.test"))
	require.NoError(t, s.Set("backend.timeout_seconds", 15))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[backend]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", reloaded.GetString("backend.base_url"))
	assert.Equal(t, 15, reloaded.GetInt("backend.timeout_seconds"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("log.file", "/tmp/docchat.log"))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_LoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_Overlay(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("backend.base_url", "http://file.test"))

	s.SetOverlay(map[string]string{
		"backend.base_url":         "http://env.test",
		"polling.interval_seconds": "45",
		"scheduler.enabled":        "true",
	})

	assert.Equal(t, "http://env.test", s.GetString("backend.base_url"))
	assert.Equal(t, 45, s.GetInt("polling.interval_seconds"))
	assert.True(t, s.GetBool("scheduler.enabled"))
	assert.True(t, s.Overridden("backend.base_url"))
	assert.False(t, s.Overridden("chat.history_window"))

	require.NoError(t, s.Save())
	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "env.test", "overlay must not be persisted")
}

func TestConfigStore_Keys(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("b.key", "1"))
	require.NoError(t, s.Set("a.key", "2"))
	s.SetOverlay(map[string]string{"c.key": "3", "a.key": "4"})

	assert.Equal(t, []string{"a.key", "b.key", "c.key"}, s.Keys())
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a.b":   1,
		"a.c":   2,
		"d":     3,
		"d.e":   4,
		"f.g.h": 5,
	})

	assert.Equal(t, map[string]any{"b": 1, "c": 2}, nested["a"])
	assert.Equal(t, 3, nested["d"])
	assert.Equal(t, map[string]any{"g": map[string]any{"h": 5}}, nested["f"])
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"backend": map[string]any{"base_url": "x", "timeout_seconds": int64(10)},
		"top":     true,
	}, "")

	assert.Equal(t, map[string]any{
		"backend.base_url":        "x",
		"backend.timeout_seconds": int64(10),
		"top":                     true,
	}, flat)
}
