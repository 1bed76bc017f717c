package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects output to a buffer for the duration of the test.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug verbose", true, func() { Debug("polling %s", "documents") }, "[DEBUG] polling documents\n"},
		{"info verbose", true, func() { Info("uploaded %d", 3) }, "[INFO] uploaded 3\n"},
		{"warn verbose", true, func() { Warn("refresh skipped") }, "[WARN] refresh skipped\n"},
		{"error verbose", true, func() { Error("chat: %v", "timeout") }, "[ERROR] chat: timeout\n"},
		{"debug quiet", false, func() { Debug("hidden") }, ""},
		{"info quiet", false, func() { Info("hidden") }, ""},
		{"warn quiet", false, func() { Warn("hidden") }, ""},
		{"error quiet", false, func() { Error("upload failed: %v", "boom") }, "[ERROR] upload failed: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)
	Section("Session")
	assert.Equal(t, "\n=== Session ===\n", buf.String())

	buf.Reset()
	SetVerbose(false)
	Section("Session")
	assert.Empty(t, buf.String())
}

func TestConcurrentUse(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			Debug("worker %d", i)
			_ = IsVerbose()
		}()
	}
	wg.Wait()
}

func TestSetFile(t *testing.T) {
	capture(t, true)
	path := filepath.Join(t.TempDir(), "docchat.log")

	require.NoError(t, SetFile(path))
	Info("written to file")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] written to file")
}

func TestSetFile_EmptyPath(t *testing.T) {
	assert.Error(t, SetFile(""))
}

func TestClose_WithoutFile(t *testing.T) {
	capture(t, false)
	assert.NoError(t, Close())
}
