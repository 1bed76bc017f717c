package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docchat", rootCmd.Use)
}

func TestRootCmd_HasCommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"login", "register", "logout", "whoami", "document", "chat", "ask", "watch", "tui", "mcp", "settings", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("ephemeral"))
}

func TestSetServices_Nil(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	SetServices(nil)

	assert.Nil(t, authGate)
	assert.Nil(t, documentService)
}

func TestBootstrap_RunsOnceWithOptions(t *testing.T) {
	svc, cleanupServices := setupTestServices()
	defer cleanupServices()
	defer func() { ephemeral = false }()

	var calls []Options
	released := false
	SetBootstrap(func(opts Options) (*Services, func(), error) {
		calls = append(calls, opts)
		return &Services{Auth: svc.auth, Settings: svc.settings}, func() { released = true }, nil
	})
	defer SetBootstrap(nil)

	_, err := execute("", "--ephemeral", "whoami")
	require.NoError(t, err)
	_, err = execute("", "whoami")
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.True(t, calls[0].Ephemeral)
	assert.False(t, calls[0].Interactive)

	release()
	assert.True(t, released)
}

func TestBootstrap_Error(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	SetBootstrap(func(Options) (*Services, func(), error) {
		return nil, nil, errors.New("db locked")
	})
	defer SetBootstrap(nil)

	_, err := execute("", "whoami")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}

func TestBootstrap_SkippedForVersion(t *testing.T) {
	called := false
	SetBootstrap(func(Options) (*Services, func(), error) {
		called = true
		return &Services{}, nil, nil
	})
	defer SetBootstrap(nil)

	_, err := execute("", "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestRequireAuth(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, requireAuth())

	svc.auth.authenticated = false
	assert.ErrorContains(t, requireAuth(), "not logged in")

	SetServices(nil)
	assert.ErrorContains(t, requireAuth(), "auth service not configured")
}
