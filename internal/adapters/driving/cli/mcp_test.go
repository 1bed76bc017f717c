package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresLogin(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.auth.authenticated = false

	_, err := execute("", "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}
