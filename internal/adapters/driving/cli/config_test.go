package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSetAndGet(t *testing.T) {
	settings := &mockSettings{}
	cleanup := setupServices(Services{Settings: settings})
	defer cleanup()

	stdout, _, err := execute("config", "set", "parent_page_id", "page-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set parent_page_id.")
	assert.Equal(t, "page-1", settings.values["parent_page_id"])

	stdout, _, err = execute("config", "get", "parent_page_id")
	require.NoError(t, err)
	assert.Contains(t, stdout, "page-1")
}

func TestConfigGet_MasksAPIKey(t *testing.T) {
	settings := &mockSettings{values: map[string]string{"api_key": "secret_abcdef1234"}}
	cleanup := setupServices(Services{Settings: settings})
	defer cleanup()

	stdout, _, err := execute("config", "get", "api_key")

	require.NoError(t, err)
	assert.Contains(t, stdout, "****1234")
	assert.NotContains(t, stdout, "secret_abcdef")
}

func TestConfigGet_NotSet(t *testing.T) {
	cleanup := setupServices(Services{Settings: &mockSettings{}})
	defer cleanup()

	_, _, err := execute("config", "get", "burst")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "burst is not set")
}

func TestConfigSet_Error(t *testing.T) {
	cleanup := setupServices(Services{Settings: &mockSettings{}})
	defer cleanup()

	_, _, err := execute("config", "set", "bad", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set bad")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", maskSecret("abc"))
	assert.Equal(t, "****wxyz", maskSecret("secret_wxyz"))
}

func TestSchemaCmd(t *testing.T) {
	cleanup := setupServices(Services{Settings: &mockSettings{}})
	defer cleanup()

	stdout, _, err := execute("schema")

	require.NoError(t, err)
	assert.Contains(t, stdout, "parent_page_id")
	assert.Contains(t, stdout, "required")
	assert.Contains(t, stdout, "default: 1")
}

func TestSchemaCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupServices(Services{})
	defer cleanup()

	_, _, err := execute("schema")

	assert.Error(t, err)
}
