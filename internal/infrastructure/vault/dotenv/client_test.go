package dotenv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antles/FinalCS340/internal/core/vault"
	"github.com/Antles/FinalCS340/internal/infrastructure/vault/dotenv"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDotEnvVault_GetSecretWithoutPrefix(t *testing.T) {
	path := writeEnvFile(t, "test-secret=secret-value\n")
	client, err := dotenv.NewClient(path)
	require.NoError(t, err)

	value, err := client.GetSecret(context.Background(), "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, "secret-value", value)
}

func TestDotEnvVault_GetSecretFromEnv(t *testing.T) {
	t.Setenv("TEST_ENV_SECRET", "env-secret-value")

	client, err := dotenv.NewClient()
	require.NoError(t, err)

	value, err := client.GetSecret(context.Background(), "dotenv://TEST_ENV_SECRET")
	assert.NoError(t, err)
	assert.Equal(t, "env-secret-value", value)
}

func TestDotEnvVault_GetSecretFromFile(t *testing.T) {
	t.Setenv("MONGODB_PASSWORD", "from-env")
	path := writeEnvFile(t, "MONGODB_PASSWORD=from-file\nOTHER=1\n")

	client, err := dotenv.NewClient(path)
	require.NoError(t, err)

	value, err := client.GetSecret(context.Background(), "dotenv://MONGODB_PASSWORD")
	assert.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestDotEnvVault_EmptyFileValueFallsBackToEnv(t *testing.T) {
	t.Setenv("MONGODB_PASSWORD", "from-env")
	path := writeEnvFile(t, "MONGODB_PASSWORD=\n")

	client, err := dotenv.NewClient(path)
	require.NoError(t, err)

	value, err := client.GetSecret(context.Background(), "dotenv://MONGODB_PASSWORD")
	assert.NoError(t, err)
	assert.Equal(t, "from-env", value)
}

func TestDotEnvVault_MissingFile(t *testing.T) {
	client, err := dotenv.NewClient(filepath.Join(t.TempDir(), "missing.env"))

	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestDotEnvVault_GetSecretNotFound(t *testing.T) {
	client, err := dotenv.NewClient()
	require.NoError(t, err)

	value, err := client.GetSecret(context.Background(), "dotenv://non-existent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, vault.ErrSecretNotFound)
	assert.Empty(t, value)
	assert.Contains(t, err.Error(), "secret not found")
}

func TestDotEnvVault_PingAndClose(t *testing.T) {
	client, err := dotenv.NewClient()
	require.NoError(t, err)

	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestDotEnvVault_ImplementsInterface(t *testing.T) {
	var _ vault.Client = (*dotenv.Client)(nil)
}
