package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_ReportsAllMissing(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("STORE_BACKEND", "postgres")

	err := ValidateEnv()

	require.Error(t, err)
	for _, key := range append(RequiredEnvVars, PostgresEnvVars...) {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidateEnv_MemoryBackendNeedsNoDatabase(t *testing.T) {
	clearEnvVars(t)
	setMinimalEnv(t)

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearEnvVars(t)
	setMinimalEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestWarnings(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")

	warnings := Warnings()

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "API_KEY")
}
