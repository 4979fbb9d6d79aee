package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"project_id": "moni-demo",
		"engine_id": "moni-engine",
		"data_store_id": "moni-docs",
		"http_timeout_seconds": 45,
		"gemini": {"model": "gemini-1.5-pro", "api_key_env": "MONI_GEMINI_KEY"}
	}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "moni-demo", config.ProjectID)
	assert.Equal(t, "moni-engine", config.EngineID)
	assert.Equal(t, "moni-docs", config.DataStoreID)
	assert.Equal(t, 45*time.Second, config.HTTPTimeout())
	assert.Equal(t, "gemini-1.5-pro", config.Gemini.Model)
	assert.Equal(t, "MONI_GEMINI_KEY", config.Gemini.APIKeyEnv)

	// Defaults fill everything the file omits.
	assert.Equal(t, "global", config.Location)
	assert.Equal(t, "default_collection", config.Collection)
	assert.Equal(t, "default_branch", config.Branch)
	assert.Equal(t, "text-embedding-004", config.Gemini.EmbeddingModel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.json")
	require.Error(t, err)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{"project_id": `)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "global", config.Location)
	assert.Equal(t, "default_collection", config.Collection)
	assert.Equal(t, "default_branch", config.Branch)
	assert.Equal(t, 30*time.Second, config.HTTPTimeout())
	assert.Equal(t, "gemini-pro", config.Gemini.Model)
	assert.Equal(t, "GEMINI_API_KEY", config.Gemini.APIKeyEnv)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing project id",
			config:  Config{EngineID: "engine"},
			wantErr: "project_id",
		},
		{
			name:    "missing engine id",
			config:  Config{ProjectID: "project"},
			wantErr: "engine_id",
		},
		{
			name:   "valid",
			config: Config{ProjectID: "project", EngineID: "engine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGeminiAPIKey(t *testing.T) {
	config := DefaultConfig()
	config.Gemini.APIKeyEnv = "MONI_TEST_GEMINI_KEY"

	_, err := config.GeminiAPIKey()
	require.Error(t, err)

	t.Setenv("MONI_TEST_GEMINI_KEY", "secret")
	key, err := config.GeminiAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment
GEMINI_API_KEY=secret
QUOTED="with spaces"
invalid line
=nokey
`), 0o644))

	vars, err := LoadEnvFile(path)
	require.NoError(t, err)

	require.Len(t, vars, 2)
	assert.Equal(t, EnvVar{Key: "GEMINI_API_KEY", Value: "secret"}, vars[0])
	assert.Equal(t, EnvVar{Key: "QUOTED", Value: "with spaces"}, vars[1])
}

func TestApplyEnvVars(t *testing.T) {
	t.Setenv("MONI_TEST_APPLY", "")

	applied := ApplyEnvVars([]EnvVar{{Key: "MONI_TEST_APPLY", Value: "set"}})

	assert.Equal(t, []string{"MONI_TEST_APPLY"}, applied)
	assert.Equal(t, "set", os.Getenv("MONI_TEST_APPLY"))
}
