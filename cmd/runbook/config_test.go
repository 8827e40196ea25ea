package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_Merge(t *testing.T) {
	t.Setenv("DOCS_TOKEN", "from-file-env")
	path := writeFile(t, "runbook.yaml", `
base_url: https://docs.example.com
api_token: ${DOCS_TOKEN}
timeout: 45s
headers:
  X-Team: ops
`)

	cfg := &Config{BaseURL: "https://env.example.com", APIToken: "env"}
	require.NoError(t, cfg.merge(path))

	assert.Equal(t, "https://docs.example.com", cfg.BaseURL)
	assert.Equal(t, "from-file-env", cfg.APIToken)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, map[string]string{"X-Team": "ops"}, cfg.Headers)
}

func TestConfig_MergeKeepsUnsetValues(t *testing.T) {
	path := writeFile(t, "runbook.yaml", "timeout: 5s\n")

	cfg := &Config{BaseURL: "https://env.example.com", APIToken: "env"}
	require.NoError(t, cfg.merge(path))

	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "env", cfg.APIToken)
}

func TestConfig_MergeErrors(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.merge(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, cfg.merge(writeFile(t, "bad.yaml", "base_url: [")))
	assert.NoError(t, cfg.merge(""))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(envBaseURL, "")
	os.Unsetenv(envBaseURL)
	t.Setenv(envAPIToken, "already-set")

	path := writeFile(t, ".env", envBaseURL+"=https://dotenv.example.com\n"+envAPIToken+"=from-dotenv\n")
	require.NoError(t, loadEnv(path))

	cfg := configFromEnv()
	assert.Equal(t, "https://dotenv.example.com", cfg.BaseURL)
	assert.Equal(t, "already-set", cfg.APIToken, "existing variables win over the dotenv file")

	assert.NoError(t, loadEnv(filepath.Join(t.TempDir(), "absent.env")))
}
