package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backoffice_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromPath_Valid(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
requestTimeoutSeconds: 10
sessionFile: /tmp/session.yaml
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "/tmp/session.yaml", cfg.SessionFile)
}

func TestLoadFromPath_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, `requestTimeoutSeconds: 10`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidURL(t *testing.T) {
	path := writeConfig(t, `apiBaseURL: "not a url"`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestRequestTimeout_Default(t *testing.T) {
	cfg := &Config{APIBaseURL: "https://api.example.com"}
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestLoadFromPath_NotYAML(t *testing.T) {
	path := writeConfig(t, `{{{`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}
