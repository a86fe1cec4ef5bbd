package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	data := `{
		"platform_endpoint": "https://stage.kinotv.mn",
		"project_id": "kinotv-stage",
		"metrics_collection_id": "metrics_v2",
		"payment_create_function_id": "pay-create-v2",
		"poll_interval": "7s",
		"request_timeout": 30000000000
	}`
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	os.Args = []string{"cmd", "-c", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseJson(cfg) })

	assert.Equal(t, "https://stage.kinotv.mn", cfg.PlatformEndpoint)
	assert.Equal(t, "kinotv-stage", cfg.ProjectID)
	assert.Equal(t, "metrics_v2", cfg.MetricsCollectionID)
	assert.Equal(t, "pay-create-v2", cfg.PaymentCreateFunctionID)
	assert.Equal(t, 7*time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)

	// Fields absent from the JSON keep their defaults.
	assert.Equal(t, "movies", cfg.MoviesCollectionID)
	assert.Equal(t, "kinotv.db", cfg.LocalDBPath)
}

func TestParseJson_NoFileFlag(t *testing.T) {
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseJson(cfg) })

	assert.Equal(t, "https://platform.kinotv.mn", cfg.PlatformEndpoint)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	os.Args = []string{"cmd", "-c", filepath.Join(t.TempDir(), "missing.json")}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(cfg) })
}
