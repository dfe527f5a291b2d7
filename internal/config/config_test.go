package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: debug
log_format: json
precision: float64
workers: 4
min_chunk: 128
server_address: 0.0.0.0:9090
read_timeout: 15s
max_body_bytes: 1048576
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "float64", cfg.Precision)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 4, *cfg.Workers)
	assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddress)
	require.NotNil(t, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, *cfg.ReadTimeout)
	require.NotNil(t, cfg.MaxBodyBytes)
	assert.Equal(t, int64(1<<20), *cfg.MaxBodyBytes)

	p := cfg.Parallel()
	assert.True(t, p.Enabled)
	assert.Equal(t, 4, p.NumWorkers)
	assert.Equal(t, 128, p.MinChunkSize)
}

func TestParse_Unset(t *testing.T) {
	cfg, err := Parse([]byte("log_level: warn\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Workers)
	assert.Nil(t, cfg.ReadTimeout)
	assert.Empty(t, cfg.Precision)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":     "workers: [",
		"precision":  "precision: float16",
		"log format": "log_format: xml",
		"workers":    "workers: -1",
		"min chunk":  "min_chunk: 0",
		"timeout":    "read_timeout: -1s",
		"body limit": "max_body_bytes: 0",
	}
	for name, doc := range tests {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestParallel_SingleWorker(t *testing.T) {
	one := 1
	p := Config{Workers: &one}.Parallel()
	assert.False(t, p.Enabled)
	assert.Equal(t, 1, p.NumWorkers)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: f32\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "f32", cfg.Precision)

	require.NoError(t, os.WriteFile(path, []byte("precision: int8\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
