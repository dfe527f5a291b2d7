package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/smoothl1/internal/lossio"
	"github.com/born-ml/smoothl1/internal/nn"
)

const request = `{
  "prediction": {"shape": [1, 2], "data": [1.5, -0.5]},
  "target":     {"shape": [1, 2], "data": [0, 0]}
}`

// run executes the CLI with args, feeding stdin and returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	argv := append([]string{"smoothl1", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	err := app.Run(context.Background(), argv)
	return stdout.String(), stderr.String(), err
}

func decodeResult(t *testing.T, out string) lossio.Result {
	t.Helper()
	var res lossio.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	return res
}

func TestEval_Stdin(t *testing.T) {
	out, _, err := run(t, request, "eval")
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.Equal(t, []lossio.Value{1.125}, res.Loss)
	assert.Equal(t, "float32", res.Precision)
}

func TestEval_FileArgumentAndOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "req.json")
	outPath := filepath.Join(dir, "res.json")
	require.NoError(t, os.WriteFile(in, []byte(request), 0o600))

	stdout, _, err := run(t, "", "eval", "--precision", "float64", "--workers", "1", "-o", outPath, in)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	res := decodeResult(t, string(data))
	assert.Equal(t, "float64", res.Precision)
	assert.Equal(t, lossio.Value(1.125), res.Total)
}

func TestEval_ParallelPretty(t *testing.T) {
	out, _, err := run(t, request, "eval", "--workers", "2", "--min-chunk", "1", "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"loss\": [")
	assert.Equal(t, []lossio.Value{1.125}, decodeResult(t, out).Loss)
}

func TestEval_Errors(t *testing.T) {
	_, _, err := run(t, `{"prediction":{"shape":[1,2],"data":[1,2]},"target":{"shape":[1,3],"data":[1,2,3]}}`, "eval")
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)

	_, _, err = run(t, request, "eval", "--precision", "half")
	assert.Error(t, err)

	_, _, err = run(t, request, "eval", "--workers", "-2")
	assert.Error(t, err)

	_, _, err = run(t, "", "eval", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConfigFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: float64\nlog_level: debug\nlog_format: json\n"), 0o600))

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(request)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	require.NoError(t, app.Run(context.Background(), []string{"smoothl1", "--config", path, "eval"}))

	assert.Equal(t, "float64", decodeResult(t, stdout.String()).Precision)
	assert.Contains(t, stderr.String(), `"msg":"config loaded"`)

	// Flags win over the file.
	stdout.Reset()
	app = newApp()
	app.Reader = strings.NewReader(request)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	require.NoError(t, app.Run(context.Background(), []string{"smoothl1", "--config", path, "eval", "-p", "float32"}))
	assert.Equal(t, "float32", decodeResult(t, stdout.String()).Precision)
}

func TestInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\n"), 0o600))

	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(context.Background(), []string{"smoothl1", "--config", path, "layers"})
	assert.Error(t, err)
}

func TestLayers(t *testing.T) {
	out, _, err := run(t, "", "layers")
	require.NoError(t, err)
	assert.Equal(t, "SmoothL1Loss\nSmoothL1Loss3\n", out)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version:")
}
