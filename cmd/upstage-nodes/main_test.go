package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/checkmarble/upstage-nodes"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRunCommand(t *testing.T) {
	defer gock.Off()

	gock.New("https://api.upstage.ai").
		Post("/v1/embeddings").
		MatchHeader("authorization", "Bearer apikey").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"model": "embedding-query",
			"data":  []any{map[string]any{"index": 0, "embedding": []float64{0.5, 0.25}}},
			"usage": map[string]any{"total_tokens": 1},
		})

	dir := t.TempDir()
	input := filepath.Join(dir, "items.jsonl")
	params := filepath.Join(dir, "params.json")
	output := filepath.Join(dir, "out.jsonl")

	require.Nil(t, os.WriteFile(input, []byte(`{"json": {"text": "hello"}}`+"\n"), 0o600))
	require.Nil(t, os.WriteFile(params, []byte(`{"inputType": "single", "text": "hello"}`), 0o600))

	err := command().Run(t.Context(), []string{
		"upstage-nodes", "--api-key", "apikey",
		"run", "--node", "embeddingsUpstage", "--params", params, "--input", input, "--output", output,
	})

	require.Nil(t, err)
	assert.True(t, gock.IsDone())

	out, err := os.ReadFile(output)

	require.Nil(t, err)
	assert.Equal(t, 0.5, gjson.GetBytes(out, "json.embedding.0").Float())
	assert.EqualValues(t, 0, gjson.GetBytes(out, "pairedItem.item").Int())
}

func TestRunCommandContinueOnFail(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "items.jsonl")
	output := filepath.Join(dir, "out.jsonl")

	require.Nil(t, os.WriteFile(input, []byte(`{"json": {}}`+"\n"), 0o600))

	err := command().Run(t.Context(), []string{
		"upstage-nodes", "--api-key", "apikey",
		"run", "--node", "embeddingsUpstage", "--input", input, "--output", output, "--continue-on-fail",
	})

	require.Nil(t, err)

	out, err := os.ReadFile(output)

	require.Nil(t, err)
	assert.True(t, gjson.GetBytes(out, "json.error").Exists())
}

func TestRunUnknownNode(t *testing.T) {
	err := command().Run(t.Context(), []string{"upstage-nodes", "--api-key", "apikey", "run", "--node", "nope"})

	assert.ErrorContains(t, err, `no executable node named "nope"`)
}

func TestMissingApiKey(t *testing.T) {
	t.Setenv("UPSTAGE_API_KEY", "")

	err := command().Run(t.Context(), []string{"upstage-nodes", "check"})

	assert.Equal(t, upstage.KindValidation, upstage.Kind(err))
}

func TestCheckCommand(t *testing.T) {
	defer gock.Off()

	gock.New("https://api.upstage.ai").
		Get("/v1/models").
		Reply(http.StatusUnauthorized).
		JSON(map[string]any{"error": map[string]any{"message": "invalid key"}})

	err := command().Run(t.Context(), []string{"upstage-nodes", "--api-key", "bad", "check"})

	assert.ErrorContains(t, err, "could not verify Upstage credentials")
	assert.Equal(t, upstage.KindTransport, upstage.Kind(err))
}

func TestInvalidLogLevel(t *testing.T) {
	err := command().Run(t.Context(), []string{"upstage-nodes", "--api-key", "apikey", "--log-level", "loud", "check"})

	assert.ErrorContains(t, err, "invalid log level")
}

func TestReadParams(t *testing.T) {
	params, err := readParams("")

	assert.Nil(t, err)
	assert.Empty(t, params)

	path := filepath.Join(t.TempDir(), "params.json")
	require.Nil(t, os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o600))

	_, err = readParams(path)

	assert.True(t, strings.Contains(err.Error(), "parameters file must hold a JSON object"))
}
