package embeddingsmodel_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal/host"
	"github.com/checkmarble/upstage-nodes/nodes/embeddingsmodel"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/embeddings"
)

func newNode(t *testing.T) *embeddingsmodel.Node {
	t.Helper()

	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)

	client, err := upstage.New(upstage.WithApiKey("apikey"), upstage.WithHttpClient(httpClient))
	require.Nil(t, err)

	return embeddingsmodel.New(client)
}

func TestSupplyEmbedder(t *testing.T) {
	defer gock.Off()

	node := newNode(t)

	gock.New("https://api.upstage.ai").
		Post("/v1/embeddings").
		MatchHeader("authorization", "Bearer apikey").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			body, _ := io.ReadAll(req.Body)

			assert.Equal(t, "embedding-passage", gjson.GetBytes(body, "model").String())
			assert.EqualValues(t, 2, gjson.GetBytes(body, "input.#").Int())

			return true, nil
		}).
		Reply(http.StatusOK).
		JSON(map[string]any{"data": []any{
			map[string]any{"index": 0, "embedding": []float64{1}},
			map[string]any{"index": 1, "embedding": []float64{2}},
		}})

	supplied, err := node.SupplyData(t.Context(), host.NewMemory(map[string]any{"model": "embedding-passage"}), 0)

	require.Nil(t, err)

	embedder, ok := supplied.(embeddings.Embedder)

	require.True(t, ok)

	vectors, err := embedder.EmbedDocuments(t.Context(), []string{"a", "b"})

	assert.Nil(t, err)
	assert.Equal(t, [][]float32{{1}, {2}}, vectors)
}

func TestSupplyEmbedderDefaultModel(t *testing.T) {
	embedder, err := newNode(t).Embedder(host.NewMemory(nil), 0)

	assert.Nil(t, err)
	assert.Equal(t, "embedding-query", embedder.Model())
}

func TestSupplyEmbedderInvalidModel(t *testing.T) {
	_, err := newNode(t).Embedder(host.NewMemory(map[string]any{"model": "embedding-large"}), 0)

	assert.Equal(t, upstage.KindValidation, upstage.Kind(err))
}
