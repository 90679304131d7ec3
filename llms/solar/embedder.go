package solar

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/checkmarble/upstage-nodes"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/embeddings"
)

const (
	DefaultEmbeddingModel = "embedding-query"

	// MaxEmbeddingTexts is the number of strings accepted in one request.
	MaxEmbeddingTexts = 100
	// MaxEmbeddingChars roughly matches the per-text token limit.
	MaxEmbeddingChars = 16000
)

var _ embeddings.Embedder = (*Embedder)(nil)

// Embedder computes Solar embeddings for langchaingo vector stores.
type Embedder struct {
	client *upstage.Client
	model  string
}

func NewEmbedder(client *upstage.Client, model string) *Embedder {
	return &Embedder{
		client: client,
		model:  lo.CoalesceOrEmpty(model, DefaultEmbeddingModel),
	}
}

func (e *Embedder) Model() string {
	return e.model
}

// EmbedDocuments returns one vector per non-blank text. Blank texts are
// dropped, so the result may be shorter than the input.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := e.embed(ctx, texts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate embeddings")
	}

	return vectors, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

type embedding struct {
	index  int64
	vector []float32
}

func (e *Embedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	logger := e.client.Logger()

	input := lo.FilterMap(texts, func(text string, _ int) (string, bool) {
		text = strings.TrimSpace(text)
		return text, text != ""
	})

	if len(input) == 0 {
		return nil, upstage.Validationf("no valid input texts provided for embedding")
	}

	for idx, text := range input {
		if len(text) > MaxEmbeddingChars {
			logger.Warn("text might exceed the embedding token limit", "index", idx, "length", len(text))
		}
	}

	if len(input) > MaxEmbeddingTexts {
		return nil, upstage.Validationf("too many texts: %d. Upstage API supports max %d strings per request", len(input), MaxEmbeddingTexts)
	}

	body := map[string]any{
		"model": e.model,
		"input": input,
	}
	if len(input) == 1 {
		body["input"] = input[0]
	}

	logger.Debug("requesting embeddings", "model", e.model, "count", len(input))

	req := upstage.NewRequest(http.MethodPost, "/embeddings").
		WithBearerToken(e.client.ApiKey()).
		WithJson(body)

	resp, err := e.client.Do(ctx, req)
	if err != nil {
		var terr *upstage.TransportError

		if errors.As(err, &terr) {
			logger.Error("embedding request was rejected", "status", terr.StatusCode, "body", terr.Body)
		}

		return nil, err
	}

	data := resp.Get("data")
	if !data.IsArray() {
		return nil, upstage.Shapef("invalid response format from Upstage API")
	}

	entries := lo.Map(data.Array(), func(entry gjson.Result, _ int) embedding {
		return embedding{
			index: entry.Get("index").Int(),
			vector: lo.Map(entry.Get("embedding").Array(), func(v gjson.Result, _ int) float32 {
				return float32(v.Float())
			}),
		}
	})

	slices.SortStableFunc(entries, func(a, b embedding) int {
		return int(a.index - b.index)
	})

	if len(entries) != len(input) {
		return nil, upstage.Shapef("expected %d embeddings, got %d", len(input), len(entries))
	}

	logger.Debug("received embeddings", "model", resp.Get("model").String(), "count", len(entries))

	return lo.Map(entries, func(entry embedding, _ int) []float32 {
		return entry.vector
	}), nil
}
