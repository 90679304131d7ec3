package chatmodel_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal/host"
	"github.com/checkmarble/upstage-nodes/nodes/chatmodel"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/llms"
)

func newNode(t *testing.T) *chatmodel.Node {
	t.Helper()

	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)

	client, err := upstage.New(upstage.WithApiKey("apikey"), upstage.WithHttpClient(httpClient))
	require.Nil(t, err)

	return chatmodel.New(client)
}

func TestSupplyChatModel(t *testing.T) {
	defer gock.Off()

	node := newNode(t)

	gock.New("https://api.upstage.ai").
		Post("/v1/solar/chat/completions").
		MatchHeader("authorization", "Bearer apikey").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			body, _ := io.ReadAll(req.Body)

			assert.Equal(t, "solar-pro2", gjson.GetBytes(body, "model").String())
			assert.Equal(t, 0.4, gjson.GetBytes(body, "temperature").Float())
			assert.EqualValues(t, 500, gjson.GetBytes(body, "max_tokens").Int())
			assert.Equal(t, "high", gjson.GetBytes(body, "reasoning_effort").String())
			assert.Equal(t, 0.5, gjson.GetBytes(body, "presence_penalty").Float())
			assert.False(t, gjson.GetBytes(body, "top_p").Exists())

			return true, nil
		}).
		Reply(http.StatusOK).
		JSON(map[string]any{
			"model":   "solar-pro2",
			"choices": []any{map[string]any{"finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": "42"}}},
		})

	fns := host.NewMemory(map[string]any{
		"model": "solar-pro2",
		"options": map[string]any{
			"temperature":     0.4,
			"maxTokens":       500,
			"reasoningEffort": "high",
			"presencePenalty": 0.5,
		},
	})

	supplied, err := node.SupplyData(t.Context(), fns, 0)

	require.Nil(t, err)

	model, ok := supplied.(llms.Model)

	require.True(t, ok)

	text, err := llms.GenerateFromSinglePrompt(t.Context(), model, "What is the answer?")

	assert.Nil(t, err)
	assert.Equal(t, "42", text)
	assert.True(t, gock.IsDone())
}

func TestSupplyChatModelDefaults(t *testing.T) {
	defer gock.Off()

	node := newNode(t)

	gock.New("https://api.upstage.ai").
		Post("/v1/solar/chat/completions").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			body, _ := io.ReadAll(req.Body)

			assert.Equal(t, "solar-mini", gjson.GetBytes(body, "model").String())
			assert.False(t, gjson.GetBytes(body, "temperature").Exists())

			return true, nil
		}).
		Reply(http.StatusOK).
		JSON(map[string]any{"choices": []any{map[string]any{"message": map[string]any{"content": "ok"}}}})

	model, err := node.Model(host.NewMemory(map[string]any{}), 0)

	require.Nil(t, err)

	text, err := model.Call(t.Context(), "ping")

	assert.Nil(t, err)
	assert.Equal(t, "ok", text)
}

func TestSupplyChatModelInvalidOptions(t *testing.T) {
	node := newNode(t)

	_, err := node.SupplyData(t.Context(), host.NewMemory(map[string]any{"options": map[string]any{"reasoningEffort": "medium"}}), 0)

	assert.ErrorContains(t, err, `parameter "options.reasoningEffort" must be one of [low high]`)
}
