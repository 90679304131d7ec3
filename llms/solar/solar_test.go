package solar_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/llms/solar"
	"github.com/h2non/gock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/llms"
)

const solarResponse = `{
	"id": "theid",
	"object": "chat.completion",
	"model": "solar-pro2",
	"choices": [
		{
			"index": 0,
			"finish_reason": "stop",
			"message": {
				"role": "assistant",
				"content": "Hello from Solar."
			}
		}
	],
	"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16},
	"created": 1752423600
}`

func newClient(t *testing.T) *upstage.Client {
	t.Helper()

	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)

	client, err := upstage.New(upstage.WithApiKey("apikey"), upstage.WithHttpClient(httpClient))
	require.Nil(t, err)

	return client
}

func TestChatGenerate(t *testing.T) {
	defer gock.Off()

	chat := solar.NewChat(newClient(t),
		solar.WithModel("solar-pro2"),
		solar.WithOptions(upstage.GenerateOptions{
			Temperature:     lo.ToPtr(0.7),
			MaxTokens:       lo.ToPtr(1000),
			ReasoningEffort: "high",
		}))

	gock.New("https://api.upstage.ai").
		Post("/v1/solar/chat/completions").
		MatchHeader("authorization", "Bearer apikey").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			body, _ := io.ReadAll(req.Body)

			assert.Equal(t, "solar-pro2", gjson.GetBytes(body, "model").String())
			assert.EqualValues(t, 2, gjson.GetBytes(body, "messages.#").Int())
			assert.Equal(t, "system", gjson.GetBytes(body, "messages.0.role").String())
			assert.Equal(t, "Be brief.", gjson.GetBytes(body, "messages.0.content").String())
			assert.Equal(t, "user", gjson.GetBytes(body, "messages.1.role").String())
			assert.Equal(t, "Hello", gjson.GetBytes(body, "messages.1.content").String())
			assert.Equal(t, 0.2, gjson.GetBytes(body, "temperature").Float())
			assert.EqualValues(t, 1000, gjson.GetBytes(body, "max_tokens").Int())
			assert.Equal(t, "high", gjson.GetBytes(body, "reasoning_effort").String())
			assert.False(t, gjson.GetBytes(body, "top_p").Exists())
			assert.False(t, gjson.GetBytes(body, "presence_penalty").Exists())

			return true, nil
		}).
		Reply(http.StatusOK).
		SetHeader("Content-Type", "application/json").
		BodyString(solarResponse)

	result, err := chat.Generate(t.Context(), []upstage.ChatMessage{
		{Role: upstage.RoleSystem, Content: "Be brief."},
		{Role: upstage.RoleUser, Content: "Hello"},
	}, upstage.GenerateOptions{Temperature: lo.ToPtr(0.2)})

	require.Nil(t, err)
	assert.True(t, gock.IsDone())
	assert.Equal(t, "Hello from Solar.", result.Content)
	assert.Equal(t, "solar-pro2", result.Model)
	assert.Equal(t, "stop", result.FinishReason)
	assert.EqualValues(t, 16, result.TotalTokens)
}

func TestChatDefaultModel(t *testing.T) {
	chat := solar.NewChat(newClient(t), solar.WithOptions(upstage.GenerateOptions{TopP: lo.ToPtr(0.9)}))

	assert.Equal(t, solar.DefaultChatModel, chat.Options().Model)
	assert.Equal(t, lo.ToPtr(0.9), chat.Options().TopP)
}

func TestChatApiError(t *testing.T) {
	defer gock.Off()

	chat := solar.NewChat(newClient(t))

	gock.New("https://api.upstage.ai").
		Post("/v1/solar/chat/completions").
		Times(1).
		Reply(http.StatusUnauthorized).
		JSON(map[string]any{"error": map[string]any{"message": "invalid api key", "code": "invalid_api_key"}})

	_, err := chat.Generate(t.Context(), []upstage.ChatMessage{{Role: upstage.RoleUser, Content: "Hello"}}, upstage.GenerateOptions{})

	assert.Equal(t, upstage.KindTransport, upstage.Kind(err))
	assert.ErrorContains(t, err, "Solar model failed to generate content")
	assert.True(t, gock.IsDone())
}

func TestChatUnsupportedRole(t *testing.T) {
	chat := solar.NewChat(newClient(t))

	_, err := chat.Generate(t.Context(), []upstage.ChatMessage{{Role: "tool", Content: "{}"}}, upstage.GenerateOptions{})

	assert.Equal(t, upstage.KindValidation, upstage.Kind(err))
}

func TestLangchainModel(t *testing.T) {
	defer gock.Off()

	model := solar.NewChat(newClient(t), solar.WithOptions(upstage.GenerateOptions{Temperature: lo.ToPtr(0.7)})).Langchain()

	gock.New("https://api.upstage.ai").
		Post("/v1/solar/chat/completions").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			body, _ := io.ReadAll(req.Body)

			assert.Equal(t, "solar-mini", gjson.GetBytes(body, "model").String())
			assert.Equal(t, 0.7, gjson.GetBytes(body, "temperature").Float())
			assert.EqualValues(t, 50, gjson.GetBytes(body, "max_tokens").Int())
			assert.Equal(t, "assistant", gjson.GetBytes(body, "messages.1.role").String())
			assert.Equal(t, "Hi!", gjson.GetBytes(body, "messages.1.content").String())

			return true, nil
		}).
		Reply(http.StatusOK).
		SetHeader("Content-Type", "application/json").
		BodyString(solarResponse)

	resp, err := model.GenerateContent(t.Context(), []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "Hello"),
		llms.TextParts(llms.ChatMessageTypeAI, "Hi!"),
		llms.TextParts(llms.ChatMessageTypeHuman, "How are you?"),
	}, llms.WithMaxTokens(50))

	require.Nil(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "Hello from Solar.", resp.Choices[0].Content)
	assert.Equal(t, 16, resp.Choices[0].GenerationInfo["TotalTokens"])
}

func TestLangchainCall(t *testing.T) {
	defer gock.Off()

	model := solar.NewChat(newClient(t)).Langchain()

	gock.New("https://api.upstage.ai").
		Post("/v1/solar/chat/completions").
		Reply(http.StatusOK).
		SetHeader("Content-Type", "application/json").
		BodyString(solarResponse)

	text, err := model.Call(t.Context(), "Hello")

	require.Nil(t, err)
	assert.Equal(t, "Hello from Solar.", text)
}

func TestLangchainToolRoleIsRejected(t *testing.T) {
	model := solar.NewChat(newClient(t)).Langchain()

	_, err := model.GenerateContent(t.Context(), []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeTool, "result"),
	})

	assert.Equal(t, upstage.KindValidation, upstage.Kind(err))
}
