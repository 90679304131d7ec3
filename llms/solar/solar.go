package solar

import (
	"context"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
	"github.com/cockroachdb/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/samber/lo"
)

const (
	DefaultChatModel = "solar-mini"
)

// Chat is a Solar chat model served through Upstage's OpenAI-compatible
// endpoint.
type Chat struct {
	client  openai.Client
	baseUrl string
	options upstage.GenerateOptions
}

// NewChat creates a Solar chat model using the credentials, base URL and HTTP
// client of an Upstage client.
func NewChat(client *upstage.Client, opts ...opt) *Chat {
	chat := Chat{
		baseUrl: client.BaseUrl() + "/solar/",
		options: upstage.GenerateOptions{
			Model: DefaultChatModel,
		},
	}

	for _, opt := range opts {
		opt(&chat)
	}

	chat.client = openai.NewClient(
		option.WithAPIKey(client.ApiKey()),
		option.WithBaseURL(chat.baseUrl),
		option.WithHTTPClient(client.HttpClient()),
		option.WithMaxRetries(0),
	)

	return &chat
}

func (c *Chat) Options() upstage.GenerateOptions {
	return c.options
}

// Generate sends the conversation in a single chat completion request. Options
// set in opts take precedence over the ones the model was configured with.
func (c *Chat) Generate(ctx context.Context, messages []upstage.ChatMessage, opts upstage.GenerateOptions) (*upstage.ChatResult, error) {
	cfg := mergeOptions(c.options, opts)

	contents := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case upstage.RoleSystem:
			contents = append(contents, openai.SystemMessage(msg.Content))
		case upstage.RoleUser:
			contents = append(contents, openai.UserMessage(msg.Content))
		case upstage.RoleAssistant:
			contents = append(contents, openai.AssistantMessage(msg.Content))
		default:
			return nil, upstage.Validationf("unsupported message role %q", msg.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:            cfg.Model,
		Messages:         contents,
		Temperature:      internal.MaybeFloat(cfg.Temperature),
		MaxTokens:        internal.MaybeInt(cfg.MaxTokens),
		TopP:             internal.MaybeFloat(cfg.TopP),
		FrequencyPenalty: internal.MaybeFloat(cfg.FrequencyPenalty),
		PresencePenalty:  internal.MaybeFloat(cfg.PresencePenalty),
	}

	if cfg.ReasoningEffort != "" {
		params.ReasoningEffort = shared.ReasoningEffort(cfg.ReasoningEffort)
	}

	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error

		if errors.As(err, &apiErr) {
			return nil, errors.Mark(errors.Wrap(&upstage.TransportError{
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Message,
			}, "Solar model failed to generate content"), upstage.ErrTransport)
		}

		return nil, errors.Mark(errors.Wrap(err, "Solar model failed to generate content"), upstage.ErrTransport)
	}

	if len(response.Choices) == 0 {
		return nil, upstage.Shapef("Solar model returned no choices")
	}

	return &upstage.ChatResult{
		Model:            response.Model,
		Content:          response.Choices[0].Message.Content,
		FinishReason:     response.Choices[0].FinishReason,
		PromptTokens:     response.Usage.PromptTokens,
		CompletionTokens: response.Usage.CompletionTokens,
		TotalTokens:      response.Usage.TotalTokens,
	}, nil
}

func mergeOptions(base, override upstage.GenerateOptions) upstage.GenerateOptions {
	return upstage.GenerateOptions{
		Model:            lo.CoalesceOrEmpty(override.Model, base.Model),
		Temperature:      lo.CoalesceOrEmpty(override.Temperature, base.Temperature),
		MaxTokens:        lo.CoalesceOrEmpty(override.MaxTokens, base.MaxTokens),
		TopP:             lo.CoalesceOrEmpty(override.TopP, base.TopP),
		FrequencyPenalty: lo.CoalesceOrEmpty(override.FrequencyPenalty, base.FrequencyPenalty),
		PresencePenalty:  lo.CoalesceOrEmpty(override.PresencePenalty, base.PresencePenalty),
		ReasoningEffort:  lo.CoalesceOrEmpty(override.ReasoningEffort, base.ReasoningEffort),
	}
}
