package solar

import (
	"context"
	"strings"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
	"github.com/tmc/langchaingo/llms"
)

var _ llms.Model = (*LangchainModel)(nil)

// LangchainModel exposes a chat model to langchaingo consumers such as agents
// and chains.
type LangchainModel struct {
	chat upstage.ChatModel
}

func NewLangchainModel(chat upstage.ChatModel) *LangchainModel {
	return &LangchainModel{chat: chat}
}

// Langchain returns the langchaingo view of the chat model.
func (c *Chat) Langchain() *LangchainModel {
	return NewLangchainModel(c)
}

func (m *LangchainModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// GenerateContent only forwards the text parts of each message. Non-zero call
// options override the ones the model was configured with.
func (m *LangchainModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	callOpts := llms.CallOptions{}
	for _, opt := range options {
		opt(&callOpts)
	}

	msgs := make([]upstage.ChatMessage, 0, len(messages))

	for _, msg := range messages {
		role, err := messageRole(msg.Role)
		if err != nil {
			return nil, err
		}

		var content strings.Builder

		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				content.WriteString(text.Text)
			}
		}

		msgs = append(msgs, upstage.ChatMessage{Role: role, Content: content.String()})
	}

	result, err := m.chat.Generate(ctx, msgs, upstage.GenerateOptions{
		Model:            callOpts.Model,
		Temperature:      internal.NonZero(callOpts.Temperature),
		MaxTokens:        internal.NonZero(callOpts.MaxTokens),
		TopP:             internal.NonZero(callOpts.TopP),
		FrequencyPenalty: internal.NonZero(callOpts.FrequencyPenalty),
		PresencePenalty:  internal.NonZero(callOpts.PresencePenalty),
	})
	if err != nil {
		return nil, err
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content:    result.Content,
				StopReason: result.FinishReason,
				GenerationInfo: map[string]any{
					"Model":            result.Model,
					"PromptTokens":     int(result.PromptTokens),
					"CompletionTokens": int(result.CompletionTokens),
					"TotalTokens":      int(result.TotalTokens),
				},
			},
		},
	}, nil
}

func messageRole(role llms.ChatMessageType) (upstage.MessageRole, error) {
	switch role {
	case llms.ChatMessageTypeSystem:
		return upstage.RoleSystem, nil
	case llms.ChatMessageTypeHuman, llms.ChatMessageTypeGeneric:
		return upstage.RoleUser, nil
	case llms.ChatMessageTypeAI:
		return upstage.RoleAssistant, nil
	default:
		return "", upstage.Validationf("unsupported message role %q", role)
	}
}
