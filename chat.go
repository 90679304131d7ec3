package upstage

import (
	"context"
)

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is one turn of a conversation sent to a chat model.
type ChatMessage struct {
	Role    MessageRole `json:"role" mapstructure:"role" validate:"oneof=system user assistant"`
	Content string      `json:"content" mapstructure:"content"`
}

// GenerateOptions are the sampling settings of a single generation. Unset
// pointers are not sent.
type GenerateOptions struct {
	Model            string
	Temperature      *float64
	MaxTokens        *int
	TopP             *float64
	FrequencyPenalty *float64
	PresencePenalty  *float64
	ReasoningEffort  string
}

type ChatResult struct {
	Model            string
	Content          string
	FinishReason     string
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// ChatModel is the capability supplied to agent-style consumers.
type ChatModel interface {
	Generate(ctx context.Context, messages []ChatMessage, opts GenerateOptions) (*ChatResult, error)
}
