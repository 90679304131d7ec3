package chat

import (
	"github.com/checkmarble/upstage-nodes"
	"github.com/fatih/structs"
)

const (
	FormatText       = "text"
	FormatJsonObject = "json_object"
	FormatJsonSchema = "json_schema"
)

type Params struct {
	Model    string   `mapstructure:"model" validate:"required" jsonschema:"required,enum=solar-mini,enum=solar-pro,enum=solar-pro2,default=solar-mini"`
	Messages Messages `mapstructure:"messages"`
	Options  Options  `mapstructure:"options"`
}

type Messages struct {
	Message []upstage.ChatMessage `mapstructure:"message" validate:"dive"`
}

// Options are spread into the request body as-is, except for the response
// format which is translated into its API shape.
type Options struct {
	Temperature      *float64 `mapstructure:"temperature" structs:"temperature,omitempty" validate:"omitempty,gte=0,lte=2" jsonschema:"minimum=0,maximum=2"`
	MaxTokens        *int     `mapstructure:"max_tokens" structs:"max_tokens,omitempty" validate:"omitempty,gte=1,lte=4000" jsonschema:"minimum=1,maximum=4000"`
	TopP             *float64 `mapstructure:"top_p" structs:"top_p,omitempty" validate:"omitempty,gte=0,lte=1" jsonschema:"minimum=0,maximum=1"`
	Stream           *bool    `mapstructure:"stream" structs:"stream,omitempty"`
	ReasoningEffort  *string  `mapstructure:"reasoning_effort" structs:"reasoning_effort,omitempty" validate:"omitempty,oneof=low high" jsonschema:"enum=low,enum=high"`
	FrequencyPenalty *float64 `mapstructure:"frequency_penalty" structs:"frequency_penalty,omitempty" validate:"omitempty,gte=-2,lte=2" jsonschema:"minimum=-2,maximum=2"`
	PresencePenalty  *float64 `mapstructure:"presence_penalty" structs:"presence_penalty,omitempty" validate:"omitempty,gte=-2,lte=2" jsonschema:"minimum=-2,maximum=2"`
	ResponseFormat   string   `mapstructure:"response_format" structs:"-" validate:"omitempty,oneof=text json_object json_schema" jsonschema:"enum=text,enum=json_object,enum=json_schema"`
	JsonSchema       any      `mapstructure:"json_schema" structs:"-"`
}

func defaultParams() Params {
	return Params{
		Model: "solar-mini",
	}
}

func (p Params) streaming() bool {
	return p.Options.Stream != nil && *p.Options.Stream
}

func (p Params) body() (map[string]any, error) {
	body := structs.Map(p.Options)

	body["model"] = p.Model
	body["messages"] = p.messages()

	switch p.Options.ResponseFormat {
	case FormatJsonObject:
		body["response_format"] = map[string]any{"type": FormatJsonObject}

	case FormatJsonSchema:
		schema, err := upstage.ParseSchema(p.Options.JsonSchema)
		if err != nil {
			return nil, err
		}

		body["response_format"] = map[string]any{
			"type":        FormatJsonSchema,
			"json_schema": schema,
		}
	}

	return body, nil
}

func (p Params) messages() []map[string]any {
	messages := make([]map[string]any, len(p.Messages.Message))
	for idx, msg := range p.Messages.Message {
		messages[idx] = map[string]any{"role": msg.Role, "content": msg.Content}
	}

	return messages
}
