package chatmodel

import (
	"context"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
	"github.com/checkmarble/upstage-nodes/llms/solar"
)

const (
	Name = "lmChatModelUpstage"
)

type Params struct {
	Model   string  `mapstructure:"model" validate:"required" jsonschema:"enum=solar-mini,enum=solar-pro,enum=solar-pro2,default=solar-mini"`
	Options Options `mapstructure:"options"`
}

type Options struct {
	Temperature      *float64 `mapstructure:"temperature" validate:"omitempty,gte=0,lte=2" jsonschema:"minimum=0,maximum=2,default=0.7"`
	MaxTokens        *int     `mapstructure:"maxTokens" validate:"omitempty,gte=1,lte=4000" jsonschema:"minimum=1,maximum=4000,default=1000"`
	TopP             *float64 `mapstructure:"topP" validate:"omitempty,gte=0,lte=1" jsonschema:"minimum=0,maximum=1,default=0.9"`
	ReasoningEffort  string   `mapstructure:"reasoningEffort" validate:"omitempty,oneof=low high" jsonschema:"enum=low,enum=high,default=low"`
	FrequencyPenalty *float64 `mapstructure:"frequencyPenalty" validate:"omitempty,gte=-2,lte=2" jsonschema:"minimum=-2,maximum=2,default=0"`
	PresencePenalty  *float64 `mapstructure:"presencePenalty" validate:"omitempty,gte=-2,lte=2" jsonschema:"minimum=-2,maximum=2,default=0"`
}

func (o Options) generateOptions(model string) upstage.GenerateOptions {
	return upstage.GenerateOptions{
		Model:            model,
		Temperature:      o.Temperature,
		MaxTokens:        o.MaxTokens,
		TopP:             o.TopP,
		ReasoningEffort:  o.ReasoningEffort,
		FrequencyPenalty: o.FrequencyPenalty,
		PresencePenalty:  o.PresencePenalty,
	}
}

// Node supplies a Solar chat model to agent nodes.
type Node struct {
	client *upstage.Client
}

func New(client *upstage.Client) *Node {
	return &Node{client: client}
}

// SupplyData returns a langchaingo llms.Model configured from the item
// parameters.
func (n *Node) SupplyData(_ context.Context, fns upstage.SupplyFunctions, itemIndex int) (any, error) {
	model, err := n.Model(fns, itemIndex)
	if err != nil {
		return nil, err
	}

	return model, nil
}

func (n *Node) Model(fns upstage.SupplyFunctions, itemIndex int) (*solar.LangchainModel, error) {
	params, err := upstage.ReadParams(fns, itemIndex, Params{Model: solar.DefaultChatModel})
	if err != nil {
		return nil, err
	}

	chat := solar.NewChat(n.client, solar.WithOptions(params.Options.generateOptions(params.Model)))

	return chat.Langchain(), nil
}

func (n *Node) Description() upstage.Description {
	return upstage.Description{
		Name:        Name,
		DisplayName: "Upstage Solar Chat Model",
		Description: "Language Model for AI Agent - Upstage Solar LLM",
		Group:       []string{"transform"},
		Version:     1,
		Inputs:      []string{},
		Outputs:     []string{upstage.ConnectionLanguageModel},
		Credentials: []string{upstage.CredentialName},
		Schema:      internal.GenerateSchema[Params](),
		Properties: []upstage.Property{
			{
				DisplayName: "Model",
				Name:        "model",
				Type:        "options",
				Default:     solar.DefaultChatModel,
				Options: []upstage.PropertyOption{
					{Name: "Solar Mini", Value: "solar-mini", Description: "Fast and efficient model for basic tasks"},
					{Name: "Solar Pro", Value: "solar-pro", Description: "Powerful model for complex tasks"},
					{Name: "Solar Pro 2", Value: "solar-pro2", Description: "Latest and most advanced Solar model"},
				},
			},
			{
				DisplayName: "Options",
				Name:        "options",
				Type:        "collection",
				Default:     map[string]any{},
				Description: "temperature, maxTokens, topP, reasoningEffort, frequencyPenalty and presencePenalty",
			},
		},
	}
}
