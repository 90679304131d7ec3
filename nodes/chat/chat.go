package chat

import (
	"context"
	"net/http"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
)

const (
	Name = "lmChatUpstage"
	Path = "/solar/chat/completions"
)

// Node sends one Solar chat completion per item.
type Node struct {
	client *upstage.Client
}

func New(client *upstage.Client) *Node {
	return &Node{client: client}
}

func (n *Node) Execute(ctx context.Context, fns upstage.ExecuteFunctions) ([]upstage.Output, error) {
	return upstage.Execute(ctx, fns, func(ctx context.Context, idx int, _ upstage.Item) (upstage.Output, error) {
		params, err := upstage.ReadParams(fns, idx, defaultParams())
		if err != nil {
			return upstage.Output{}, err
		}

		body, err := params.body()
		if err != nil {
			return upstage.Output{}, err
		}

		resp, err := n.client.Do(ctx, upstage.NewRequest(http.MethodPost, Path).WithJson(body))
		if err != nil {
			return upstage.Output{}, err
		}

		// Streamed responses are not consumed incrementally.
		if params.streaming() {
			return upstage.Output{JSON: resp.Object()}, nil
		}

		return upstage.Output{
			JSON: map[string]any{
				"content":       resp.Content(),
				"usage":         resp.ValueOf("usage"),
				"model":         resp.ValueOf("model"),
				"created":       resp.ValueOf("created"),
				"full_response": resp.Object(),
			},
		}, nil
	})
}

func (n *Node) Description() upstage.Description {
	return upstage.Description{
		Name:        Name,
		DisplayName: "Upstage Solar LLM",
		Description: "Chat completions with Upstage Solar models",
		Group:       []string{"transform"},
		Version:     1,
		Inputs:      []string{upstage.ConnectionMain},
		Outputs:     []string{upstage.ConnectionMain},
		Credentials: []string{upstage.CredentialName},
		Schema:      internal.GenerateSchema[Params](),
		Properties: []upstage.Property{
			{
				DisplayName: "Model",
				Name:        "model",
				Type:        "options",
				Default:     "solar-mini",
				Options: []upstage.PropertyOption{
					{Name: "solar-mini", Value: "solar-mini", Description: "Fast and efficient model for basic tasks"},
					{Name: "solar-pro", Value: "solar-pro", Description: "Powerful model for complex tasks"},
					{Name: "solar-pro2", Value: "solar-pro2", Description: "Latest and most advanced Solar model"},
				},
			},
			{
				DisplayName: "Messages",
				Name:        "messages",
				Type:        "fixedCollection",
				Default:     map[string]any{},
				Description: "Conversation sent to the model, each message having a role of system, user or assistant",
			},
			{
				DisplayName: "Options",
				Name:        "options",
				Type:        "collection",
				Default:     map[string]any{},
				Description: "temperature, max_tokens, top_p, stream, reasoning_effort, frequency_penalty, presence_penalty, response_format and json_schema",
			},
		},
	}
}
