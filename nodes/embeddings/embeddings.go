package embeddings

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	Name = "embeddingsUpstage"
	Path = "/embeddings"

	InputSingle = "single"
	InputArray  = "array"
)

type Params struct {
	Model     string `mapstructure:"model" validate:"required" jsonschema:"required,enum=embedding-query,enum=embedding-passage,default=embedding-query"`
	InputType string `mapstructure:"inputType" validate:"oneof=single array" jsonschema:"enum=single,enum=array,default=single"`
	Text      string `mapstructure:"text" jsonschema_description:"Text to embed"`
	Texts     string `mapstructure:"texts" jsonschema_description:"Texts to embed, one per line"`
	TextField string `mapstructure:"textField" jsonschema_description:"Item field holding the text, takes precedence over text"`
}

func defaultParams() Params {
	return Params{
		Model:     "embedding-query",
		InputType: InputSingle,
	}
}

// Node computes embeddings for a single text or a newline-separated list of
// texts per item.
type Node struct {
	client *upstage.Client
}

func New(client *upstage.Client) *Node {
	return &Node{client: client}
}

func (n *Node) Execute(ctx context.Context, fns upstage.ExecuteFunctions) ([]upstage.Output, error) {
	return upstage.Execute(ctx, fns, func(ctx context.Context, idx int, item upstage.Item) (upstage.Output, error) {
		params, err := upstage.ReadParams(fns, idx, defaultParams())
		if err != nil {
			return upstage.Output{}, err
		}

		switch params.InputType {
		case InputArray:
			return n.embedMany(ctx, params)
		default:
			return n.embedOne(ctx, params, item)
		}
	})
}

func (n *Node) embedOne(ctx context.Context, params Params, item upstage.Item) (upstage.Output, error) {
	text := params.Text

	if params.TextField != "" {
		if value, ok := item.JSON[params.TextField].(string); ok && value != "" {
			text = value
		}
	}

	if text == "" {
		return upstage.Output{}, upstage.Validationf("no input text provided")
	}

	resp, err := n.request(ctx, params.Model, text)
	if err != nil {
		return upstage.Output{}, err
	}

	embedding := resp.ArrayOr("data.0.embedding")

	return upstage.Output{
		JSON: map[string]any{
			"text":          text,
			"embedding":     embedding,
			"model":         resp.ValueOf("model"),
			"usage":         resp.ValueOf("usage"),
			"dimension":     len(embedding),
			"full_response": resp.Object(),
		},
	}, nil
}

func (n *Node) embedMany(ctx context.Context, params Params) (upstage.Output, error) {
	texts := lo.Filter(strings.Split(params.Texts, "\n"), func(text string, _ int) bool {
		return strings.TrimSpace(text) != ""
	})

	if len(texts) == 0 {
		return upstage.Output{}, upstage.Validationf("no input text provided")
	}

	resp, err := n.request(ctx, params.Model, texts)
	if err != nil {
		return upstage.Output{}, err
	}

	data := resp.Get("data")
	if !data.IsArray() {
		return upstage.Output{}, upstage.Shapef("embedding response has no data list")
	}

	entries := data.Array()

	slices.SortStableFunc(entries, func(a, b gjson.Result) int {
		return int(a.Get("index").Int() - b.Get("index").Int())
	})

	embeddings := make([]any, 0, len(entries))

	for _, entry := range entries {
		index := int(entry.Get("index").Int())
		if index < 0 || index >= len(texts) {
			return upstage.Output{}, upstage.Shapef("embedding index %d is out of range for %d texts", index, len(texts))
		}

		embeddings = append(embeddings, map[string]any{
			"text":      texts[index],
			"embedding": entry.Get("embedding").Value(),
			"index":     index,
		})
	}

	return upstage.Output{
		JSON: map[string]any{
			"embeddings":    embeddings,
			"model":         resp.ValueOf("model"),
			"usage":         resp.ValueOf("usage"),
			"full_response": resp.Object(),
		},
	}, nil
}

func (n *Node) request(ctx context.Context, model string, input any) (*upstage.Response, error) {
	req := upstage.NewRequest(http.MethodPost, Path).WithJson(map[string]any{
		"model": model,
		"input": input,
	})

	return n.client.Do(ctx, req)
}

func (n *Node) Description() upstage.Description {
	return upstage.Description{
		Name:        Name,
		DisplayName: "Upstage Embeddings",
		Description: "Generate text embeddings with Upstage Solar embedding models",
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
				Default:     "embedding-query",
				Options: []upstage.PropertyOption{
					{Name: "Embedding Query", Value: "embedding-query", Description: "Optimized for search queries and questions"},
					{Name: "Embedding Passage", Value: "embedding-passage", Description: "Optimized for documents and passages"},
				},
			},
			{
				DisplayName: "Input Type",
				Name:        "inputType",
				Type:        "options",
				Default:     InputSingle,
				Options: []upstage.PropertyOption{
					{Name: "Single Text", Value: InputSingle},
					{Name: "Array of Texts", Value: InputArray},
				},
			},
			{
				DisplayName:    "Text",
				Name:           "text",
				Type:           "string",
				Default:        "",
				DisplayOptions: upstage.ShowWhen("inputType", InputSingle),
			},
			{
				DisplayName:    "Texts",
				Name:           "texts",
				Type:           "string",
				Default:        "",
				Description:    "One text per line",
				DisplayOptions: upstage.ShowWhen("inputType", InputArray),
			},
			{
				DisplayName:    "Text Field",
				Name:           "textField",
				Type:           "string",
				Default:        "",
				Description:    "Name of the input item field holding the text",
				DisplayOptions: upstage.ShowWhen("inputType", InputSingle),
			},
		},
	}
}
