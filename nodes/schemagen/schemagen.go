package schemagen

import (
	"context"
	"net/http"
	"strings"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
	"github.com/checkmarble/upstage-nodes/nodes/internal/source"
)

const (
	Name = "informationExtractionSchemaUpstage"
	Path = "/information-extraction/schema-generation"

	ReturnSchema = "schema"
	ReturnFull   = "full"
)

type Params struct {
	InputType          string `mapstructure:"inputType" validate:"oneof=binary url" jsonschema:"enum=binary,enum=url,default=binary"`
	BinaryPropertyName string `mapstructure:"binaryPropertyName" validate:"required_when=InputType binary" jsonschema:"default=data"`
	ImageUrl           string `mapstructure:"imageUrl" validate:"required_when=InputType url"`
	Model              string `mapstructure:"model" validate:"required" jsonschema:"enum=information-extract,default=information-extract"`
	Prompt             string `mapstructure:"prompt" jsonschema_description:"Optional guidance sent before the document"`
	ReturnMode         string `mapstructure:"returnMode" validate:"oneof=schema full" jsonschema:"enum=schema,enum=full,default=schema"`
}

func defaultParams() Params {
	return Params{
		InputType:          source.InputBinary,
		BinaryPropertyName: "data",
		Model:              "information-extract",
		ReturnMode:         ReturnSchema,
	}
}

// Node asks the model to propose an extraction schema for a sample document.
// Input binaries are passed through to the output.
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

		url, err := source.ImageUrl(ctx, fns, idx, item, params.InputType, params.BinaryPropertyName, params.ImageUrl)
		if err != nil {
			return upstage.Output{}, err
		}

		messages := make([]any, 0, 2)
		if prompt := strings.TrimSpace(params.Prompt); prompt != "" {
			messages = append(messages, source.TextMessage(prompt))
		}
		messages = append(messages, source.ImageMessage(url))

		resp, err := n.client.Do(ctx, upstage.NewRequest(http.MethodPost, Path).WithJson(map[string]any{
			"model":    params.Model,
			"messages": messages,
		}))
		if err != nil {
			return upstage.Output{}, err
		}

		if params.ReturnMode == ReturnFull {
			return upstage.Output{JSON: resp.Object(), Binary: item.Binary}, nil
		}

		raw := source.ParseContent(resp.Content())

		var schemaType, jsonSchema any

		if obj, ok := raw.(map[string]any); ok {
			schemaType = obj["type"]
			jsonSchema = obj["json_schema"]
		}

		return upstage.Output{
			JSON: map[string]any{
				"schema_type": schemaType,
				"json_schema": jsonSchema,
				"raw":         raw,
				"model":       resp.ValueOf("model"),
				"usage":       resp.ValueOf("usage"),
			},
			Binary: item.Binary,
		}, nil
	})
}

func (n *Node) Description() upstage.Description {
	return upstage.Description{
		Name:        Name,
		DisplayName: "Upstage IE Schema Generation",
		Description: "Generate an information extraction schema from a sample document",
		Group:       []string{"transform"},
		Version:     1,
		Inputs:      []string{upstage.ConnectionMain},
		Outputs:     []string{upstage.ConnectionMain},
		Credentials: []string{upstage.CredentialName},
		Schema:      internal.GenerateSchema[Params](),
		Properties: []upstage.Property{
			{
				DisplayName: "Input Type",
				Name:        "inputType",
				Type:        "options",
				Default:     source.InputBinary,
				Options: []upstage.PropertyOption{
					{Name: "Binary (from previous node)", Value: source.InputBinary},
					{Name: "Image URL", Value: source.InputUrl},
				},
			},
			{
				DisplayName:    "Binary Property",
				Name:           "binaryPropertyName",
				Type:           "string",
				Default:        "data",
				DisplayOptions: upstage.ShowWhen("inputType", source.InputBinary),
			},
			{
				DisplayName:    "Image URL",
				Name:           "imageUrl",
				Type:           "string",
				Default:        "",
				Required:       true,
				DisplayOptions: upstage.ShowWhen("inputType", source.InputUrl),
			},
			{
				DisplayName: "Model",
				Name:        "model",
				Type:        "options",
				Default:     "information-extract",
				Options:     upstage.Options("information-extract"),
			},
			{
				DisplayName: "Guidance Prompt",
				Name:        "prompt",
				Type:        "string",
				Default:     "",
				Description: "Describe the fields the schema should capture",
			},
			{
				DisplayName: "Return Mode",
				Name:        "returnMode",
				Type:        "options",
				Default:     ReturnSchema,
				Options: []upstage.PropertyOption{
					{Name: "Schema JSON Only", Value: ReturnSchema},
					{Name: "Full Response", Value: ReturnFull},
				},
			},
		},
	}
}
