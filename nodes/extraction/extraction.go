package extraction

import (
	"context"
	"net/http"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
	"github.com/checkmarble/upstage-nodes/nodes/internal/source"
	"github.com/samber/lo"
)

const (
	Name = "informationExtractionUpstage"
	Path = "/information-extraction"

	DefaultSchemaName = "document_schema"
	DefaultJsonSchema = `{ "type": "object", "properties": {} }`

	ReturnExtracted = "extracted"
	ReturnFull      = "full"
)

type Params struct {
	InputType          string `mapstructure:"inputType" validate:"oneof=binary url" jsonschema:"enum=binary,enum=url,default=binary"`
	BinaryPropertyName string `mapstructure:"binaryPropertyName" validate:"required_when=InputType binary" jsonschema:"default=document"`
	ImageUrl           string `mapstructure:"imageUrl" validate:"required_when=InputType url"`
	Model              string `mapstructure:"model" validate:"required" jsonschema:"enum=information-extract,default=information-extract"`
	SchemaName         string `mapstructure:"schemaName" jsonschema:"default=document_schema"`
	JsonSchema         any    `mapstructure:"json_schema" jsonschema_description:"JSON schema of the extracted document, as a JSON string or an object"`
	PagesPerChunk      int    `mapstructure:"pagesPerChunk" validate:"gte=0" jsonschema:"minimum=0"`
	ReturnMode         string `mapstructure:"returnMode" validate:"oneof=extracted full" jsonschema:"enum=extracted,enum=full,default=extracted"`
}

func defaultParams() Params {
	return Params{
		InputType:          source.InputBinary,
		BinaryPropertyName: "document",
		Model:              "information-extract",
		SchemaName:         DefaultSchemaName,
		ReturnMode:         ReturnExtracted,
	}
}

// schema falls back to the default when the parameter is absent. It is not
// part of the defaults since decoding writes into the existing value.
func (p Params) schema() any {
	if p.JsonSchema == nil {
		return DefaultJsonSchema
	}

	return p.JsonSchema
}

// Node extracts structured data from a document image following a
// caller-provided JSON schema.
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

		schema, err := upstage.ParseSchema(params.schema())
		if err != nil {
			return upstage.Output{}, err
		}

		url, err := source.ImageUrl(ctx, fns, idx, item, params.InputType, params.BinaryPropertyName, params.ImageUrl)
		if err != nil {
			return upstage.Output{}, err
		}

		body := map[string]any{
			"model":    params.Model,
			"messages": []any{source.ImageMessage(url)},
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   lo.CoalesceOrEmpty(params.SchemaName, DefaultSchemaName),
					"schema": schema,
				},
			},
		}

		if params.PagesPerChunk > 0 {
			body["chunking"] = map[string]any{"pages_per_chunk": params.PagesPerChunk}
		}

		resp, err := n.client.Do(ctx, upstage.NewRequest(http.MethodPost, Path).WithJson(body))
		if err != nil {
			return upstage.Output{}, err
		}

		if params.ReturnMode == ReturnFull {
			return upstage.Output{JSON: resp.Object()}, nil
		}

		return upstage.Output{
			JSON: map[string]any{
				"extracted":     source.ParseContent(resp.Content()),
				"model":         resp.ValueOf("model"),
				"usage":         resp.ValueOf("usage"),
				"full_response": resp.Object(),
			},
		}, nil
	})
}

func (n *Node) Description() upstage.Description {
	return upstage.Description{
		Name:        Name,
		DisplayName: "Upstage Information Extraction",
		Description: "Extract structured fields from documents and images",
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
				Default:        "document",
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
				DisplayName: "Schema Name",
				Name:        "schemaName",
				Type:        "string",
				Default:     DefaultSchemaName,
			},
			{
				DisplayName: "JSON Schema",
				Name:        "json_schema",
				Type:        "json",
				Default:     DefaultJsonSchema,
				Description: "Schema the extracted data must follow",
			},
			{
				DisplayName: "Pages Per Chunk",
				Name:        "pagesPerChunk",
				Type:        "number",
				Default:     0,
				Description: "Split long documents in chunks of this many pages, 0 disables chunking",
			},
			{
				DisplayName: "Return Mode",
				Name:        "returnMode",
				Type:        "options",
				Default:     ReturnExtracted,
				Options: []upstage.PropertyOption{
					{Name: "Extracted JSON Only", Value: ReturnExtracted},
					{Name: "Full Response", Value: ReturnFull},
				},
			},
		},
	}
}
