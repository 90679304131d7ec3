package upstage

import (
	"context"

	"github.com/invopop/jsonschema"
)

// Connection types a node can expose or consume.
const (
	ConnectionMain          = "main"
	ConnectionLanguageModel = "ai_languageModel"
	ConnectionEmbedding     = "ai_embedding"
)

const CredentialName = "upstageApi"

// Node transforms every input item into exactly one output item.
type Node interface {
	Description() Description
	Execute(ctx context.Context, fns ExecuteFunctions) ([]Output, error)
}

// SupplyNode hands a capability object (a chat model or an embedder) to
// another node instead of producing items.
type SupplyNode interface {
	Description() Description
	SupplyData(ctx context.Context, fns SupplyFunctions, itemIndex int) (any, error)
}

// Description is the static, host-facing definition of a node.
type Description struct {
	Name        string             `json:"name"`
	DisplayName string             `json:"displayName"`
	Description string             `json:"description"`
	Group       []string           `json:"group"`
	Version     int                `json:"version"`
	Inputs      []string           `json:"inputs"`
	Outputs     []string           `json:"outputs"`
	Credentials []string           `json:"credentials"`
	Properties  []Property         `json:"properties"`
	Schema      *jsonschema.Schema `json:"schema,omitempty"`
}

// Property is one field of the parameter form shown by the host.
type Property struct {
	DisplayName    string           `json:"displayName"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Default        any              `json:"default"`
	Required       bool             `json:"required,omitempty"`
	Description    string           `json:"description,omitempty"`
	Options        []PropertyOption `json:"options,omitempty"`
	DisplayOptions *DisplayOptions  `json:"displayOptions,omitempty"`
}

type PropertyOption struct {
	Name        string `json:"name"`
	Value       any    `json:"value"`
	Description string `json:"description,omitempty"`
}

// DisplayOptions makes a property visible only when the named sibling
// parameters hold one of the listed values.
type DisplayOptions struct {
	Show map[string][]any `json:"show"`
}

// ShowWhen is shorthand for a single-parameter visibility rule.
func ShowWhen(param string, values ...any) *DisplayOptions {
	return &DisplayOptions{Show: map[string][]any{param: values}}
}

// Options builds the option list of a select property from plain values.
func Options(values ...string) []PropertyOption {
	options := make([]PropertyOption, len(values))
	for idx, value := range values {
		options[idx] = PropertyOption{Name: value, Value: value}
	}

	return options
}
