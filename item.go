package upstage

import (
	"context"
)

// Item is one record flowing between workflow steps.
type Item struct {
	JSON   map[string]any     `json:"json"`
	Binary map[string]*Binary `json:"binary,omitempty"`
}

// Binary describes a file attached to an item. Its content is resolved lazily
// by the host through ExecuteFunctions.BinaryDataBuffer.
type Binary struct {
	FileName  string `json:"fileName,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	Reference string `json:"path,omitempty"`
}

type PairedItem struct {
	Item int `json:"item"`
}

// Output is produced for every input item, in order.
type Output struct {
	JSON       map[string]any     `json:"json"`
	Binary     map[string]*Binary `json:"binary,omitempty"`
	PairedItem PairedItem         `json:"pairedItem"`
}

// ErrorOutput is the record emitted for a failed item when the node runs in
// continue-on-failure mode.
func ErrorOutput(idx int, err error) Output {
	return Output{
		JSON:       map[string]any{"error": err.Error()},
		PairedItem: PairedItem{Item: idx},
	}
}

// ExecuteFunctions is what the host exposes to an executing node.
type ExecuteFunctions interface {
	InputData() []Item
	NodeParameters(itemIndex int) (map[string]any, error)
	BinaryDataBuffer(ctx context.Context, itemIndex int, property string) ([]byte, error)
	ContinueOnFail() bool
}

// SupplyFunctions is what the host exposes to a node supplying a capability
// object to another node.
type SupplyFunctions interface {
	NodeParameters(itemIndex int) (map[string]any, error)
}
