package host

import (
	"context"
	"maps"

	"github.com/checkmarble/upstage-nodes"
	"github.com/cockroachdb/errors"
)

// Memory is an in-process host holding items, parameters and binary content
// in memory.
type Memory struct {
	Items  []upstage.Item
	Params map[string]any
	// ItemParams overrides Params for specific item indexes.
	ItemParams        map[int]map[string]any
	Buffers           map[int]map[string][]byte
	ContinueOnFailure bool
}

// NewMemory creates a host running a node with params over items.
func NewMemory(params map[string]any, items ...upstage.Item) *Memory {
	return &Memory{
		Items:   items,
		Params:  params,
		Buffers: map[int]map[string][]byte{},
	}
}

// WithBinary attaches a binary property to an item and stores its content.
func (m *Memory) WithBinary(idx int, property string, bin upstage.Binary, data []byte) *Memory {
	if m.Items[idx].Binary == nil {
		m.Items[idx].Binary = map[string]*upstage.Binary{}
	}
	if m.Buffers[idx] == nil {
		m.Buffers[idx] = map[string][]byte{}
	}

	m.Items[idx].Binary[property] = &bin
	m.Buffers[idx][property] = data

	return m
}

func (m *Memory) WithContinueOnFail() *Memory {
	m.ContinueOnFailure = true

	return m
}

func (m *Memory) InputData() []upstage.Item {
	return m.Items
}

func (m *Memory) NodeParameters(itemIndex int) (map[string]any, error) {
	if params, ok := m.ItemParams[itemIndex]; ok {
		return maps.Clone(params), nil
	}

	return maps.Clone(m.Params), nil
}

func (m *Memory) BinaryDataBuffer(_ context.Context, itemIndex int, property string) ([]byte, error) {
	data, ok := m.Buffers[itemIndex][property]
	if !ok {
		return nil, errors.Newf("binary property %q of item %d has no content", property, itemIndex)
	}

	return data, nil
}

func (m *Memory) ContinueOnFail() bool {
	return m.ContinueOnFailure
}
