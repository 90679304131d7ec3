package nodes

import (
	"slices"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/nodes/chat"
	"github.com/checkmarble/upstage-nodes/nodes/chatmodel"
	"github.com/checkmarble/upstage-nodes/nodes/documentparse"
	"github.com/checkmarble/upstage-nodes/nodes/embeddings"
	"github.com/checkmarble/upstage-nodes/nodes/embeddingsmodel"
	"github.com/checkmarble/upstage-nodes/nodes/extraction"
	"github.com/checkmarble/upstage-nodes/nodes/schemagen"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

var ErrUnknownNode = errors.New("unknown node")

// Registry holds every Upstage node, sharing a single client.
type Registry struct {
	nodes  map[string]upstage.Node
	supply map[string]upstage.SupplyNode
}

func New(client *upstage.Client) *Registry {
	return &Registry{
		nodes: map[string]upstage.Node{
			chat.Name:          chat.New(client),
			embeddings.Name:    embeddings.New(client),
			documentparse.Name: documentparse.New(client),
			extraction.Name:    extraction.New(client),
			schemagen.Name:     schemagen.New(client),
		},
		supply: map[string]upstage.SupplyNode{
			chatmodel.Name:       chatmodel.New(client),
			embeddingsmodel.Name: embeddingsmodel.New(client),
		},
	}
}

// Get returns an executable node by name.
func (r *Registry) Get(name string) (upstage.Node, error) {
	node, ok := r.nodes[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("no executable node named %q", name), ErrUnknownNode)
	}

	return node, nil
}

// Supplier returns a supply-data node by name.
func (r *Registry) Supplier(name string) (upstage.SupplyNode, error) {
	node, ok := r.supply[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("no supply node named %q", name), ErrUnknownNode)
	}

	return node, nil
}

// Names lists every registered node, sorted.
func (r *Registry) Names() []string {
	names := append(lo.Keys(r.nodes), lo.Keys(r.supply)...)
	slices.Sort(names)

	return names
}

// Describe returns the descriptions of every registered node, sorted by name.
func (r *Registry) Describe() []upstage.Description {
	return lo.Map(r.Names(), func(name string, _ int) upstage.Description {
		if node, ok := r.nodes[name]; ok {
			return node.Description()
		}

		return r.supply[name].Description()
	})
}
