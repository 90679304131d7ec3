package embeddingsmodel

import (
	"context"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
	"github.com/checkmarble/upstage-nodes/llms/solar"
)

const (
	Name = "embeddingsUpstageModel"
)

type Params struct {
	Model string `mapstructure:"model" validate:"oneof=embedding-query embedding-passage" jsonschema:"enum=embedding-query,enum=embedding-passage,default=embedding-query"`
}

// Node supplies a Solar embedder to vector store nodes.
type Node struct {
	client *upstage.Client
}

func New(client *upstage.Client) *Node {
	return &Node{client: client}
}

// SupplyData returns a langchaingo embeddings.Embedder.
func (n *Node) SupplyData(_ context.Context, fns upstage.SupplyFunctions, itemIndex int) (any, error) {
	embedder, err := n.Embedder(fns, itemIndex)
	if err != nil {
		return nil, err
	}

	return embedder, nil
}

func (n *Node) Embedder(fns upstage.SupplyFunctions, itemIndex int) (*solar.Embedder, error) {
	params, err := upstage.ReadParams(fns, itemIndex, Params{Model: solar.DefaultEmbeddingModel})
	if err != nil {
		return nil, err
	}

	return solar.NewEmbedder(n.client, params.Model), nil
}

func (n *Node) Description() upstage.Description {
	return upstage.Description{
		Name:        Name,
		DisplayName: "Upstage Embeddings Model",
		Description: "Embedding Model for Vector DB - Upstage Solar Embeddings. Supports up to 100 strings per request.",
		Group:       []string{"transform"},
		Version:     1,
		Inputs:      []string{},
		Outputs:     []string{upstage.ConnectionEmbedding},
		Credentials: []string{upstage.CredentialName},
		Schema:      internal.GenerateSchema[Params](),
		Properties: []upstage.Property{
			{
				DisplayName: "Model",
				Name:        "model",
				Type:        "options",
				Default:     solar.DefaultEmbeddingModel,
				Options: []upstage.PropertyOption{
					{Name: "Embedding Query", Value: "embedding-query", Description: "Optimized for search queries and questions"},
					{Name: "Embedding Passage", Value: "embedding-passage", Description: "Optimized for documents and passages"},
				},
			},
		},
	}
}
