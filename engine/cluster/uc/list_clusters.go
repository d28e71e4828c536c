package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster/model"
)

// ListClustersInput carries the plaintext owner pair that scopes the listing.
// A pair that matches nothing yields an empty list, not an error; this filter
// is the registry's entire authorization surface.
type ListClustersInput struct {
	Owner      string `json:"owner"`
	Credential string `json:"credential"`
}

// ListClusters use case for listing registrations owned by a credential pair
type ListClusters struct {
	repo  Repository
	input *ListClustersInput
}

// NewListClusters creates a new list clusters use case
func NewListClusters(repo Repository, input *ListClustersInput) *ListClusters {
	return &ListClusters{
		repo:  repo,
		input: input,
	}
}

// Execute lists the clusters owned by the given pair
func (uc *ListClusters) Execute(ctx context.Context) ([]*model.Cluster, error) {
	clusters, err := uc.repo.ListClustersByOwner(ctx, uc.input.Owner, uc.input.Credential)
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}
	return clusters, nil
}
