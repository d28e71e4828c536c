package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/pkg/config"
)

// ListCollectionsInput represents the input for listing collection names.
// A blank selector database falls back to the configured default.
type ListCollectionsInput struct {
	Selector cluster.Selector
}

// ListCollections use case for listing the collections of one database
type ListCollections struct {
	resolver ConnectionResolver
	input    *ListCollectionsInput
}

// NewListCollections creates a new list collections use case
func NewListCollections(resolver ConnectionResolver, input *ListCollectionsInput) *ListCollections {
	return &ListCollections{
		resolver: resolver,
		input:    input,
	}
}

// Execute returns the collection names of the selected database
func (uc *ListCollections) Execute(ctx context.Context) ([]string, error) {
	conn, release, err := uc.resolver.Resolve(ctx, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	cfg := config.FromContext(ctx)
	db := uc.input.Selector.DatabaseOr(cfg.Database.Name)
	names, err := conn.Database(db).ListCollectionNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}
