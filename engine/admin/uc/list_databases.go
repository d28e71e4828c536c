package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
)

// ListDatabasesInput represents the input for listing database names
type ListDatabasesInput struct {
	Selector cluster.Selector
}

// ListDatabases use case for listing every database on a connection
type ListDatabases struct {
	resolver ConnectionResolver
	input    *ListDatabasesInput
}

// NewListDatabases creates a new list databases use case
func NewListDatabases(resolver ConnectionResolver, input *ListDatabasesInput) *ListDatabases {
	return &ListDatabases{
		resolver: resolver,
		input:    input,
	}
}

// Execute returns the database names visible on the selected connection
func (uc *ListDatabases) Execute(ctx context.Context) ([]string, error) {
	conn, release, err := uc.resolver.Resolve(ctx, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	names, err := conn.ListDatabaseNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	return names, nil
}
