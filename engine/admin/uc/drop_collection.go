package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

// DropCollectionInput represents the input for dropping a collection
type DropCollectionInput struct {
	Selector   cluster.Selector
	Database   string
	Collection string
}

// DropCollection use case removing a single collection
type DropCollection struct {
	resolver ConnectionResolver
	input    *DropCollectionInput
}

// NewDropCollection creates a new drop collection use case
func NewDropCollection(resolver ConnectionResolver, input *DropCollectionInput) *DropCollection {
	return &DropCollection{
		resolver: resolver,
		input:    input,
	}
}

// Execute drops the named collection. Dropping a collection that does not
// exist succeeds; the operation is idempotent.
func (uc *DropCollection) Execute(ctx context.Context) error {
	if uc.input.Database == "" {
		return core.NewError(fmt.Errorf("database name is required"), core.ErrCodeValidation, nil)
	}
	if uc.input.Collection == "" {
		return core.NewError(fmt.Errorf("collection name is required"), core.ErrCodeValidation, nil)
	}
	conn, release, err := uc.resolver.Resolve(ctx, uc.input.Selector)
	if err != nil {
		return err
	}
	defer release()
	if err := conn.Database(uc.input.Database).DropCollection(ctx, uc.input.Collection); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Info("Collection dropped", "database", uc.input.Database, "collection", uc.input.Collection)
	return nil
}
