package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

// DropDatabaseInput represents the input for dropping a database
type DropDatabaseInput struct {
	Selector cluster.Selector
	Database string
}

// DropDatabase use case removing an entire database
type DropDatabase struct {
	resolver ConnectionResolver
	input    *DropDatabaseInput
}

// NewDropDatabase creates a new drop database use case
func NewDropDatabase(resolver ConnectionResolver, input *DropDatabaseInput) *DropDatabase {
	return &DropDatabase{
		resolver: resolver,
		input:    input,
	}
}

// Execute drops the named database. Dropping a database that does not exist
// succeeds; the operation is idempotent.
func (uc *DropDatabase) Execute(ctx context.Context) error {
	if uc.input.Database == "" {
		return core.NewError(fmt.Errorf("database name is required"), core.ErrCodeValidation, nil)
	}
	conn, release, err := uc.resolver.Resolve(ctx, uc.input.Selector)
	if err != nil {
		return err
	}
	defer release()
	if err := conn.DropDatabase(ctx, uc.input.Database); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Info("Database dropped", "database", uc.input.Database)
	return nil
}
