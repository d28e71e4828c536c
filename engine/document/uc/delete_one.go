package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
)

// DeleteOneInput represents the input for deleting a document by id
type DeleteOneInput struct {
	Selector cluster.Selector
	ID       string
}

// DeleteOne use case for removing a single document
type DeleteOne struct {
	resolver ConnectionResolver
	input    *DeleteOneInput
}

// NewDeleteOne creates a new delete one use case
func NewDeleteOne(resolver ConnectionResolver, input *DeleteOneInput) *DeleteOne {
	return &DeleteOne{
		resolver: resolver,
		input:    input,
	}
}

// Execute removes the addressed document
func (uc *DeleteOne) Execute(ctx context.Context) error {
	coll, release, err := openCollection(ctx, uc.resolver, uc.input.Selector)
	if err != nil {
		return err
	}
	defer release()
	if err := coll.DeleteByID(ctx, uc.input.ID); err != nil {
		switch {
		case errors.Is(err, backend.ErrInvalidID):
			return core.NewError(err, core.ErrCodeValidation, nil)
		case errors.Is(err, backend.ErrNotFound):
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
