package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
)

// UpdateOneInput represents the input for a merge-patch update
type UpdateOneInput struct {
	Selector cluster.Selector
	ID       string
	Patch    core.Document
}

// UpdateOne use case applying a merge patch to a single document
type UpdateOne struct {
	resolver ConnectionResolver
	input    *UpdateOneInput
}

// NewUpdateOne creates a new update one use case
func NewUpdateOne(resolver ConnectionResolver, input *UpdateOneInput) *UpdateOne {
	return &UpdateOne{
		resolver: resolver,
		input:    input,
	}
}

// Execute strips null fields from the patch, sets the remaining fields on
// the addressed document, and returns the post-update document.
//
// A patch that modifies nothing reports ErrDocumentNotFound exactly like a
// missing id does; the backend's modified count cannot tell the two apart
// and the ambiguity is preserved as observed behavior.
func (uc *UpdateOne) Execute(ctx context.Context) (core.Document, error) {
	fields := make(core.Document, len(uc.input.Patch))
	for k, v := range uc.input.Patch {
		if v == nil {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}
	coll, release, err := openCollection(ctx, uc.resolver, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	if err := coll.UpdateByID(ctx, uc.input.ID, fields); err != nil {
		switch {
		case errors.Is(err, backend.ErrInvalidID):
			return nil, core.NewError(err, core.ErrCodeValidation, nil)
		case errors.Is(err, backend.ErrNotFound):
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	doc, err := coll.FindByID(ctx, uc.input.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back updated document: %w", err)
	}
	return doc, nil
}
