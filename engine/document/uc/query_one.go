package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
)

// QueryOneInput represents the input for finding one document by filter
type QueryOneInput struct {
	Selector cluster.Selector
	Filter   core.Document
}

// QueryOne use case for finding a single document by an opaque filter
type QueryOne struct {
	resolver ConnectionResolver
	input    *QueryOneInput
}

// NewQueryOne creates a new query one use case
func NewQueryOne(resolver ConnectionResolver, input *QueryOneInput) *QueryOne {
	return &QueryOne{
		resolver: resolver,
		input:    input,
	}
}

// Execute returns the first document matching the filter. The filter passes
// through to the backend untouched.
func (uc *QueryOne) Execute(ctx context.Context) (core.Document, error) {
	coll, release, err := openCollection(ctx, uc.resolver, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	doc, err := coll.FindOne(ctx, uc.input.Filter)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}
