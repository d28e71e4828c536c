package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

// InsertManyInput represents the input for a bulk insert
type InsertManyInput struct {
	Selector  cluster.Selector
	Documents []core.Document
}

// InsertMany use case for storing a batch of documents
type InsertMany struct {
	resolver ConnectionResolver
	input    *InsertManyInput
}

// NewInsertMany creates a new insert many use case
func NewInsertMany(resolver ConnectionResolver, input *InsertManyInput) *InsertMany {
	return &InsertMany{
		resolver: resolver,
		input:    input,
	}
}

// Execute stores the batch in order and returns the canonical stored forms.
// A failure partway through is surfaced as the backend reports it; documents
// already inserted are not rolled back.
func (uc *InsertMany) Execute(ctx context.Context) ([]core.Document, error) {
	if len(uc.input.Documents) == 0 {
		return nil, ErrEmptyBatch
	}
	coll, release, err := openCollection(ctx, uc.resolver, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	docs, err := coll.InsertMany(ctx, uc.input.Documents)
	if err != nil {
		return nil, fmt.Errorf("failed to insert documents: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Debug("Bulk insert completed", "count", len(docs))
	return docs, nil
}
