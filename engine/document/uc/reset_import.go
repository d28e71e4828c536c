package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/engine/dataset"
	"github.com/docbridge/docbridge/pkg/logger"
)

// sampleSize caps how many imported documents are echoed back.
const sampleSize = 3

// ResetImportInput represents the input for a drop-and-import
type ResetImportInput struct {
	Selector cluster.Selector
	Link     string
}

// ResetImportOutput summarizes a completed import.
type ResetImportOutput struct {
	Inserted int             `json:"inserted"`
	Sample   []core.Document `json:"sample"`
}

// ResetImport use case replacing a collection's contents with an external
// tabular dataset
type ResetImport struct {
	resolver ConnectionResolver
	loader   DatasetLoader
	input    *ResetImportInput
}

// NewResetImport creates a new reset import use case
func NewResetImport(resolver ConnectionResolver, loader DatasetLoader, input *ResetImportInput) *ResetImport {
	return &ResetImport{
		resolver: resolver,
		loader:   loader,
		input:    input,
	}
}

// Execute validates the link's format, drops the target collection, then
// loads and inserts the dataset.
//
// The format check runs before the drop so an unsupported link never
// destroys data. Past that point there is no transactional safety: a fetch
// or decode failure leaves the collection empty, accepted and documented as
// the cost of the unconditional drop.
func (uc *ResetImport) Execute(ctx context.Context) (*ResetImportOutput, error) {
	if _, ok := dataset.DetectFormat(uc.input.Link); !ok {
		return nil, ErrUnsupportedFormat
	}
	coll, release, err := openCollection(ctx, uc.resolver, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	if err := coll.Drop(ctx); err != nil {
		return nil, fmt.Errorf("failed to drop collection before import: %w", err)
	}
	rows, err := uc.loader.Load(ctx, uc.input.Link)
	if err != nil {
		return nil, core.NewError(fmt.Errorf("failed to load dataset: %w", err), core.ErrCodeImport, nil)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	docs, err := coll.InsertMany(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to insert imported rows: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Info("Dataset imported", "rows", len(docs), "link", uc.input.Link)
	sample := docs
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	return &ResetImportOutput{Inserted: len(docs), Sample: sample}, nil
}
