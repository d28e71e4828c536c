package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
)

// MaxListLimit bounds every listing; callers needing more must page
// externally.
const MaxListLimit = 100

// ListDocumentsInput represents the input for listing documents
type ListDocumentsInput struct {
	Selector cluster.Selector
	Limit    int64
}

// ListDocuments use case for listing documents in storage-native order
type ListDocuments struct {
	resolver ConnectionResolver
	input    *ListDocumentsInput
}

// NewListDocuments creates a new list documents use case
func NewListDocuments(resolver ConnectionResolver, input *ListDocumentsInput) *ListDocuments {
	return &ListDocuments{
		resolver: resolver,
		input:    input,
	}
}

// Execute returns up to the effective limit of documents. No ordering is
// guaranteed; the backend's native order passes through.
func (uc *ListDocuments) Execute(ctx context.Context) ([]core.Document, error) {
	limit := uc.input.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	coll, release, err := openCollection(ctx, uc.resolver, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	docs, err := coll.Find(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}
