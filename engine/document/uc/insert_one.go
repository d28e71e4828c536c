package uc

import (
	"context"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
)

// InsertOneInput represents the input for inserting a single document
type InsertOneInput struct {
	Selector cluster.Selector
	Document core.Document
}

// InsertOne use case for storing one document
type InsertOne struct {
	resolver ConnectionResolver
	input    *InsertOneInput
}

// NewInsertOne creates a new insert one use case
func NewInsertOne(resolver ConnectionResolver, input *InsertOneInput) *InsertOne {
	return &InsertOne{
		resolver: resolver,
		input:    input,
	}
}

// Execute stores the document and returns its canonical stored form,
// re-read from the backend with the assigned identifier.
func (uc *InsertOne) Execute(ctx context.Context) (core.Document, error) {
	if uc.input.Document == nil {
		return nil, core.NewError(fmt.Errorf("document body is required"), core.ErrCodeValidation, nil)
	}
	coll, release, err := openCollection(ctx, uc.resolver, uc.input.Selector)
	if err != nil {
		return nil, err
	}
	defer release()
	doc, err := coll.InsertOne(ctx, uc.input.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}
	return doc, nil
}
