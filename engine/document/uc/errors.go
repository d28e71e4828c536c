package uc

import "errors"

// ErrDocumentNotFound is returned when no document matches an id or filter
var ErrDocumentNotFound = errors.New("item not found")

// ErrEmptyBatch is returned when a bulk insert carries no documents
var ErrEmptyBatch = errors.New("empty batch")

// ErrEmptyUpdate is returned when a merge patch has no non-null fields left
var ErrEmptyUpdate = errors.New("no fields to update")

// ErrUnsupportedFormat is returned when an import link matches no known
// dataset extension
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// ErrEmptyImport is returned when an imported dataset has zero rows
var ErrEmptyImport = errors.New("dataset has no rows")
