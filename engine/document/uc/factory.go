package uc

// Factory wires the connection resolver and dataset loader into use cases
type Factory struct {
	resolver ConnectionResolver
	loader   DatasetLoader
}

// NewFactory creates a use case factory for document operations
func NewFactory(resolver ConnectionResolver, loader DatasetLoader) *Factory {
	return &Factory{
		resolver: resolver,
		loader:   loader,
	}
}

// InsertOne builds the single-document insert use case
func (f *Factory) InsertOne(input *InsertOneInput) *InsertOne {
	return NewInsertOne(f.resolver, input)
}

// ListDocuments builds the listing use case
func (f *Factory) ListDocuments(input *ListDocumentsInput) *ListDocuments {
	return NewListDocuments(f.resolver, input)
}

// QueryOne builds the filter lookup use case
func (f *Factory) QueryOne(input *QueryOneInput) *QueryOne {
	return NewQueryOne(f.resolver, input)
}

// InsertMany builds the bulk insert use case
func (f *Factory) InsertMany(input *InsertManyInput) *InsertMany {
	return NewInsertMany(f.resolver, input)
}

// UpdateOne builds the merge-patch update use case
func (f *Factory) UpdateOne(input *UpdateOneInput) *UpdateOne {
	return NewUpdateOne(f.resolver, input)
}

// DeleteOne builds the delete use case
func (f *Factory) DeleteOne(input *DeleteOneInput) *DeleteOne {
	return NewDeleteOne(f.resolver, input)
}

// ResetImport builds the drop-and-import use case
func (f *Factory) ResetImport(input *ResetImportInput) *ResetImport {
	return NewResetImport(f.resolver, f.loader, input)
}
