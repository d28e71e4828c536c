package uc

// Factory wires the connection resolver into administrative use cases
type Factory struct {
	resolver ConnectionResolver
}

// NewFactory creates a use case factory for administrative operations
func NewFactory(resolver ConnectionResolver) *Factory {
	return &Factory{
		resolver: resolver,
	}
}

// ListDatabases builds the database listing use case
func (f *Factory) ListDatabases(input *ListDatabasesInput) *ListDatabases {
	return NewListDatabases(f.resolver, input)
}

// ListCollections builds the collection listing use case
func (f *Factory) ListCollections(input *ListCollectionsInput) *ListCollections {
	return NewListCollections(f.resolver, input)
}

// DropDatabase builds the database drop use case
func (f *Factory) DropDatabase(input *DropDatabaseInput) *DropDatabase {
	return NewDropDatabase(f.resolver, input)
}

// DropCollection builds the collection drop use case
func (f *Factory) DropCollection(input *DropCollectionInput) *DropCollection {
	return NewDropCollection(f.resolver, input)
}
