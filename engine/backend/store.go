package backend

import (
	"context"
	"errors"
	"time"

	"github.com/docbridge/docbridge/engine/core"
)

// ErrNotFound indicates that no document matched the given identifier or filter.
var ErrNotFound = errors.New("document not found")

// ErrInvalidID indicates that an identifier could not be parsed into the
// backend's native identifier type.
var ErrInvalidID = errors.New("invalid document id")

// Connector dials a document store deployment at the given URI and verifies
// it is reachable before returning. A zero timeout disables the dial deadline.
type Connector func(ctx context.Context, uri string, timeout time.Duration) (Conn, error)

// Conn is a live connection to a document store deployment.
// Implementations must be safe for concurrent use.
type Conn interface {
	// Database returns a handle on the named logical database.
	// The database does not need to exist yet; backends create it lazily.
	Database(name string) Database

	// ListDatabaseNames returns the names of all databases on the deployment.
	ListDatabaseNames(ctx context.Context) ([]string, error)

	// DropDatabase removes the named database and everything in it.
	// Dropping a database that does not exist succeeds.
	DropDatabase(ctx context.Context, name string) error

	// Ping verifies the deployment is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection and all resources associated with it.
	Close(ctx context.Context) error
}

// Database is a handle on a logical database within a deployment.
type Database interface {
	// Collection returns a handle on the named collection.
	// The collection does not need to exist yet; backends create it lazily.
	Collection(name string) Collection

	// ListCollectionNames returns the names of all collections in the database.
	ListCollectionNames(ctx context.Context) ([]string, error)

	// DropCollection removes the named collection and all of its documents.
	// Dropping a collection that does not exist succeeds.
	DropCollection(ctx context.Context, name string) error
}

// Collection is a handle on a single collection of documents.
//
// Documents cross this boundary in canonical form: the backend's native
// identifier is exposed as the string field "id" and the raw identifier
// field never leaks out. Implementations deep-copy or re-decode documents
// so callers never share state with the store.
type Collection interface {
	// InsertOne stores doc and returns it as persisted, re-read from the
	// store with its assigned identifier.
	InsertOne(ctx context.Context, doc core.Document) (core.Document, error)

	// InsertMany stores docs in order and returns them as persisted,
	// re-read from the store with their assigned identifiers.
	InsertMany(ctx context.Context, docs []core.Document) ([]core.Document, error)

	// Find returns up to limit documents matching filter. A nil or empty
	// filter matches every document. Order is backend-defined.
	Find(ctx context.Context, filter core.Document, limit int64) ([]core.Document, error)

	// FindOne returns a single document matching filter, or ErrNotFound.
	FindOne(ctx context.Context, filter core.Document) (core.Document, error)

	// FindByID returns the document with the given identifier, or
	// ErrNotFound. Returns ErrInvalidID when id cannot be parsed.
	FindByID(ctx context.Context, id string) (core.Document, error)

	// UpdateByID sets the given fields on the document with the given
	// identifier. Returns ErrNotFound when no document was modified,
	// including when the document exists but already carries the given
	// values. Returns ErrInvalidID when id cannot be parsed.
	UpdateByID(ctx context.Context, id string, fields core.Document) error

	// DeleteByID removes the document with the given identifier.
	// Returns ErrNotFound when no document was deleted and ErrInvalidID
	// when id cannot be parsed.
	DeleteByID(ctx context.Context, id string) error

	// Drop removes the collection and all of its documents.
	// Dropping a collection that does not exist succeeds.
	Drop(ctx context.Context) error
}
