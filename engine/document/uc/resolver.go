package uc

import (
	"context"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/config"
)

// ConnectionResolver yields a live connection for a request selector.
// Satisfied by *cluster.Resolver.
type ConnectionResolver interface {
	Resolve(ctx context.Context, sel cluster.Selector) (backend.Conn, func(), error)
}

// DatasetLoader fetches an external tabular dataset and decodes it into
// documents. Satisfied by *dataset.Loader.
type DatasetLoader interface {
	Load(ctx context.Context, link string) ([]core.Document, error)
}

// openCollection resolves sel into a collection handle, filling blank
// database and collection fields from the configured defaults. The returned
// release function must be called once the handle is no longer needed.
func openCollection(
	ctx context.Context,
	resolver ConnectionResolver,
	sel cluster.Selector,
) (backend.Collection, func(), error) {
	conn, release, err := resolver.Resolve(ctx, sel)
	if err != nil {
		return nil, nil, err
	}
	cfg := config.FromContext(ctx)
	db := sel.DatabaseOr(cfg.Database.Name)
	coll := sel.CollectionOr(cfg.Database.Collection)
	return conn.Database(db).Collection(coll), release, nil
}
