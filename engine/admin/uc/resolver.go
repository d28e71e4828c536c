package uc

import (
	"context"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
)

// ConnectionResolver yields a live connection for a request selector.
// Satisfied by *cluster.Resolver.
type ConnectionResolver interface {
	Resolve(ctx context.Context, sel cluster.Selector) (backend.Conn, func(), error)
}
