package cluster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

// DefaultSelector is the sentinel cluster value selecting the process-wide
// default connection. An absent cluster field means the same thing.
const DefaultSelector = "default"

// Selector carries the per-request routing fields naming which cluster,
// database, and collection an operation targets. Zero values fall back to
// the configured defaults.
type Selector struct {
	Cluster    string `json:"cluster" form:"cluster"`
	Database   string `json:"database" form:"database"`
	Collection string `json:"collection" form:"collection"`
}

// DatabaseOr returns the selected database name, or fallback when unset.
func (s Selector) DatabaseOr(fallback string) string {
	if s.Database != "" {
		return s.Database
	}
	return fallback
}

// CollectionOr returns the selected collection name, or fallback when unset.
func (s Selector) CollectionOr(fallback string) string {
	if s.Collection != "" {
		return s.Collection
	}
	return fallback
}

// Resolver turns a request's cluster selector into a live connection.
type Resolver struct {
	defaultConn backend.Conn
	repo        uc.Repository
	connect     backend.Connector
	timeout     time.Duration
}

// NewResolver builds a resolver around the process-wide default connection.
// Named and raw-URI selections dial through connect with the given timeout.
func NewResolver(
	defaultConn backend.Conn,
	repo uc.Repository,
	connect backend.Connector,
	timeout time.Duration,
) *Resolver {
	return &Resolver{
		defaultConn: defaultConn,
		repo:        repo,
		connect:     connect,
		timeout:     timeout,
	}
}

// Resolve returns the live connection selected by sel plus a release function
// the caller must invoke when finished with it.
//
// The default connection is shared for the life of the process and its
// release is a no-op. Every other selection dials a fresh connection, paying
// full establishment cost on each call, and release closes it; nothing is
// pooled or cached across calls. A selector containing "://" is treated as a
// raw connection URI and bypasses the registry entirely.
func (r *Resolver) Resolve(ctx context.Context, sel Selector) (backend.Conn, func(), error) {
	selector := sel.Cluster
	if selector == "" || selector == DefaultSelector {
		return r.defaultConn, func() {}, nil
	}
	uri := selector
	if !strings.Contains(selector, "://") {
		reg, err := r.repo.GetClusterByName(ctx, selector)
		if err != nil {
			return nil, nil, err
		}
		uri = reg.URI
	}
	conn, err := r.connect(ctx, uri, r.timeout)
	if err != nil {
		return nil, nil, core.NewError(
			fmt.Errorf("failed to establish cluster connection: %w", err),
			core.ErrCodeBackend,
			nil,
		)
	}
	log := logger.FromContext(ctx)
	release := func() {
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil {
			log.Warn("Failed to close cluster connection", "error", cerr)
		}
	}
	return conn, release, nil
}
