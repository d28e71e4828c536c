package server

import (
	"context"
	"fmt"

	adminuc "github.com/docbridge/docbridge/engine/admin/uc"
	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/cluster/store"
	clusteruc "github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/dataset"
	documentuc "github.com/docbridge/docbridge/engine/document/uc"
	"github.com/docbridge/docbridge/pkg/config"
	"github.com/docbridge/docbridge/pkg/logger"
)

// Deps bundles the wired domain factories the routers are built from.
type Deps struct {
	DefaultConn backend.Conn
	Resolver    *cluster.Resolver
	Clusters    *clusteruc.Factory
	Documents   *documentuc.Factory
	Admin       *adminuc.Factory
}

// NewDeps wires the domain factories around an established default
// connection. The registry repository lives inside that connection under the
// configured registry database and collection.
func NewDeps(cfg *config.Config, defaultConn backend.Conn, connect backend.Connector) *Deps {
	registryColl := defaultConn.
		Database(cfg.Registry.Database).
		Collection(cfg.Registry.Collection)
	repo := store.NewRepository(registryColl)
	resolver := cluster.NewResolver(defaultConn, repo, connect, cfg.Database.ConnectTimeout)
	loader := dataset.NewLoader(cfg.Import.FetchTimeout, cfg.Import.MaxRows)
	return &Deps{
		DefaultConn: defaultConn,
		Resolver:    resolver,
		Clusters:    clusteruc.NewFactory(repo),
		Documents:   documentuc.NewFactory(resolver, loader),
		Admin:       adminuc.NewFactory(resolver),
	}
}

// setupDependencies dials the default backend and wires the domain factories.
func (s *Server) setupDependencies() (*Deps, []func(), error) {
	var cleanupFuncs []func()
	cfg := config.FromContext(s.ctx)
	log := logger.FromContext(s.ctx)

	conn, err := s.connect(s.ctx, cfg.Database.URI.Value(), cfg.Database.ConnectTimeout)
	if err != nil {
		return nil, cleanupFuncs, fmt.Errorf("failed to connect to default backend: %w", err)
	}
	cleanupFuncs = append(cleanupFuncs, func() {
		if cerr := conn.Close(context.WithoutCancel(s.ctx)); cerr != nil {
			log.Warn("Failed to close default backend connection", "error", cerr)
		}
	})
	log.Info("Connected to default backend",
		"database", cfg.Database.Name,
		"collection", cfg.Database.Collection,
	)

	return NewDeps(cfg, conn, s.connect), cleanupFuncs, nil
}

func (s *Server) cleanup(cleanupFuncs []func()) {
	for i := len(cleanupFuncs) - 1; i >= 0; i-- {
		cleanupFuncs[i]()
	}
}
