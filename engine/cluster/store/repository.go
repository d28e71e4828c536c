package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster/model"
	"github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
)

// Repository persists cluster registrations in a registry collection,
// conventionally on the default connection so the registry survives restarts
// alongside the data it routes to.
type Repository struct {
	coll backend.Collection
}

// NewRepository creates a registry repository over the given collection
func NewRepository(coll backend.Collection) uc.Repository {
	return &Repository{coll: coll}
}

// CreateCluster stores a new registration and fills in its assigned ID
func (r *Repository) CreateCluster(ctx context.Context, cluster *model.Cluster) error {
	stored, err := r.coll.InsertOne(ctx, core.Document{
		"name":       cluster.Name,
		"uri":        cluster.URI,
		"owner":      cluster.Owner,
		"credential": cluster.Credential,
	})
	if err != nil {
		return fmt.Errorf("storing cluster registration: %w", err)
	}
	cluster.ID = stored.ID()
	return nil
}

// GetClusterByName retrieves a registration by its unique name
func (r *Repository) GetClusterByName(ctx context.Context, name string) (*model.Cluster, error) {
	return r.findOne(ctx, core.Document{"name": name})
}

// GetClusterByURI retrieves a registration by its unique connection URI
func (r *Repository) GetClusterByURI(ctx context.Context, uri string) (*model.Cluster, error) {
	return r.findOne(ctx, core.Document{"uri": uri})
}

// ListClustersByOwner retrieves every registration matching the exact
// owner+credential pair
func (r *Repository) ListClustersByOwner(ctx context.Context, owner, credential string) ([]*model.Cluster, error) {
	docs, err := r.coll.Find(ctx, core.Document{"owner": owner, "credential": credential}, 0)
	if err != nil {
		return nil, fmt.Errorf("querying cluster registry: %w", err)
	}
	clusters := make([]*model.Cluster, 0, len(docs))
	for _, doc := range docs {
		clusters = append(clusters, clusterFromDocument(doc))
	}
	return clusters, nil
}

func (r *Repository) findOne(ctx context.Context, filter core.Document) (*model.Cluster, error) {
	doc, err := r.coll.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, uc.ErrClusterNotFound
		}
		return nil, fmt.Errorf("querying cluster registry: %w", err)
	}
	return clusterFromDocument(doc), nil
}

// clusterFromDocument maps a stored registry document onto the model.
// Unknown or mistyped fields are dropped rather than failing the read.
func clusterFromDocument(doc core.Document) *model.Cluster {
	cluster := &model.Cluster{ID: doc.ID()}
	if v, ok := doc["name"].(string); ok {
		cluster.Name = v
	}
	if v, ok := doc["uri"].(string); ok {
		cluster.URI = v
	}
	if v, ok := doc["owner"].(string); ok {
		cluster.Owner = v
	}
	if v, ok := doc["credential"].(string); ok {
		cluster.Credential = v
	}
	return cluster
}
