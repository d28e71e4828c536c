package uc

import (
	"context"

	"github.com/docbridge/docbridge/engine/cluster/model"
)

// Repository defines all data access operations for the cluster registry
type Repository interface {
	// CreateCluster stores a new registration and fills in its assigned ID.
	CreateCluster(ctx context.Context, cluster *model.Cluster) error

	// GetClusterByName returns the registration with the given name,
	// or ErrClusterNotFound.
	GetClusterByName(ctx context.Context, name string) (*model.Cluster, error)

	// GetClusterByURI returns the registration with the given connection URI,
	// or ErrClusterNotFound.
	GetClusterByURI(ctx context.Context, uri string) (*model.Cluster, error)

	// ListClustersByOwner returns every registration whose owner and
	// credential both match exactly.
	ListClustersByOwner(ctx context.Context, owner, credential string) ([]*model.Cluster, error)
}
