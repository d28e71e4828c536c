package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/docbridge/docbridge/engine/cluster/model"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

// RegisterClusterInput represents the input for registering a cluster
type RegisterClusterInput struct {
	Name       string `json:"name"`
	URI        string `json:"uri"`
	Owner      string `json:"owner"`
	Credential string `json:"credential"`
}

// RegisterCluster use case for adding a cluster to the registry
type RegisterCluster struct {
	repo  Repository
	input *RegisterClusterInput
}

// NewRegisterCluster creates a new register cluster use case
func NewRegisterCluster(repo Repository, input *RegisterClusterInput) *RegisterCluster {
	return &RegisterCluster{
		repo:  repo,
		input: input,
	}
}

// Execute validates the registration and stores it.
//
// The name and URI existence checks and the insert are check-then-act, not
// atomic: concurrent registrations of the same name or URI can all pass the
// checks and insert duplicates. Any uniqueness constraint on the registry
// collection itself is the only remaining guard.
func (uc *RegisterCluster) Execute(ctx context.Context) (*model.Cluster, error) {
	log := logger.FromContext(ctx)
	if uc.input.Name == "" {
		return nil, core.NewError(fmt.Errorf("cluster name is required"), core.ErrCodeValidation, nil)
	}
	if uc.input.URI == "" {
		return nil, core.NewError(fmt.Errorf("cluster uri is required"), core.ErrCodeValidation, nil)
	}
	if _, err := uc.repo.GetClusterByName(ctx, uc.input.Name); err == nil {
		return nil, ErrClusterNameTaken
	} else if !errors.Is(err, ErrClusterNotFound) {
		return nil, fmt.Errorf("checking cluster name: %w", err)
	}
	if _, err := uc.repo.GetClusterByURI(ctx, uc.input.URI); err == nil {
		return nil, ErrClusterURITaken
	} else if !errors.Is(err, ErrClusterNotFound) {
		return nil, fmt.Errorf("checking cluster uri: %w", err)
	}
	cluster := &model.Cluster{
		Name:       uc.input.Name,
		URI:        uc.input.URI,
		Owner:      uc.input.Owner,
		Credential: uc.input.Credential,
	}
	if err := uc.repo.CreateCluster(ctx, cluster); err != nil {
		return nil, fmt.Errorf("failed to register cluster: %w", err)
	}
	log.Info("Cluster registered", "cluster_name", cluster.Name, "cluster_id", cluster.ID)
	return cluster, nil
}
