package uc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster/store"
	"github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

func registryForTest(t *testing.T) (uc.Repository, backend.Collection, context.Context) {
	t.Helper()
	conn := backend.NewMemoryConn()
	coll := conn.Database("docbridge").Collection("clusters")
	ctx := logger.ContextWithLogger(t.Context(), logger.NewForTests())
	return store.NewRepository(coll), coll, ctx
}

func TestRegisterCluster(t *testing.T) {
	t.Run("Should register a cluster and fill in its assigned ID", func(t *testing.T) {
		repo, _, ctx := registryForTest(t)
		input := &uc.RegisterClusterInput{
			Name:       "west",
			URI:        "mongodb://west.example.com:27017",
			Owner:      "ops",
			Credential: "hunter2",
		}
		cluster, err := uc.NewRegisterCluster(repo, input).Execute(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, cluster.ID)
		assert.Equal(t, "west", cluster.Name)
		assert.Equal(t, "mongodb://west.example.com:27017", cluster.URI)
		assert.Equal(t, "ops", cluster.Owner)
	})
	t.Run("Should reject a blank name with a validation error", func(t *testing.T) {
		repo, _, ctx := registryForTest(t)
		input := &uc.RegisterClusterInput{URI: "mongodb://west.example.com:27017"}
		_, err := uc.NewRegisterCluster(repo, input).Execute(ctx)
		require.Error(t, err)
		var coreErr *core.Error
		require.ErrorAs(t, err, &coreErr)
		assert.Equal(t, core.ErrCodeValidation, coreErr.Code)
	})
	t.Run("Should reject a blank uri with a validation error", func(t *testing.T) {
		repo, _, ctx := registryForTest(t)
		input := &uc.RegisterClusterInput{Name: "west"}
		_, err := uc.NewRegisterCluster(repo, input).Execute(ctx)
		require.Error(t, err)
		var coreErr *core.Error
		require.ErrorAs(t, err, &coreErr)
		assert.Equal(t, core.ErrCodeValidation, coreErr.Code)
	})
	t.Run("Should reject a duplicate name and leave a single entry behind", func(t *testing.T) {
		repo, coll, ctx := registryForTest(t)
		first := &uc.RegisterClusterInput{Name: "west", URI: "mongodb://a.example.com:27017"}
		_, err := uc.NewRegisterCluster(repo, first).Execute(ctx)
		require.NoError(t, err)
		second := &uc.RegisterClusterInput{Name: "west", URI: "mongodb://b.example.com:27017"}
		_, err = uc.NewRegisterCluster(repo, second).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrClusterNameTaken)
		entries, err := coll.Find(ctx, core.Document{"name": "west"}, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
	t.Run("Should reject a duplicate uri under a different name", func(t *testing.T) {
		repo, _, ctx := registryForTest(t)
		first := &uc.RegisterClusterInput{Name: "west", URI: "mongodb://a.example.com:27017"}
		_, err := uc.NewRegisterCluster(repo, first).Execute(ctx)
		require.NoError(t, err)
		second := &uc.RegisterClusterInput{Name: "east", URI: "mongodb://a.example.com:27017"}
		_, err = uc.NewRegisterCluster(repo, second).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrClusterURITaken)
	})
}

func TestListClusters(t *testing.T) {
	t.Run("Should list only clusters matching the exact owner pair", func(t *testing.T) {
		repo, _, ctx := registryForTest(t)
		seed := []*uc.RegisterClusterInput{
			{Name: "west", URI: "mongodb://a.example.com:27017", Owner: "ops", Credential: "hunter2"},
			{Name: "east", URI: "mongodb://b.example.com:27017", Owner: "ops", Credential: "hunter2"},
			{Name: "north", URI: "mongodb://c.example.com:27017", Owner: "ops", Credential: "other"},
		}
		for _, input := range seed {
			_, err := uc.NewRegisterCluster(repo, input).Execute(ctx)
			require.NoError(t, err)
		}
		clusters, err := uc.NewListClusters(repo, &uc.ListClustersInput{Owner: "ops", Credential: "hunter2"}).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, clusters, 2)
	})
	t.Run("Should return an empty list for a mismatching pair", func(t *testing.T) {
		repo, _, ctx := registryForTest(t)
		input := &uc.RegisterClusterInput{
			Name: "west", URI: "mongodb://a.example.com:27017", Owner: "ops", Credential: "hunter2",
		}
		_, err := uc.NewRegisterCluster(repo, input).Execute(ctx)
		require.NoError(t, err)
		clusters, err := uc.NewListClusters(repo, &uc.ListClustersInput{Owner: "ops", Credential: "wrong"}).Execute(ctx)
		require.NoError(t, err)
		assert.Empty(t, clusters)
	})
}
