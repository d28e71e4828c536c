package cluster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
	"github.com/docbridge/docbridge/engine/cluster/model"
	"github.com/docbridge/docbridge/engine/cluster/store"
	"github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
)

// connectorRecorder stands in for backend.Connect and records every dial.
type connectorRecorder struct {
	calls []string
	err   error
}

func (r *connectorRecorder) connect(_ context.Context, uri string, _ time.Duration) (backend.Conn, error) {
	r.calls = append(r.calls, uri)
	if r.err != nil {
		return nil, r.err
	}
	return backend.NewMemoryConn(), nil
}

func resolverForTest(t *testing.T, recorder *connectorRecorder) (*cluster.Resolver, backend.Conn, uc.Repository) {
	t.Helper()
	defaultConn := backend.NewMemoryConn()
	repo := store.NewRepository(defaultConn.Database("docbridge").Collection("clusters"))
	return cluster.NewResolver(defaultConn, repo, recorder.connect, time.Second), defaultConn, repo
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("Should return the default connection for an empty selector", func(t *testing.T) {
		recorder := &connectorRecorder{}
		resolver, defaultConn, _ := resolverForTest(t, recorder)
		conn, release, err := resolver.Resolve(t.Context(), cluster.Selector{})
		require.NoError(t, err)
		assert.Same(t, defaultConn, conn)
		assert.Empty(t, recorder.calls)
		release()
		assert.NoError(t, defaultConn.Ping(t.Context()), "release must not close the default connection")
	})
	t.Run("Should treat the default sentinel like an empty selector", func(t *testing.T) {
		recorder := &connectorRecorder{}
		resolver, defaultConn, _ := resolverForTest(t, recorder)
		conn, release, err := resolver.Resolve(t.Context(), cluster.Selector{Cluster: "default"})
		require.NoError(t, err)
		assert.Same(t, defaultConn, conn)
		assert.Empty(t, recorder.calls)
		release()
	})
	t.Run("Should dial the stored URI for a registered name", func(t *testing.T) {
		recorder := &connectorRecorder{}
		resolver, _, repo := resolverForTest(t, recorder)
		reg := &model.Cluster{Name: "west", URI: "mongodb://west.example.com:27017"}
		require.NoError(t, repo.CreateCluster(t.Context(), reg))
		conn, release, err := resolver.Resolve(t.Context(), cluster.Selector{Cluster: "west"})
		require.NoError(t, err)
		require.NotNil(t, conn)
		assert.Equal(t, []string{"mongodb://west.example.com:27017"}, recorder.calls)
		release()
		assert.Error(t, conn.Ping(t.Context()), "release must close a dialed connection")
	})
	t.Run("Should fail with ErrClusterNotFound and never dial for an unknown name", func(t *testing.T) {
		recorder := &connectorRecorder{}
		resolver, _, _ := resolverForTest(t, recorder)
		_, _, err := resolver.Resolve(t.Context(), cluster.Selector{Cluster: "missing-name"})
		assert.ErrorIs(t, err, uc.ErrClusterNotFound)
		assert.Empty(t, recorder.calls)
	})
	t.Run("Should treat a selector containing :// as a raw URI and bypass the registry", func(t *testing.T) {
		recorder := &connectorRecorder{}
		resolver, _, _ := resolverForTest(t, recorder)
		conn, release, err := resolver.Resolve(t.Context(), cluster.Selector{Cluster: "mongodb://raw.example.com:27017"})
		require.NoError(t, err)
		require.NotNil(t, conn)
		assert.Equal(t, []string{"mongodb://raw.example.com:27017"}, recorder.calls)
		release()
	})
	t.Run("Should wrap dial failures with a backend error code", func(t *testing.T) {
		recorder := &connectorRecorder{err: errors.New("connection refused")}
		resolver, _, repo := resolverForTest(t, recorder)
		reg := &model.Cluster{Name: "west", URI: "mongodb://west.example.com:27017"}
		require.NoError(t, repo.CreateCluster(t.Context(), reg))
		_, _, err := resolver.Resolve(t.Context(), cluster.Selector{Cluster: "west"})
		require.Error(t, err)
		var coreErr *core.Error
		require.ErrorAs(t, err, &coreErr)
		assert.Equal(t, core.ErrCodeBackend, coreErr.Code)
	})
}

func TestSelector_Defaults(t *testing.T) {
	t.Run("Should fall back to the configured names only when unset", func(t *testing.T) {
		sel := cluster.Selector{}
		assert.Equal(t, "railway_db", sel.DatabaseOr("railway_db"))
		assert.Equal(t, "items", sel.CollectionOr("items"))
		sel = cluster.Selector{Database: "tenants", Collection: "orders"}
		assert.Equal(t, "tenants", sel.DatabaseOr("railway_db"))
		assert.Equal(t, "orders", sel.CollectionOr("items"))
	})
}
