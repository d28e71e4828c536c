package uc_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster"
	clusteruc "github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/engine/document/uc"
	"github.com/docbridge/docbridge/pkg/config"
	"github.com/docbridge/docbridge/pkg/logger"
)

type stubResolver struct {
	conn  backend.Conn
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, _ cluster.Selector) (backend.Conn, func(), error) {
	s.calls++
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.conn, func() {}, nil
}

type stubLoader struct {
	docs  []core.Document
	err   error
	calls int
}

func (s *stubLoader) Load(_ context.Context, _ string) ([]core.Document, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := logger.ContextWithLogger(t.Context(), logger.NewForTests())
	return config.ContextWithConfig(ctx, config.Default())
}

// defaultCollection returns the collection every blank selector falls back to.
func defaultCollection(conn backend.Conn) backend.Collection {
	return conn.Database("railway_db").Collection("items")
}

func factoryForTest(t *testing.T) (*uc.Factory, *stubResolver, backend.Conn, context.Context) {
	t.Helper()
	conn := backend.NewMemoryConn()
	resolver := &stubResolver{conn: conn}
	return uc.NewFactory(resolver, &stubLoader{}), resolver, conn, testContext(t)
}

func TestInsertOne(t *testing.T) {
	t.Run("Should insert a document and return its stored form", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		doc, err := factory.InsertOne(&uc.InsertOneInput{
			Document: core.Document{"name": "ada"},
		}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ada", doc["name"])
		assert.NotContains(t, doc, "_id")
		id, ok := doc["id"].(string)
		require.True(t, ok)
		stored, err := defaultCollection(conn).FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, doc, stored)
	})

	t.Run("Should reject a nil document without resolving a connection", func(t *testing.T) {
		factory, resolver, _, ctx := factoryForTest(t)
		_, err := factory.InsertOne(&uc.InsertOneInput{}).Execute(ctx)
		var coreErr *core.Error
		require.ErrorAs(t, err, &coreErr)
		assert.Equal(t, core.ErrCodeValidation, coreErr.Code)
		assert.Zero(t, resolver.calls)
	})

	t.Run("Should honor the selector's database and collection", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		_, err := factory.InsertOne(&uc.InsertOneInput{
			Selector: cluster.Selector{Database: "warehouse", Collection: "crates"},
			Document: core.Document{"name": "ada"},
		}).Execute(ctx)
		require.NoError(t, err)
		docs, err := conn.Database("warehouse").Collection("crates").Find(ctx, nil, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
		empty, err := defaultCollection(conn).Find(ctx, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestListDocuments(t *testing.T) {
	seed := func(t *testing.T, ctx context.Context, conn backend.Conn, n int) {
		t.Helper()
		docs := make([]core.Document, 0, n)
		for i := 0; i < n; i++ {
			docs = append(docs, core.Document{"seq": fmt.Sprintf("%03d", i)})
		}
		_, err := defaultCollection(conn).InsertMany(ctx, docs)
		require.NoError(t, err)
	}

	t.Run("Should list every document when under the cap", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		seed(t, ctx, conn, 3)
		docs, err := factory.ListDocuments(&uc.ListDocumentsInput{}).Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("Should apply an explicit limit", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		seed(t, ctx, conn, 3)
		docs, err := factory.ListDocuments(&uc.ListDocumentsInput{Limit: 2}).Execute(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("Should clamp out-of-range limits to the cap", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		seed(t, ctx, conn, uc.MaxListLimit+5)
		for _, limit := range []int64{0, -1, uc.MaxListLimit + 50} {
			docs, err := factory.ListDocuments(&uc.ListDocumentsInput{Limit: limit}).Execute(ctx)
			require.NoError(t, err)
			assert.Len(t, docs, uc.MaxListLimit)
		}
	})
}

func TestQueryOne(t *testing.T) {
	t.Run("Should return the first document matching the filter", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		_, err := defaultCollection(conn).InsertMany(ctx, []core.Document{
			{"kind": "fruit", "name": "apple"},
			{"kind": "tool", "name": "hammer"},
		})
		require.NoError(t, err)
		doc, err := factory.QueryOne(&uc.QueryOneInput{
			Filter: core.Document{"kind": "tool"},
		}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "hammer", doc["name"])
	})

	t.Run("Should report a miss as item not found", func(t *testing.T) {
		factory, _, _, ctx := factoryForTest(t)
		_, err := factory.QueryOne(&uc.QueryOneInput{
			Filter: core.Document{"kind": "ghost"},
		}).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrDocumentNotFound)
	})
}

func TestInsertMany(t *testing.T) {
	t.Run("Should insert documents in order with distinct ids", func(t *testing.T) {
		factory, _, _, ctx := factoryForTest(t)
		docs, err := factory.InsertMany(&uc.InsertManyInput{
			Documents: []core.Document{{"name": "first"}, {"name": "second"}},
		}).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "first", docs[0]["name"])
		assert.Equal(t, "second", docs[1]["name"])
		assert.NotEqual(t, docs[0]["id"], docs[1]["id"])
	})

	t.Run("Should reject an empty batch without resolving a connection", func(t *testing.T) {
		factory, resolver, _, ctx := factoryForTest(t)
		_, err := factory.InsertMany(&uc.InsertManyInput{}).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrEmptyBatch)
		assert.Zero(t, resolver.calls)
	})
}

func TestUpdateOne(t *testing.T) {
	insertItem := func(t *testing.T, ctx context.Context, conn backend.Conn) core.Document {
		t.Helper()
		doc, err := defaultCollection(conn).InsertOne(ctx, core.Document{"name": "ada", "city": "london"})
		require.NoError(t, err)
		return doc
	}

	t.Run("Should merge the patch and return the post-update document", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		seeded := insertItem(t, ctx, conn)
		doc, err := factory.UpdateOne(&uc.UpdateOneInput{
			ID:    seeded["id"].(string),
			Patch: core.Document{"city": "paris"},
		}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "paris", doc["city"])
		assert.Equal(t, "ada", doc["name"])
	})

	t.Run("Should strip null fields before applying the patch", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		seeded := insertItem(t, ctx, conn)
		doc, err := factory.UpdateOne(&uc.UpdateOneInput{
			ID:    seeded["id"].(string),
			Patch: core.Document{"city": nil, "name": "lovelace"},
		}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "london", doc["city"])
		assert.Equal(t, "lovelace", doc["name"])
	})

	t.Run("Should reject an all-null patch without resolving a connection", func(t *testing.T) {
		factory, resolver, _, ctx := factoryForTest(t)
		_, err := factory.UpdateOne(&uc.UpdateOneInput{
			ID:    bson.NewObjectID().Hex(),
			Patch: core.Document{"city": nil},
		}).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrEmptyUpdate)
		assert.Zero(t, resolver.calls)
	})

	t.Run("Should report an unchanged patch as item not found", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		seeded := insertItem(t, ctx, conn)
		_, err := factory.UpdateOne(&uc.UpdateOneInput{
			ID:    seeded["id"].(string),
			Patch: core.Document{"city": "london"},
		}).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrDocumentNotFound)
	})

	t.Run("Should report a missing id as item not found", func(t *testing.T) {
		factory, _, _, ctx := factoryForTest(t)
		_, err := factory.UpdateOne(&uc.UpdateOneInput{
			ID:    bson.NewObjectID().Hex(),
			Patch: core.Document{"city": "paris"},
		}).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrDocumentNotFound)
	})

	t.Run("Should reject a malformed id as a validation error", func(t *testing.T) {
		factory, _, _, ctx := factoryForTest(t)
		_, err := factory.UpdateOne(&uc.UpdateOneInput{
			ID:    "not-a-hex-id",
			Patch: core.Document{"city": "paris"},
		}).Execute(ctx)
		var coreErr *core.Error
		require.ErrorAs(t, err, &coreErr)
		assert.Equal(t, core.ErrCodeValidation, coreErr.Code)
	})
}

func TestDeleteOne(t *testing.T) {
	t.Run("Should delete the addressed document exactly once", func(t *testing.T) {
		factory, _, conn, ctx := factoryForTest(t)
		seeded, err := defaultCollection(conn).InsertOne(ctx, core.Document{"name": "ada"})
		require.NoError(t, err)
		id := seeded["id"].(string)
		require.NoError(t, factory.DeleteOne(&uc.DeleteOneInput{ID: id}).Execute(ctx))
		err = factory.DeleteOne(&uc.DeleteOneInput{ID: id}).Execute(ctx)
		assert.ErrorIs(t, err, uc.ErrDocumentNotFound)
	})

	t.Run("Should reject a malformed id as a validation error", func(t *testing.T) {
		factory, _, _, ctx := factoryForTest(t)
		err := factory.DeleteOne(&uc.DeleteOneInput{ID: "not-a-hex-id"}).Execute(ctx)
		var coreErr *core.Error
		require.ErrorAs(t, err, &coreErr)
		assert.Equal(t, core.ErrCodeValidation, coreErr.Code)
	})
}

func TestResolverErrors(t *testing.T) {
	t.Run("Should pass resolver failures through untouched", func(t *testing.T) {
		resolver := &stubResolver{err: clusteruc.ErrClusterNotFound}
		factory := uc.NewFactory(resolver, &stubLoader{})
		_, err := factory.ListDocuments(&uc.ListDocumentsInput{
			Selector: cluster.Selector{Cluster: "ghost"},
		}).Execute(testContext(t))
		assert.ErrorIs(t, err, clusteruc.ErrClusterNotFound)
	})
}
