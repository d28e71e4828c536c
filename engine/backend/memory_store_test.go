package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/docbridge/docbridge/engine/core"
)

func testCollection(t *testing.T) (Collection, *MemoryConn) {
	t.Helper()
	conn := NewMemoryConn()
	return conn.Database("railway_db").Collection("items"), conn
}

func TestMemoryCollection_InsertOne(t *testing.T) {
	t.Run("Should assign an identifier and return the stored form", func(t *testing.T) {
		coll, _ := testCollection(t)
		doc, err := coll.InsertOne(t.Context(), core.Document{"name": "widget", "size": 3})
		require.NoError(t, err)
		require.NotEmpty(t, doc.ID())
		assert.Equal(t, "widget", doc["name"])
		_, err = bson.ObjectIDFromHex(doc.ID())
		assert.NoError(t, err, "identifiers follow the hex object id format")
	})
	t.Run("Should not share state with the caller or the store", func(t *testing.T) {
		coll, _ := testCollection(t)
		in := core.Document{"name": "widget", "tags": []any{"a"}}
		doc, err := coll.InsertOne(t.Context(), in)
		require.NoError(t, err)
		in["name"] = "mutated"
		doc["name"] = "also mutated"
		got, err := coll.FindByID(t.Context(), doc.ID())
		require.NoError(t, err)
		assert.Equal(t, "widget", got["name"])
	})
	t.Run("Should adopt a native _id as the public identifier", func(t *testing.T) {
		coll, _ := testCollection(t)
		doc, err := coll.InsertOne(t.Context(), core.Document{"_id": "custom-key", "name": "widget"})
		require.NoError(t, err)
		assert.Equal(t, "custom-key", doc.ID())
		_, hasRaw := doc["_id"]
		assert.False(t, hasRaw)
	})
}

func TestMemoryCollection_InsertMany(t *testing.T) {
	t.Run("Should store documents in order with distinct identifiers", func(t *testing.T) {
		coll, _ := testCollection(t)
		docs, err := coll.InsertMany(t.Context(), []core.Document{
			{"name": "one"},
			{"name": "two"},
			{"name": "three"},
		})
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "one", docs[0]["name"])
		assert.Equal(t, "three", docs[2]["name"])
		assert.NotEqual(t, docs[0].ID(), docs[1].ID())
	})
	t.Run("Should accept an empty batch", func(t *testing.T) {
		coll, _ := testCollection(t)
		docs, err := coll.InsertMany(t.Context(), nil)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestMemoryCollection_Find(t *testing.T) {
	t.Run("Should match on top-level field equality", func(t *testing.T) {
		coll, _ := testCollection(t)
		seedDocs(t, coll,
			core.Document{"name": "widget", "color": "red"},
			core.Document{"name": "widget", "color": "blue"},
			core.Document{"name": "gadget", "color": "red"},
		)
		docs, err := coll.Find(t.Context(), core.Document{"name": "widget"}, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
		docs, err = coll.Find(t.Context(), core.Document{"name": "widget", "color": "blue"}, 0)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "blue", docs[0]["color"])
	})
	t.Run("Should return every document for a nil filter", func(t *testing.T) {
		coll, _ := testCollection(t)
		seedDocs(t, coll, core.Document{"n": 1}, core.Document{"n": 2})
		docs, err := coll.Find(t.Context(), nil, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
	t.Run("Should cap results at the given limit", func(t *testing.T) {
		coll, _ := testCollection(t)
		for i := 0; i < 5; i++ {
			seedDocs(t, coll, core.Document{"n": i})
		}
		docs, err := coll.Find(t.Context(), nil, 3)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})
	t.Run("Should return no documents for a collection that does not exist", func(t *testing.T) {
		conn := NewMemoryConn()
		docs, err := conn.Database("nowhere").Collection("nothing").Find(t.Context(), nil, 0)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestMemoryCollection_FindOne(t *testing.T) {
	t.Run("Should return a matching document", func(t *testing.T) {
		coll, _ := testCollection(t)
		seedDocs(t, coll, core.Document{"name": "widget"})
		doc, err := coll.FindOne(t.Context(), core.Document{"name": "widget"})
		require.NoError(t, err)
		assert.Equal(t, "widget", doc["name"])
	})
	t.Run("Should return ErrNotFound when nothing matches", func(t *testing.T) {
		coll, _ := testCollection(t)
		seedDocs(t, coll, core.Document{"name": "widget"})
		_, err := coll.FindOne(t.Context(), core.Document{"name": "missing"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryCollection_FindByID(t *testing.T) {
	t.Run("Should return ErrInvalidID for a malformed identifier", func(t *testing.T) {
		coll, _ := testCollection(t)
		_, err := coll.FindByID(t.Context(), "not-a-hex-id")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
	t.Run("Should return ErrNotFound for an unknown identifier", func(t *testing.T) {
		coll, _ := testCollection(t)
		_, err := coll.FindByID(t.Context(), bson.NewObjectID().Hex())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryCollection_UpdateByID(t *testing.T) {
	t.Run("Should merge fields into the stored document", func(t *testing.T) {
		coll, _ := testCollection(t)
		doc, err := coll.InsertOne(t.Context(), core.Document{"name": "widget", "size": 3})
		require.NoError(t, err)
		require.NoError(t, coll.UpdateByID(t.Context(), doc.ID(), core.Document{"size": 5, "color": "red"}))
		got, err := coll.FindByID(t.Context(), doc.ID())
		require.NoError(t, err)
		assert.Equal(t, "widget", got["name"])
		assert.Equal(t, 5, got["size"])
		assert.Equal(t, "red", got["color"])
	})
	t.Run("Should report ErrNotFound when the document already carries the values", func(t *testing.T) {
		coll, _ := testCollection(t)
		doc, err := coll.InsertOne(t.Context(), core.Document{"name": "widget"})
		require.NoError(t, err)
		err = coll.UpdateByID(t.Context(), doc.ID(), core.Document{"name": "widget"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("Should report ErrNotFound for an unknown identifier", func(t *testing.T) {
		coll, _ := testCollection(t)
		err := coll.UpdateByID(t.Context(), bson.NewObjectID().Hex(), core.Document{"name": "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("Should report ErrInvalidID for a malformed identifier", func(t *testing.T) {
		coll, _ := testCollection(t)
		err := coll.UpdateByID(t.Context(), "zzz", core.Document{"name": "x"})
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestMemoryCollection_DeleteByID(t *testing.T) {
	t.Run("Should remove the document once", func(t *testing.T) {
		coll, _ := testCollection(t)
		doc, err := coll.InsertOne(t.Context(), core.Document{"name": "widget"})
		require.NoError(t, err)
		require.NoError(t, coll.DeleteByID(t.Context(), doc.ID()))
		err = coll.DeleteByID(t.Context(), doc.ID())
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = coll.FindByID(t.Context(), doc.ID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryConn_Admin(t *testing.T) {
	t.Run("Should list databases and collections in sorted order", func(t *testing.T) {
		conn := NewMemoryConn()
		seedDocs(t, conn.Database("beta").Collection("two"), core.Document{"n": 1})
		seedDocs(t, conn.Database("alpha").Collection("one"), core.Document{"n": 1})
		seedDocs(t, conn.Database("alpha").Collection("zeta"), core.Document{"n": 1})
		dbs, err := conn.ListDatabaseNames(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta"}, dbs)
		colls, err := conn.Database("alpha").ListCollectionNames(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "zeta"}, colls)
	})
	t.Run("Should drop databases and collections idempotently", func(t *testing.T) {
		conn := NewMemoryConn()
		db := conn.Database("alpha")
		seedDocs(t, db.Collection("one"), core.Document{"n": 1})
		require.NoError(t, db.DropCollection(t.Context(), "one"))
		require.NoError(t, db.DropCollection(t.Context(), "one"))
		require.NoError(t, conn.DropDatabase(t.Context(), "alpha"))
		require.NoError(t, conn.DropDatabase(t.Context(), "never-existed"))
		dbs, err := conn.ListDatabaseNames(t.Context())
		require.NoError(t, err)
		assert.Empty(t, dbs)
	})
	t.Run("Should drop a collection through its handle", func(t *testing.T) {
		conn := NewMemoryConn()
		coll := conn.Database("alpha").Collection("one")
		seedDocs(t, coll, core.Document{"n": 1})
		require.NoError(t, coll.Drop(t.Context()))
		docs, err := coll.Find(t.Context(), nil, 0)
		require.NoError(t, err)
		assert.Empty(t, docs)
		require.NoError(t, coll.Drop(t.Context()))
	})
}

func TestMemoryConn_Lifecycle(t *testing.T) {
	t.Run("Should error on every operation after Close", func(t *testing.T) {
		conn := NewMemoryConn()
		coll := conn.Database("d").Collection("c")
		require.NoError(t, conn.Close(t.Context()))
		require.Error(t, conn.Ping(t.Context()))
		_, err := coll.InsertOne(t.Context(), core.Document{"n": 1})
		require.Error(t, err)
		_, err = coll.Find(t.Context(), nil, 0)
		require.Error(t, err)
		_, err = conn.ListDatabaseNames(t.Context())
		require.Error(t, err)
	})
	t.Run("Should error on context canceled", func(t *testing.T) {
		conn := NewMemoryConn()
		coll := conn.Database("d").Collection("c")
		cctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := coll.Find(cctx, nil, 0)
		require.Error(t, err)
		_, err = coll.InsertOne(cctx, core.Document{"n": 1})
		require.Error(t, err)
	})
}

func seedDocs(t *testing.T, coll Collection, docs ...core.Document) {
	t.Helper()
	for _, doc := range docs {
		_, err := coll.InsertOne(t.Context(), doc)
		require.NoError(t, err)
	}
}
