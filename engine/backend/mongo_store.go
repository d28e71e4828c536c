package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/docbridge/docbridge/engine/core"
)

// Connect dials a MongoDB-compatible deployment at uri and verifies it is
// reachable. The URI may carry credentials, so it is never echoed in errors.
func Connect(ctx context.Context, uri string, timeout time.Duration) (Conn, error) {
	if uri == "" {
		return nil, fmt.Errorf("connection uri is required")
	}
	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts.SetConnectTimeout(timeout)
		opts.SetServerSelectionTimeout(timeout)
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("deployment unreachable: %w", err)
	}
	return &mongoConn{client: client}, nil
}

type mongoConn struct {
	client *mongo.Client
}

func (c *mongoConn) Database(name string) Database {
	return &mongoDatabase{db: c.client.Database(name)}
}

func (c *mongoConn) ListDatabaseNames(ctx context.Context) ([]string, error) {
	names, err := c.client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	return names, nil
}

func (c *mongoConn) DropDatabase(ctx context.Context, name string) error {
	if err := c.client.Database(name).Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop database %q: %w", name, err)
	}
	return nil
}

func (c *mongoConn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c *mongoConn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

type mongoDatabase struct {
	db *mongo.Database
}

func (d *mongoDatabase) Collection(name string) Collection {
	return &mongoCollection{coll: d.db.Collection(name)}
}

func (d *mongoDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := d.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

func (d *mongoDatabase) DropCollection(ctx context.Context, name string) error {
	if err := d.db.Collection(name).Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop collection %q: %w", name, err)
	}
	return nil
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc core.Document) (core.Document, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}
	var raw bson.M
	if err := c.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to read back inserted document: %w", err)
	}
	return normalizeDocument(raw), nil
}

func (c *mongoCollection) InsertMany(ctx context.Context, docs []core.Document) ([]core.Document, error) {
	payload := make([]any, len(docs))
	for i := range docs {
		payload[i] = docs[i]
	}
	res, err := c.coll.InsertMany(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}
	cursor, err := c.coll.Find(ctx, bson.M{"_id": bson.M{"$in": res.InsertedIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to read back inserted documents: %w", err)
	}
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read back inserted documents: %w", err)
	}
	// The $in read-back does not promise insertion order, so reorder by the
	// assigned ids before returning.
	byID := make(map[string]core.Document, len(raw))
	for _, doc := range raw {
		normalized := normalizeDocument(doc)
		byID[normalized.ID()] = normalized
	}
	out := make([]core.Document, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		if doc, ok := byID[idToString(id)]; ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (c *mongoCollection) Find(ctx context.Context, filter core.Document, limit int64) ([]core.Document, error) {
	if filter == nil {
		filter = core.Document{}
	}
	opts := options.Find()
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find failed: %w", err)
	}
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	out := make([]core.Document, 0, len(raw))
	for _, doc := range raw {
		out = append(out, normalizeDocument(doc))
	}
	return out, nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter core.Document) (core.Document, error) {
	if filter == nil {
		filter = core.Document{}
	}
	var raw bson.M
	if err := c.coll.FindOne(ctx, filter).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find failed: %w", err)
	}
	return normalizeDocument(raw), nil
}

func (c *mongoCollection) FindByID(ctx context.Context, id string) (core.Document, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	if err := c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find failed: %w", err)
	}
	return normalizeDocument(raw), nil
}

func (c *mongoCollection) UpdateByID(ctx context.Context, id string, fields core.Document) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Drop(ctx context.Context) error {
	if err := c.coll.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return nil
}

func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// normalizeDocument rewrites the native _id into the public string "id"
// field. A stored "id" field is shadowed so exactly one identifier remains.
func normalizeDocument(raw bson.M) core.Document {
	doc := core.Document(raw)
	if nativeID, ok := doc["_id"]; ok {
		delete(doc, "_id")
		doc[core.IDKey] = idToString(nativeID)
	}
	return doc
}

func idToString(v any) string {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprintf("%v", id)
	}
}
