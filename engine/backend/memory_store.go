package backend

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/docbridge/docbridge/engine/core"
)

// MemoryConn is an in-memory Conn implementation. It is safe for concurrent
// use and intended for dev/tests. Identifiers follow the same hex format as
// the MongoDB backend so both implementations reject the same inputs, and
// UpdateByID mirrors its modified-count semantics: setting fields to values
// a document already carries reports ErrNotFound.
type MemoryConn struct {
	mu     sync.RWMutex
	dbs    map[string]map[string][]core.Document
	closed bool
}

// NewMemoryConn constructs an empty MemoryConn.
func NewMemoryConn() *MemoryConn {
	return &MemoryConn{dbs: make(map[string]map[string][]core.Document)}
}

func (c *MemoryConn) Database(name string) Database {
	return &memoryDatabase{conn: c, name: name}
}

func (c *MemoryConn) ListDatabaseNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context canceled: %w", err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, fmt.Errorf("connection is closed")
	}
	names := make([]string, 0, len(c.dbs))
	for name := range c.dbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *MemoryConn) DropDatabase(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("connection is closed")
	}
	delete(c.dbs, name)
	return nil
}

func (c *MemoryConn) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return fmt.Errorf("connection is closed")
	}
	return nil
}

func (c *MemoryConn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// lookup returns the raw document slice for a collection. Callers must hold
// at least the read lock. Missing databases or collections yield nil.
func (c *MemoryConn) lookup(db, coll string) []core.Document {
	return c.dbs[db][coll]
}

// appendDocs stores documents in a collection, creating the database and
// collection lazily. Callers must hold the write lock.
func (c *MemoryConn) appendDocs(db, coll string, docs ...core.Document) {
	colls, ok := c.dbs[db]
	if !ok {
		colls = make(map[string][]core.Document)
		c.dbs[db] = colls
	}
	colls[coll] = append(colls[coll], docs...)
}

// setDocs replaces a collection's documents. Callers must hold the write lock.
func (c *MemoryConn) setDocs(db, coll string, docs []core.Document) {
	if colls, ok := c.dbs[db]; ok {
		colls[coll] = docs
	}
}

type memoryDatabase struct {
	conn *MemoryConn
	name string
}

func (d *memoryDatabase) Collection(name string) Collection {
	return &memoryCollection{conn: d.conn, db: d.name, name: name}
}

func (d *memoryDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context canceled: %w", err)
	}
	d.conn.mu.RLock()
	defer d.conn.mu.RUnlock()
	if d.conn.closed {
		return nil, fmt.Errorf("connection is closed")
	}
	colls := d.conn.dbs[d.name]
	names := make([]string, 0, len(colls))
	for name := range colls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (d *memoryDatabase) DropCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	d.conn.mu.Lock()
	defer d.conn.mu.Unlock()
	if d.conn.closed {
		return fmt.Errorf("connection is closed")
	}
	if colls, ok := d.conn.dbs[d.name]; ok {
		delete(colls, name)
	}
	return nil
}

type memoryCollection struct {
	conn *MemoryConn
	db   string
	name string
}

func (m *memoryCollection) InsertOne(ctx context.Context, doc core.Document) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context canceled: %w", err)
	}
	stored, err := storedForm(doc)
	if err != nil {
		return nil, err
	}
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	if m.conn.closed {
		return nil, fmt.Errorf("connection is closed")
	}
	m.conn.appendDocs(m.db, m.name, stored)
	return core.DeepCopy(stored)
}

func (m *memoryCollection) InsertMany(ctx context.Context, docs []core.Document) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context canceled: %w", err)
	}
	stored := make([]core.Document, 0, len(docs))
	for _, doc := range docs {
		cp, err := storedForm(doc)
		if err != nil {
			return nil, err
		}
		stored = append(stored, cp)
	}
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	if m.conn.closed {
		return nil, fmt.Errorf("connection is closed")
	}
	m.conn.appendDocs(m.db, m.name, stored...)
	out := make([]core.Document, 0, len(stored))
	for _, doc := range stored {
		cp, err := core.DeepCopy(doc)
		if err != nil {
			return nil, fmt.Errorf("deep copy failed: %w", err)
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *memoryCollection) Find(ctx context.Context, filter core.Document, limit int64) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context canceled: %w", err)
	}
	m.conn.mu.RLock()
	defer m.conn.mu.RUnlock()
	if m.conn.closed {
		return nil, fmt.Errorf("connection is closed")
	}
	out := make([]core.Document, 0)
	for _, doc := range m.conn.lookup(m.db, m.name) {
		if !matchesFilter(doc, filter) {
			continue
		}
		cp, err := core.DeepCopy(doc)
		if err != nil {
			return nil, fmt.Errorf("deep copy failed: %w", err)
		}
		out = append(out, cp)
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memoryCollection) FindOne(ctx context.Context, filter core.Document) (core.Document, error) {
	docs, err := m.Find(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

func (m *memoryCollection) FindByID(ctx context.Context, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context canceled: %w", err)
	}
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}
	m.conn.mu.RLock()
	defer m.conn.mu.RUnlock()
	if m.conn.closed {
		return nil, fmt.Errorf("connection is closed")
	}
	for _, doc := range m.conn.lookup(m.db, m.name) {
		if doc.ID() == id {
			return core.DeepCopy(doc)
		}
	}
	return nil, ErrNotFound
}

func (m *memoryCollection) UpdateByID(ctx context.Context, id string, fields core.Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	if _, err := parseObjectID(id); err != nil {
		return err
	}
	patch, err := core.DeepCopy(fields)
	if err != nil {
		return fmt.Errorf("deep copy failed: %w", err)
	}
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	if m.conn.closed {
		return fmt.Errorf("connection is closed")
	}
	docs := m.conn.lookup(m.db, m.name)
	for i, doc := range docs {
		if doc.ID() != id {
			continue
		}
		merged, err := core.DeepCopy(doc)
		if err != nil {
			return fmt.Errorf("deep copy failed: %w", err)
		}
		for k, v := range patch {
			merged[k] = v
		}
		if reflect.DeepEqual(merged, doc) {
			return ErrNotFound
		}
		docs[i] = merged
		return nil
	}
	return ErrNotFound
}

func (m *memoryCollection) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	if _, err := parseObjectID(id); err != nil {
		return err
	}
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	if m.conn.closed {
		return fmt.Errorf("connection is closed")
	}
	docs := m.conn.lookup(m.db, m.name)
	for i, doc := range docs {
		if doc.ID() != id {
			continue
		}
		m.conn.setDocs(m.db, m.name, append(docs[:i:i], docs[i+1:]...))
		return nil
	}
	return ErrNotFound
}

func (m *memoryCollection) Drop(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	if m.conn.closed {
		return fmt.Errorf("connection is closed")
	}
	if colls, ok := m.conn.dbs[m.db]; ok {
		delete(colls, m.name)
	}
	return nil
}

// storedForm deep-copies doc and assigns its identifier. A native _id field
// takes over as the identifier the way the MongoDB backend treats it.
func storedForm(doc core.Document) (core.Document, error) {
	cp, err := core.DeepCopy(doc)
	if err != nil {
		return nil, fmt.Errorf("deep copy failed: %w", err)
	}
	if cp == nil {
		cp = core.Document{}
	}
	if nativeID, ok := cp["_id"]; ok {
		delete(cp, "_id")
		cp[core.IDKey] = idToString(nativeID)
		return cp, nil
	}
	cp[core.IDKey] = bson.NewObjectID().Hex()
	return cp, nil
}

// matchesFilter reports whether doc carries every filter field with an equal
// value. Matching is top-level equality; operator expressions are not
// interpreted.
func matchesFilter(doc, filter core.Document) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
