// Package docstore is the document-store boundary of the service. Repositories talk to a
// Collection[T]; the MongoDB driver backs it in production and the in-memory driver backs
// tests and local runs without a database.
package docstore

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNoID = errors.New("document has no _id")

// Filter matches documents whose fields equal the given values. A field holding an
// array matches when any element equals the value.
type Filter map[string]interface{}

type SortKey struct {
	Field string
	Desc  bool
}

type Query struct {
	Filter Filter
	Sort   []SortKey
	Skip   int
	Limit  int
}

// Update is a single atomic conditional update. Require and Exclude guard on set
// membership of an array field; the update only applies when every guard holds.
// A field must not appear in both Require and Exclude.
type Update struct {
	Require  map[string]string
	Exclude  map[string]string
	AddToSet map[string]string
	Pull     map[string]string
	Inc      map[string]int
	Set      map[string]interface{}
}

func (u Update) empty() bool {
	return len(u.AddToSet) == 0 && len(u.Pull) == 0 && len(u.Inc) == 0 && len(u.Set) == 0
}

type Index struct {
	Keys   []SortKey
	Unique bool
}

// Collection is the set of operations the repositories need from a document store.
type Collection[T any] interface {
	Name() string
	// Insert stores doc, which must carry its _id. Returns ErrDuplicate on id clash.
	Insert(ctx context.Context, doc *T) error
	// Get returns ErrNotFound when no document has the id.
	Get(ctx context.Context, id interface{}) (*T, error)
	Find(ctx context.Context, q Query) ([]T, error)
	// All reads the whole collection in storage order.
	All(ctx context.Context) ([]T, error)
	// Update reports whether a document matched the id and every guard.
	Update(ctx context.Context, id interface{}, u Update) (bool, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

// Database hands out collections on one backing store.
type Database struct {
	mongo *mongo.Database

	mu     sync.Mutex
	memory map[string]*memoryData
}

func FromMongo(db *mongo.Database) *Database {
	return &Database{mongo: db}
}

func NewMemoryDatabase() *Database {
	return &Database{memory: make(map[string]*memoryData)}
}

// Open returns the named collection, creating indexes when the store supports them.
func Open[T any](db *Database, name string, indexes ...Index) Collection[T] {
	if db.mongo != nil {
		return NewMongo[T](db.mongo, name, indexes...)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	data, ok := db.memory[name]
	if !ok {
		data = newMemoryData()
		db.memory[name] = data
	}
	return &Memory[T]{name: name, data: data}
}
