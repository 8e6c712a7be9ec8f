// Package docstore provides schemaless document persistence addressed by
// collection name, with interchangeable Redis and Postgres backends.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

const (
	// DefaultFindLimit applies when a caller requests no limit or a
	// non-positive one.
	DefaultFindLimit = 50
	// MaxFindLimit caps every Find regardless of the requested limit.
	MaxFindLimit = 200
)

// IDField is the key under which a document's identifier travels with the
// document on reads. Handlers rename it to a public "id" string for output.
const IDField = "_id"

// ErrNotFound signals that no document exists for the given identifier.
var ErrNotFound = errors.New("document not found")

// Document is a schemaless record as stored in a collection.
type Document = map[string]any

// Filter is an exact-match conjunction over top-level document fields.
type Filter map[string]any

// Store is the contract shared by all document store backends. Documents
// returned by reads carry their identifier under IDField. Find returns
// documents in insertion order; that order is the backends' behavior, not a
// guarantee callers may build on.
type Store interface {
	Insert(ctx context.Context, collection string, doc Document) (ID, error)
	Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error)
	Get(ctx context.Context, collection string, id ID) (Document, error)
	// Update merges fields into an existing document and returns the
	// post-update document.
	Update(ctx context.Context, collection string, id ID, fields Document) (Document, error)
	Count(ctx context.Context, collection string) (int64, error)
	Collections(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	// Name identifies the backend, e.g. "redis" or "postgres".
	Name() string
	Close() error
}

// ClampLimit normalizes a requested find limit: non-positive values fall back
// to DefaultFindLimit, anything above MaxFindLimit is capped.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultFindLimit
	}
	if limit > MaxFindLimit {
		return MaxFindLimit
	}
	return limit
}

// Public returns a copy of doc with the internal identifier renamed to a
// public "id" string field, the shape handlers send to clients.
func Public(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	if id, ok := doc[IDField].(ID); ok {
		out["id"] = id.String()
	}
	return out
}

// Matches reports whether every filter field equals the corresponding
// top-level document field. A nil or empty filter matches everything.
func (f Filter) Matches(doc Document) bool {
	for k, want := range f {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func decodeDocument(data []byte, id ID) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", id, err)
	}
	doc[IDField] = id
	return doc, nil
}
