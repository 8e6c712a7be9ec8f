package docstore

import (
	"context"

	"github.com/arcynforge/forge-backend/internal/metrics"
)

// instrumentedStore counts every operation against the wrapped backend.
type instrumentedStore struct {
	inner Store
}

// Instrument wraps a store so each operation increments the docstore
// operation counter with the backend name, operation and outcome.
func Instrument(s Store) Store {
	return &instrumentedStore{inner: s}
}

func (m *instrumentedStore) Insert(ctx context.Context, collection string, doc Document) (ID, error) {
	id, err := m.inner.Insert(ctx, collection, doc)
	metrics.ObserveStoreOperation(m.inner.Name(), "insert", err)
	return id, err
}

func (m *instrumentedStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	docs, err := m.inner.Find(ctx, collection, filter, limit)
	metrics.ObserveStoreOperation(m.inner.Name(), "find", err)
	return docs, err
}

func (m *instrumentedStore) Get(ctx context.Context, collection string, id ID) (Document, error) {
	doc, err := m.inner.Get(ctx, collection, id)
	metrics.ObserveStoreOperation(m.inner.Name(), "get", err)
	return doc, err
}

func (m *instrumentedStore) Update(ctx context.Context, collection string, id ID, fields Document) (Document, error) {
	doc, err := m.inner.Update(ctx, collection, id, fields)
	metrics.ObserveStoreOperation(m.inner.Name(), "update", err)
	return doc, err
}

func (m *instrumentedStore) Count(ctx context.Context, collection string) (int64, error) {
	n, err := m.inner.Count(ctx, collection)
	metrics.ObserveStoreOperation(m.inner.Name(), "count", err)
	return n, err
}

func (m *instrumentedStore) Collections(ctx context.Context) ([]string, error) {
	names, err := m.inner.Collections(ctx)
	metrics.ObserveStoreOperation(m.inner.Name(), "collections", err)
	return names, err
}

func (m *instrumentedStore) Ping(ctx context.Context) error {
	err := m.inner.Ping(ctx)
	metrics.ObserveStoreOperation(m.inner.Name(), "ping", err)
	return err
}

func (m *instrumentedStore) Name() string { return m.inner.Name() }

func (m *instrumentedStore) Close() error { return m.inner.Close() }
