package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	docKeyPrefix      = "doc:"        // Document payload: doc:{collection}:{id}
	indexKeyPrefix    = "doc-index:"  // Insertion-order list of IDs: doc-index:{collection}
	collectionsSetKey = "collections" // Set of collection names seen so far
)

// RedisStore keeps each document as a JSON value and tracks insertion order
// with a per-collection index list.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using a redis:// or rediss:// URL and
// verifies the connection.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client. Tests use this with
// miniredis.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Insert persists the document under a fresh ID and appends the ID to the
// collection index.
func (s *RedisStore) Insert(ctx context.Context, collection string, doc Document) (ID, error) {
	id := NewID()

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(collection, id), payload, 0)
	pipe.RPush(ctx, s.indexKey(collection), id.String())
	pipe.SAdd(ctx, collectionsSetKey, collection)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Find walks the collection index in insertion order and returns up to limit
// documents matching the filter.
func (s *RedisStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	limit = ClampLimit(limit)

	ids, err := s.client.LRange(ctx, s.indexKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read collection index: %w", err)
	}

	docs := make([]Document, 0, min(limit, len(ids)))
	for _, raw := range ids {
		if len(docs) == limit {
			break
		}
		id := ID(raw)
		data, err := s.client.Get(ctx, s.docKey(collection, id)).Result()
		if err == redis.Nil {
			// Index entry without a payload; nothing deletes documents, so
			// this only happens on a torn manual cleanup. Skip it.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get document %s: %w", id, err)
		}
		doc, err := decodeDocument([]byte(data), id)
		if err != nil {
			return nil, err
		}
		if !filter.Matches(doc) {
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (s *RedisStore) Get(ctx context.Context, collection string, id ID) (Document, error) {
	data, err := s.client.Get(ctx, s.docKey(collection, id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return decodeDocument([]byte(data), id)
}

// Update merges fields into the stored document. This is a read-merge-write
// without a watch: concurrent writers race and the last write wins.
func (s *RedisStore) Update(ctx context.Context, collection string, id ID, fields Document) (Document, error) {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}

	delete(doc, IDField)
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := s.client.Set(ctx, s.docKey(collection, id), payload, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	doc[IDField] = id
	return doc, nil
}

func (s *RedisStore) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.client.LLen(ctx, s.indexKey(collection)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

func (s *RedisStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, collectionsSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) Close() error { return s.client.Close() }

// Helper methods for key generation
func (s *RedisStore) docKey(collection string, id ID) string {
	return fmt.Sprintf("%s%s:%s", docKeyPrefix, collection, id)
}

func (s *RedisStore) indexKey(collection string) string {
	return fmt.Sprintf("%s%s", indexKeyPrefix, collection)
}
