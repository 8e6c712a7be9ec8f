package docstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	return NewRedisStoreWithClient(client)
}

func TestRedisStore_InsertAndGet(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	t.Run("round-trips a document", func(t *testing.T) {
		doc := Document{"name": "alpha", "language": "go", "tags": []string{"a", "b"}}

		id, err := store.Insert(ctx, "project", doc)
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		got, err := store.Get(ctx, "project", id)
		require.NoError(t, err)
		assert.Equal(t, "alpha", got["name"])
		assert.Equal(t, "go", got["language"])
		assert.Equal(t, []any{"a", "b"}, got["tags"])
		assert.Equal(t, id, got[IDField])
	})

	t.Run("assigns distinct ids", func(t *testing.T) {
		id1, err := store.Insert(ctx, "project", Document{"name": "one"})
		require.NoError(t, err)
		id2, err := store.Insert(ctx, "project", Document{"name": "two"})
		require.NoError(t, err)
		assert.NotEqual(t, id1, id2)
	})

	t.Run("missing document yields ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "project", NewID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("collections do not bleed into each other", func(t *testing.T) {
		id, err := store.Insert(ctx, "tuningjob", Document{"objective": "accuracy"})
		require.NoError(t, err)

		_, err = store.Get(ctx, "project", id)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisStore_Find(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	var ids []ID
	for i := 0; i < 5; i++ {
		pid := "p1"
		if i%2 == 1 {
			pid = "p2"
		}
		id, err := store.Insert(ctx, "tuningjob", Document{
			"objective":  fmt.Sprintf("objective-%d", i),
			"project_id": pid,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	t.Run("returns documents in insertion order", func(t *testing.T) {
		docs, err := store.Find(ctx, "tuningjob", nil, 0)
		require.NoError(t, err)
		require.Len(t, docs, 5)
		for i, doc := range docs {
			assert.Equal(t, ids[i], doc[IDField])
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		docs, err := store.Find(ctx, "tuningjob", nil, 2)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("filters by exact field equality", func(t *testing.T) {
		docs, err := store.Find(ctx, "tuningjob", Filter{"project_id": "p2"}, 0)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		for _, doc := range docs {
			assert.Equal(t, "p2", doc["project_id"])
		}
	})

	t.Run("empty collection yields no documents", func(t *testing.T) {
		docs, err := store.Find(ctx, "nothing-here", nil, 0)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestRedisStore_Update(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	t.Run("merges fields and returns the post-update document", func(t *testing.T) {
		id, err := store.Insert(ctx, "tuningjob", Document{"objective": "accuracy", "status": "queued"})
		require.NoError(t, err)

		updated, err := store.Update(ctx, "tuningjob", id, Document{"status": "running"})
		require.NoError(t, err)
		assert.Equal(t, "running", updated["status"])
		assert.Equal(t, "accuracy", updated["objective"])
		assert.Equal(t, id, updated[IDField])

		got, err := store.Get(ctx, "tuningjob", id)
		require.NoError(t, err)
		assert.Equal(t, "running", got["status"])
	})

	t.Run("missing document yields ErrNotFound", func(t *testing.T) {
		_, err := store.Update(ctx, "tuningjob", NewID(), Document{"status": "running"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("last write wins", func(t *testing.T) {
		id, err := store.Insert(ctx, "tuningjob", Document{"objective": "accuracy", "status": "queued"})
		require.NoError(t, err)

		_, err = store.Update(ctx, "tuningjob", id, Document{"status": "running"})
		require.NoError(t, err)
		_, err = store.Update(ctx, "tuningjob", id, Document{"status": "paused"})
		require.NoError(t, err)

		got, err := store.Get(ctx, "tuningjob", id)
		require.NoError(t, err)
		assert.Equal(t, "paused", got["status"])
	})
}

func TestRedisStore_CountAndCollections(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	n, err := store.Count(ctx, "project")
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 3; i++ {
		_, err := store.Insert(ctx, "project", Document{"name": fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
	}
	_, err = store.Insert(ctx, "tuningjob", Document{"objective": "accuracy"})
	require.NoError(t, err)

	n, err = store.Count(ctx, "project")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	names, err := store.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"project", "tuningjob"}, names)

	assert.NoError(t, store.Ping(ctx))
	assert.Equal(t, "redis", store.Name())
}
