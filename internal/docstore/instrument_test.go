package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentDelegates(t *testing.T) {
	inner := setupTestRedis(t)
	store := Instrument(inner)
	ctx := context.Background()

	assert.Equal(t, "redis", store.Name())
	assert.NoError(t, store.Ping(ctx))

	id, err := store.Insert(ctx, "project", Document{"name": "alpha"})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "project", id)
	require.NoError(t, err)
	assert.Equal(t, "alpha", doc["name"])

	docs, err := store.Find(ctx, "project", Filter{"name": "alpha"}, 10)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	updated, err := store.Update(ctx, "project", id, Document{"name": "beta"})
	require.NoError(t, err)
	assert.Equal(t, "beta", updated["name"])

	n, err := store.Count(ctx, "project")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	names, err := store.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"project"}, names)

	_, err = store.Get(ctx, "project", NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}
