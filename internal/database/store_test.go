package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })
	return NewStore(db, nil)
}

func TestSubscriptionRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Ping(ctx))

	sub, err := store.GetSubscription(ctx)
	require.NoError(t, err)
	assert.Nil(t, sub, "no subscription before /start")

	require.NoError(t, store.SaveSubscription(ctx, 42, 7))
	sub, err = store.GetSubscription(ctx)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(42), sub.ChatID)
	assert.Equal(t, int64(7), sub.UserID)
	created := sub.CreatedAt

	require.NoError(t, store.SaveSubscription(ctx, 99, 8))
	sub, err = store.GetSubscription(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(99), sub.ChatID, "a later /start replaces the recipient")
	assert.True(t, sub.CreatedAt.Equal(created), "created_at survives the upsert")
}

func TestSaveSubscriptionRejectsZeroChat(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	assert.Error(t, store.SaveSubscription(context.Background(), 0, 1))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "twice.db")
	db, err := NewDB(path)
	require.NoError(t, err)
	CloseDB(db)

	db, err = NewDB(path)
	require.NoError(t, err)
	defer CloseDB(db)

	require.NoError(t, NewStore(db, nil).RunSQLMaintenance(context.Background()))
}

func TestApplyMigrationsNilDB(t *testing.T) {
	t.Parallel()

	assert.Error(t, ApplyMigrations(nil))
}
