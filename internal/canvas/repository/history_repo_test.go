package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refurnish/refurnish-backend/internal/canvas/domain"
)

func setupHistoryRepo(t *testing.T) (*HistoryRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewHistoryRepository(client), mr
}

func TestHistoryRepository_PushAndStep(t *testing.T) {
	repo, _ := setupHistoryRepo(t)
	ctx := context.Background()

	h, err := repo.Push(ctx, "furnish-1", `{"v":1}`)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Cursor)

	h, err = repo.Push(ctx, "furnish-1", `{"v":2}`)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Cursor)

	snap, err := repo.Undo(ctx, "furnish-1")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, snap)

	snap, err = repo.Redo(ctx, "furnish-1")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, snap)
}

func TestHistoryRepository_Boundaries(t *testing.T) {
	repo, _ := setupHistoryRepo(t)
	ctx := context.Background()

	_, err := repo.Undo(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)

	_, err = repo.Push(ctx, "furnish-2", `{"v":1}`)
	require.NoError(t, err)

	_, err = repo.Undo(ctx, "furnish-2")
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)

	_, err = repo.Redo(ctx, "furnish-2")
	assert.ErrorIs(t, err, domain.ErrNothingToRedo)
}

func TestHistoryRepository_SurvivesAcrossLoads(t *testing.T) {
	repo, _ := setupHistoryRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Push(ctx, "furnish-3", fmt.Sprintf(`{"v":%d}`, i))
		require.NoError(t, err)
	}

	// undo twice in separate calls; state is reloaded from Redis each time
	snap, err := repo.Undo(ctx, "furnish-3")
	require.NoError(t, err)
	assert.Equal(t, `{"v":3}`, snap)

	snap, err = repo.Undo(ctx, "furnish-3")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, snap)

	cursor, length, err := repo.Meta(ctx, "furnish-3")
	require.NoError(t, err)
	assert.Equal(t, 2, cursor)
	assert.Equal(t, 5, length)
}

func TestHistoryRepository_MetaOnMissingHistory(t *testing.T) {
	repo, _ := setupHistoryRepo(t)

	cursor, length, err := repo.Meta(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Zero(t, cursor)
	assert.Zero(t, length)
}

func TestHistoryRepository_TTLAndDrop(t *testing.T) {
	repo, mr := setupHistoryRepo(t)
	ctx := context.Background()

	_, err := repo.Push(ctx, "furnish-4", `{}`)
	require.NoError(t, err)

	key := historyKeyPrefix + "furnish-4"
	require.True(t, mr.Exists(key))
	assert.Equal(t, historyTTL, mr.TTL(key))

	require.NoError(t, repo.Drop(ctx, "furnish-4"))
	assert.False(t, mr.Exists(key))
}
