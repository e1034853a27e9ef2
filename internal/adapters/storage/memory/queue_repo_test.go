package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	mem "puppy-spa/internal/adapters/storage/memory"
	"puppy-spa/internal/domain/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRepo_CreateAllocatesNextPosition(t *testing.T) {
	repo := mem.NewQueueRepo()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		created, err := repo.Create(ctx, queue.Entry{ID: fmt.Sprintf("e-%d", i)})
		require.NoError(t, err)
		assert.Equal(t, i, created.Position)
	}

	// borrar el del medio no re-compacta: la siguiente alta sigue en max+1
	require.NoError(t, repo.Delete(ctx, "e-3"))
	created, err := repo.Create(ctx, queue.Entry{ID: "e-6"})
	require.NoError(t, err)
	assert.Equal(t, 6, created.Position)
}

func TestQueueRepo_CreateRejectsBadIDs(t *testing.T) {
	repo := mem.NewQueueRepo()
	ctx := context.Background()

	_, err := repo.Create(ctx, queue.Entry{ID: "  "})
	require.Error(t, err)

	_, err = repo.Create(ctx, queue.Entry{ID: "e-1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, queue.Entry{ID: "e-1"})
	require.Error(t, err)
}

func TestQueueRepo_UpdateRejectsDuplicatePosition(t *testing.T) {
	repo := mem.NewQueueRepo()
	ctx := context.Background()

	a, err := repo.Create(ctx, queue.Entry{ID: "a"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, queue.Entry{ID: "b"})
	require.NoError(t, err)

	// pisar la posición de otra entrada es conflicto, como en el store real
	a.Position = b.Position
	assert.ErrorIs(t, repo.Update(ctx, a), queue.ErrConflict)

	// re-escribir la posición propia no
	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	got.Notes = "sin cambios de posición"
	require.NoError(t, repo.Update(ctx, got))
}

func TestQueueRepo_ListOrdersByPosition(t *testing.T) {
	repo := mem.NewQueueRepo()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, queue.Entry{ID: id})
		require.NoError(t, err)
	}
	require.NoError(t, repo.SwapPositions(ctx, "a", "c"))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
}

func TestQueueRepo_SwapPositions(t *testing.T) {
	repo := mem.NewQueueRepo()
	ctx := context.Background()

	a, err := repo.Create(ctx, queue.Entry{ID: "a"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, queue.Entry{ID: "b"})
	require.NoError(t, err)

	require.NoError(t, repo.SwapPositions(ctx, "a", "b"))
	require.NoError(t, repo.SwapPositions(ctx, "a", "b"))

	gotA, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	gotB, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, a.Position, gotA.Position)
	assert.Equal(t, b.Position, gotB.Position)

	assert.ErrorIs(t, repo.SwapPositions(ctx, "a", "missing"), queue.ErrNotFound)
}

func TestQueueRepo_ListByDailyList(t *testing.T) {
	repo := mem.NewQueueRepo()
	ctx := context.Background()

	_, err := repo.Create(ctx, queue.Entry{ID: "a", DailyListID: "l1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, queue.Entry{ID: "b", DailyListID: "l2"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, queue.Entry{ID: "c", DailyListID: "l1"})
	require.NoError(t, err)

	got, err := repo.ListByDailyList(ctx, "l1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestQueueRepo_SearchNewestFirst(t *testing.T) {
	repo := mem.NewQueueRepo()
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	seed := []queue.Entry{
		{ID: "old", PuppyID: "p1", CreatedAt: base},
		{ID: "new", PuppyID: "p1", CreatedAt: base.Add(time.Hour)},
		{ID: "by-owner", OwnerID: "o1", CreatedAt: base.Add(30 * time.Minute)},
		{ID: "unrelated", PuppyID: "px", OwnerID: "ox", CreatedAt: base},
	}
	for _, e := range seed {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	got, err := repo.Search(ctx, []string{"p1"}, []string{"o1"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "by-owner", got[1].ID)
	assert.Equal(t, "old", got[2].ID)

	empty, err := repo.Search(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
