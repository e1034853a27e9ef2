package queue_test

import (
	"context"
	"errors"
	"testing"

	mem "puppy-spa/internal/adapters/storage/memory"
	"puppy-spa/internal/domain/catalog"
	"puppy-spa/internal/domain/dailylists"
	"puppy-spa/internal/domain/owners"
	"puppy-spa/internal/domain/puppies"
	"puppy-spa/internal/domain/queue"
	"puppy-spa/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	entries queue.Repository
	owners  owners.Repository
	puppies puppies.Repository
	catalog catalog.Repository
	lists   *dailylists.Service
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()

	d := testDeps{
		entries: mem.NewQueueRepo(),
		owners:  mem.NewOwnersRepo(),
		puppies: mem.NewPuppiesRepo(),
		catalog: mem.NewCatalogRepo(),
		lists:   dailylists.NewService(mem.NewDailyListsRepo()),
	}

	err := d.catalog.Create(context.Background(), catalog.Service{
		ID:                "svc-bath",
		Name:              "Baño completo",
		EstimatedDuration: 45,
	})
	require.NoError(t, err)

	return d
}

func (d testDeps) service() *queue.Service {
	return queue.NewService(d.entries, d.owners, d.puppies, d.catalog, d.lists,
		logger.New(logger.Options{Level: logger.Error}))
}

func createInput(ownerName, puppyName string) queue.CreateInput {
	return queue.CreateInput{
		Owner:     queue.OwnerInput{Name: ownerName, Email: "x@example.com"},
		Puppy:     queue.PuppyInput{Name: puppyName, Breed: "beagle", Age: 2},
		ServiceID: "svc-bath",
	}
}

func TestCreate_AssignsSequentialPositions(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		detail, err := svc.Create(ctx, createInput("Jane", "Rex"))
		require.NoError(t, err)
		assert.Equal(t, i, detail.Position)
		assert.Equal(t, queue.StatusWaiting, detail.Entry.Status)
		assert.Nil(t, detail.CompletedAt)
	}
}

func TestCreate_PersistsOwnerAndPuppy(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createInput("Jane Doe", "Rex"))
	require.NoError(t, err)

	o, err := d.owners.GetByID(ctx, detail.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", o.Name)

	p, err := d.puppies.GetByID(ctx, detail.PuppyID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", p.Name)
	assert.Equal(t, o.ID, p.OwnerID)
}

func TestCreate_WithDateHangsEntryOnDailyList(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	in := createInput("Jane", "Rex")
	in.Date = "2024-01-15"

	detail, err := svc.Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, detail.DailyListID)
	assert.Equal(t, "2024-01-15", detail.Date)

	// la lista se creó sola y la entrada aparece en ella
	l, err := d.lists.GetByDate(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, l.ID, detail.DailyListID)

	entries, err := svc.ListByPartition(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, detail.ID, entries[0].ID)
}

func TestCreate_Validation(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	cases := []struct {
		name string
		in   queue.CreateInput
	}{
		{"owner sin nombre", func() queue.CreateInput {
			in := createInput("  ", "Rex")
			return in
		}()},
		{"puppy sin nombre", createInput("Jane", "")},
		{"sin servicio", func() queue.CreateInput {
			in := createInput("Jane", "Rex")
			in.ServiceID = " "
			return in
		}()},
		{"edad negativa", func() queue.CreateInput {
			in := createInput("Jane", "Rex")
			in.Puppy.Age = -1
			return in
		}()},
		{"fecha inválida", func() queue.CreateInput {
			in := createInput("Jane", "Rex")
			in.Date = "15/01/2024"
			return in
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, queue.ErrInvalidInput)
		})
	}

	t.Run("servicio desconocido", func(t *testing.T) {
		in := createInput("Jane", "Rex")
		in.ServiceID = "nope"
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

type failingPuppies struct {
	puppies.Repository
}

func (failingPuppies) Create(ctx context.Context, p puppies.Puppy) error {
	return errors.New("boom")
}

type failingEntries struct {
	queue.Repository
}

func (failingEntries) Create(ctx context.Context, e queue.Entry) (queue.Entry, error) {
	return queue.Entry{}, errors.New("boom")
}

func TestCreate_CompensatesOwnerWhenPuppyInsertFails(t *testing.T) {
	d := newTestDeps(t)
	d.puppies = failingPuppies{d.puppies}
	svc := d.service()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Jane", "Rex"))
	require.Error(t, err)

	// el owner recién creado no debe quedar huérfano
	got, err := d.owners.SearchByName(ctx, "Jane")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreate_CompensatesOwnerAndPuppyWhenEntryInsertFails(t *testing.T) {
	d := newTestDeps(t)
	d.entries = failingEntries{d.entries}
	svc := d.service()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Jane", "Rex"))
	require.Error(t, err)

	gotOwners, err := d.owners.SearchByName(ctx, "Jane")
	require.NoError(t, err)
	assert.Empty(t, gotOwners)

	gotPuppies, err := d.puppies.SearchByName(ctx, "Rex")
	require.NoError(t, err)
	assert.Empty(t, gotPuppies)
}

func TestUpdate_PartialFields(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createInput("Jane", "Rex"))
	require.NoError(t, err)

	status := "completed"
	updated, err := svc.Update(ctx, detail.ID, queue.UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, queue.StatusCompleted, updated.Entry.Status)
	require.NotNil(t, updated.CompletedAt)

	// volver a waiting limpia completed_at
	status = "waiting"
	updated, err = svc.Update(ctx, detail.ID, queue.UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, queue.StatusWaiting, updated.Entry.Status)
	assert.Nil(t, updated.CompletedAt)

	notes := "  llegó tarde  "
	updated, err = svc.Update(ctx, detail.ID, queue.UpdateInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "llegó tarde", updated.Entry.Notes)
}

func TestUpdate_RejectsTakenPosition(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	a, err := svc.Create(ctx, createInput("Jane", "Rex"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, createInput("Bob", "Fido"))
	require.NoError(t, err)

	// escribir la posición que ya tiene otra entrada es conflicto; el
	// intercambio va por Move/Swap
	pos := b.Position
	_, err = svc.Update(ctx, a.ID, queue.UpdateInput{Position: &pos})
	assert.ErrorIs(t, err, queue.ErrConflict)

	// la posición propia se puede re-escribir sin drama
	own := a.Position
	updated, err := svc.Update(ctx, a.ID, queue.UpdateInput{Position: &own})
	require.NoError(t, err)
	assert.Equal(t, a.Position, updated.Position)
}

func TestUpdate_RejectsBadStatusAndPosition(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createInput("Jane", "Rex"))
	require.NoError(t, err)

	bad := "done"
	_, err = svc.Update(ctx, detail.ID, queue.UpdateInput{Status: &bad})
	assert.ErrorIs(t, err, queue.ErrInvalidInput)

	zero := 0
	_, err = svc.Update(ctx, detail.ID, queue.UpdateInput{Position: &zero})
	assert.ErrorIs(t, err, queue.ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", queue.UpdateInput{})
	assert.ErrorIs(t, err, queue.ErrNotFound)
}

func TestToggleComplete_RoundTrip(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createInput("Jane", "Rex"))
	require.NoError(t, err)

	toggled, err := svc.ToggleComplete(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, queue.StatusCompleted, toggled.Entry.Status)
	require.NotNil(t, toggled.CompletedAt)

	back, err := svc.ToggleComplete(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, queue.StatusWaiting, back.Entry.Status)
	assert.Nil(t, back.CompletedAt)
}

func TestMove_SwapsWithNeighborWithinPartition(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	in1 := createInput("Jane", "Rex")
	in1.Date = "2024-01-15"
	first, err := svc.Create(ctx, in1)
	require.NoError(t, err)

	in2 := createInput("Bob", "Fido")
	in2.Date = "2024-01-15"
	second, err := svc.Create(ctx, in2)
	require.NoError(t, err)

	// otra fecha: no debe verse afectada por los movimientos de arriba
	in3 := createInput("Ana", "Luna")
	in3.Date = "2024-01-16"
	other, err := svc.Create(ctx, in3)
	require.NoError(t, err)
	otherPos := other.Position

	moved, err := svc.Move(ctx, second.ID, queue.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, first.Position, moved.Position)

	entries, err := svc.ListByPartition(ctx, first.DailyListID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	unchanged, err := svc.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, otherPos, unchanged.Position)
}

func TestMove_NoopAtEdges(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	in := createInput("Jane", "Rex")
	in.Date = "2024-01-15"
	only, err := svc.Create(ctx, in)
	require.NoError(t, err)

	up, err := svc.Move(ctx, only.ID, queue.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, only.Position, up.Position)

	down, err := svc.Move(ctx, only.ID, queue.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, only.Position, down.Position)
}

func TestMove_RejectsBadDirection(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()

	_, err := svc.Move(context.Background(), "whatever", queue.Direction("sideways"))
	assert.ErrorIs(t, err, queue.ErrInvalidInput)
}

func TestSwap_IsItsOwnInverse(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	a, err := svc.Create(ctx, createInput("Jane", "Rex"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, createInput("Bob", "Fido"))
	require.NoError(t, err)

	require.NoError(t, svc.Swap(ctx, a.ID, b.ID))
	require.NoError(t, svc.Swap(ctx, a.ID, b.ID))

	gotA, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Position, gotA.Position)
	assert.Equal(t, b.Position, gotB.Position)

	assert.ErrorIs(t, svc.Swap(ctx, a.ID, a.ID), queue.ErrInvalidInput)
}

type countingOwners struct {
	owners.Repository
	searches int
}

func (r *countingOwners) SearchByName(ctx context.Context, term string) ([]owners.Owner, error) {
	r.searches++
	return r.Repository.SearchByName(ctx, term)
}

func TestSearch_EmptyTermShortCircuits(t *testing.T) {
	d := newTestDeps(t)
	counting := &countingOwners{Repository: d.owners}
	d.owners = counting
	svc := d.service()
	ctx := context.Background()

	for _, term := range []string{"", "   "} {
		got, err := svc.Search(ctx, term)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Zero(t, counting.searches, "término vacío no debe tocar el store")
}

func TestSearch_MatchesOwnerAndPuppyNames(t *testing.T) {
	d := newTestDeps(t)
	svc := d.service()
	ctx := context.Background()

	byOwner, err := svc.Create(ctx, createInput("Marta García", "Rex"))
	require.NoError(t, err)
	byPuppy, err := svc.Create(ctx, createInput("Bob", "Martillo"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput("Ana", "Luna"))
	require.NoError(t, err)

	got, err := svc.Search(ctx, "mart")
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].ID, got[1].ID}
	assert.Contains(t, ids, byOwner.ID)
	assert.Contains(t, ids, byPuppy.ID)

	none, err := svc.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
