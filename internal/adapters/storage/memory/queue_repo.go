package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"puppy-spa/internal/domain/queue"
)

type queueRepo struct {
	mu   sync.RWMutex
	byID map[string]queue.Entry
}

func NewQueueRepo() queue.Repository {
	return &queueRepo{
		byID: make(map[string]queue.Entry),
	}
}

// Create asigna position = max+1 bajo el mismo lock que protege el insert,
// que es la versión in-memory del read-modify-write atómico del store real.
func (r *queueRepo) Create(ctx context.Context, e queue.Entry) (queue.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return queue.Entry{}, errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return queue.Entry{}, errors.New("entry already exists")
	}

	max := 0
	for _, existing := range r.byID {
		if existing.Position > max {
			max = existing.Position
		}
	}
	e.Position = max + 1

	r.byID[e.ID] = e
	return e, nil
}

func (r *queueRepo) GetByID(ctx context.Context, id string) (queue.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return queue.Entry{}, queue.ErrNotFound
	}
	return e, nil
}

func (r *queueRepo) List(ctx context.Context) ([]queue.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]queue.Entry, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}

	sortByPosition(out)
	return out, nil
}

func (r *queueRepo) ListByDailyList(ctx context.Context, dailyListID string) ([]queue.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]queue.Entry, 0)
	for _, e := range r.byID {
		if e.DailyListID == dailyListID {
			out = append(out, e)
		}
	}

	sortByPosition(out)
	return out, nil
}

// Update simula el índice único sobre position del store real: escribir una
// posición que ya tiene otra entrada es conflicto, igual que en Postgres.
func (r *queueRepo) Update(ctx context.Context, e queue.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return queue.ErrNotFound
	}
	for _, other := range r.byID {
		if other.ID != e.ID && other.Position == e.Position {
			return queue.ErrConflict
		}
	}
	r.byID[e.ID] = e
	return nil
}

func (r *queueRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return queue.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *queueRepo) SwapPositions(ctx context.Context, idA, idB string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, okA := r.byID[idA]
	b, okB := r.byID[idB]
	if !okA || !okB {
		return queue.ErrNotFound
	}

	a.Position, b.Position = b.Position, a.Position
	r.byID[idA] = a
	r.byID[idB] = b
	return nil
}

func (r *queueRepo) Search(ctx context.Context, puppyIDs, ownerIDs []string) ([]queue.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(puppyIDs) == 0 && len(ownerIDs) == 0 {
		return []queue.Entry{}, nil
	}

	puppySet := make(map[string]struct{}, len(puppyIDs))
	for _, id := range puppyIDs {
		puppySet[id] = struct{}{}
	}
	ownerSet := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		ownerSet[id] = struct{}{}
	}

	out := make([]queue.Entry, 0)
	for _, e := range r.byID {
		if _, ok := puppySet[e.PuppyID]; ok {
			out = append(out, e)
			continue
		}
		if _, ok := ownerSet[e.OwnerID]; ok {
			out = append(out, e)
		}
	}

	// más recientes primero; desempate por id para salida estable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func sortByPosition(es []queue.Entry) {
	sort.Slice(es, func(i, j int) bool {
		return es[i].Position < es[j].Position
	})
}
