package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"puppy-spa/internal/domain/dailylists"
)

type dailyListsRepo struct {
	mu     sync.RWMutex
	byID   map[string]dailylists.DailyList
	byDate map[string]string // date -> id, simula el constraint único
}

func NewDailyListsRepo() dailylists.Repository {
	return &dailyListsRepo{
		byID:   make(map[string]dailylists.DailyList),
		byDate: make(map[string]string),
	}
}

func (r *dailyListsRepo) Create(ctx context.Context, l dailylists.DailyList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("daily list id required")
	}
	if _, exists := r.byDate[l.Date]; exists {
		return dailylists.ErrConflict
	}

	r.byID[l.ID] = l
	r.byDate[l.Date] = l.ID
	return nil
}

func (r *dailyListsRepo) GetByID(ctx context.Context, id string) (dailylists.DailyList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return dailylists.DailyList{}, dailylists.ErrNotFound
	}
	return l, nil
}

func (r *dailyListsRepo) GetByDate(ctx context.Context, date string) (dailylists.DailyList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDate[date]
	if !ok {
		return dailylists.DailyList{}, dailylists.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *dailyListsRepo) List(ctx context.Context) ([]dailylists.DailyList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dailylists.DailyList, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}

	// fecha más reciente primero; el formato ISO ordena lexicográficamente
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	return out, nil
}
