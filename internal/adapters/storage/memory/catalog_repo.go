package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"puppy-spa/internal/domain/catalog"
	"puppy-spa/internal/domain/queue"
)

type catalogRepo struct {
	mu      sync.RWMutex
	byID    map[string]catalog.Service
	entries []queue.Repository
}

// NewCatalogRepo acepta repos de cola opcionales para simular el FK del store
// real: mientras alguna entrada referencie al servicio, Delete es conflicto.
func NewCatalogRepo(entries ...queue.Repository) catalog.Repository {
	return &catalogRepo{
		byID:    make(map[string]catalog.Service),
		entries: entries,
	}
}

func (r *catalogRepo) Create(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("service id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("service already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return catalog.Service{}, catalog.ErrNotFound
	}
	return s, nil
}

func (r *catalogRepo) List(ctx context.Context) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Service, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *catalogRepo) Update(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return catalog.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *catalogRepo) Delete(ctx context.Context, id string) error {
	for _, entries := range r.entries {
		es, err := entries.List(ctx)
		if err != nil {
			return err
		}
		for _, e := range es {
			if e.ServiceID == id {
				return catalog.ErrConflict
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
