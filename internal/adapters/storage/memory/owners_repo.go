package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"puppy-spa/internal/domain/owners"
)

type ownersRepo struct {
	mu   sync.RWMutex
	byID map[string]owners.Owner
}

func NewOwnersRepo() owners.Repository {
	return &ownersRepo{
		byID: make(map[string]owners.Owner),
	}
}

func (r *ownersRepo) Create(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}
	if _, exists := r.byID[o.ID]; exists {
		return errors.New("owner already exists")
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ownersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return owners.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *ownersRepo) SearchByName(ctx context.Context, term string) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, nil
	}

	out := make([]owners.Owner, 0)
	for _, o := range r.byID {
		if strings.Contains(strings.ToLower(o.Name), needle) {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}
