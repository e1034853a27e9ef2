package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"puppy-spa/internal/domain/puppies"
)

type puppiesRepo struct {
	mu   sync.RWMutex
	byID map[string]puppies.Puppy
}

func NewPuppiesRepo() puppies.Repository {
	return &puppiesRepo{
		byID: make(map[string]puppies.Puppy),
	}
}

func (r *puppiesRepo) Create(ctx context.Context, p puppies.Puppy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("puppy id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("puppy already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *puppiesRepo) GetByID(ctx context.Context, id string) (puppies.Puppy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return puppies.Puppy{}, puppies.ErrNotFound
	}
	return p, nil
}

func (r *puppiesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return puppies.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *puppiesRepo) SearchByName(ctx context.Context, term string) ([]puppies.Puppy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, nil
	}

	out := make([]puppies.Puppy, 0)
	for _, p := range r.byID {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}
