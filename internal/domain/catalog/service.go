package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("service not found")
	// ErrConflict: el servicio todavía está referenciado por entradas de la cola.
	ErrConflict = errors.New("service in use")
)

// Catalog es el caso de uso de gestión del catálogo de servicios.
type Catalog struct {
	repo Repository
	now  func() time.Time
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name              string
	Description       string
	EstimatedDuration int
}

func (c *Catalog) Create(ctx context.Context, in CreateInput) (Service, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Service{}, ErrInvalidInput
	}
	if in.EstimatedDuration <= 0 {
		return Service{}, ErrInvalidInput
	}

	now := c.now()
	s := Service{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		EstimatedDuration: in.EstimatedDuration,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := c.repo.Create(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	Name              *string
	Description       *string
	EstimatedDuration *int
}

func (c *Catalog) Update(ctx context.Context, id string, in UpdateInput) (Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Service{}, ErrInvalidInput
	}

	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return Service{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Service{}, ErrInvalidInput
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.EstimatedDuration != nil {
		if *in.EstimatedDuration <= 0 {
			return Service{}, ErrInvalidInput
		}
		s.EstimatedDuration = *in.EstimatedDuration
	}
	s.UpdatedAt = c.now()

	if err := c.repo.Update(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

func (c *Catalog) GetByID(ctx context.Context, id string) (Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Service{}, ErrInvalidInput
	}
	return c.repo.GetByID(ctx, id)
}

func (c *Catalog) List(ctx context.Context) ([]Service, error) {
	return c.repo.List(ctx)
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return c.repo.Delete(ctx, id)
}
