package owners

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("owner not found")

type Repository interface {
	Create(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)
	// Delete existe para la compensación del alta compuesta
	// (si falla crear el puppy, el owner recién creado se borra).
	Delete(ctx context.Context, id string) error
	// SearchByName: substring case-insensitive sobre el nombre.
	SearchByName(ctx context.Context, term string) ([]Owner, error)
}
