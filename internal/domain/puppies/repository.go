package puppies

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("puppy not found")

type Repository interface {
	Create(ctx context.Context, p Puppy) error
	GetByID(ctx context.Context, id string) (Puppy, error)
	// Delete existe para la compensación del alta compuesta.
	Delete(ctx context.Context, id string) error
	// SearchByName: substring case-insensitive sobre el nombre.
	SearchByName(ctx context.Context, term string) ([]Puppy, error)
}
