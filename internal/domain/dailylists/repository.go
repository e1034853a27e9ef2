package dailylists

import "context"

type Repository interface {
	// Create devuelve ErrConflict si ya existe una lista para la misma fecha.
	Create(ctx context.Context, l DailyList) error
	GetByID(ctx context.Context, id string) (DailyList, error)
	GetByDate(ctx context.Context, date string) (DailyList, error)
	List(ctx context.Context) ([]DailyList, error) // orden: date desc
}
