package queue

import "context"

type Repository interface {
	// Create inserta la entrada asignando position = max(position)+1 (1 si la
	// cola está vacía) de forma atómica contra el store, y devuelve la entrada
	// con la posición asignada. El máximo se calcula sobre TODAS las entradas
	// (orden global de llegada), no por lista diaria.
	Create(ctx context.Context, e Entry) (Entry, error)

	GetByID(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context) ([]Entry, error)                                // position asc
	ListByDailyList(ctx context.Context, dailyListID string) ([]Entry, error) // position asc
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error

	// SwapPositions intercambia las posiciones de dos entradas en una sola
	// operación atómica. ErrNotFound si alguno de los ids no existe.
	SwapPositions(ctx context.Context, idA, idB string) error

	// Search devuelve las entradas cuyo puppy_id u owner_id está en los sets
	// dados, created_at desc. Ambos sets vacíos ⇒ resultado vacío sin query.
	Search(ctx context.Context, puppyIDs, ownerIDs []string) ([]Entry, error)
}
