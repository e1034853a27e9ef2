package puppies

import "time"

// Puppy es el cachorro que recibe el servicio. Referencia a su Owner por id
// (owner_id) y se crea junto con él en el alta de una entrada.
type Puppy struct {
	ID      string
	Name    string
	Breed   string
	Age     int // años
	Notes   string
	OwnerID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
