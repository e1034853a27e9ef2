package catalog

import "time"

// Service es un servicio del catálogo del spa (baño, corte, etc.).
// Se gestiona por separado y las entradas de la cola lo referencian por id.
type Service struct {
	ID                string
	Name              string
	Description       string
	EstimatedDuration int // minutos

	CreatedAt time.Time
	UpdatedAt time.Time
}
