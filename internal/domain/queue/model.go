package queue

import (
	"time"

	"puppy-spa/internal/domain/catalog"
	"puppy-spa/internal/domain/owners"
	"puppy-spa/internal/domain/puppies"
)

// Entry es la visita de un cachorro por un servicio: referencia owner, puppy y
// servicio, y lleva el estado y la posición dentro del orden de atención.
type Entry struct {
	ID          string
	OwnerID     string
	PuppyID     string
	ServiceID   string
	DailyListID string // vacío = sin lista diaria asignada

	ArrivalTime time.Time
	Status      Status
	Notes       string
	CompletedAt *time.Time
	Position    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryDetail es la entrada resuelta con sus referencias y la fecha de su
// lista diaria (vacía si la entrada no pertenece a ninguna).
type EntryDetail struct {
	Entry
	Owner   owners.Owner
	Puppy   puppies.Puppy
	Service catalog.Service
	Date    string // YYYY-MM-DD
}
