package queue

import (
	"context"
	"errors"
	"strings"
	"time"

	"puppy-spa/internal/domain/catalog"
	"puppy-spa/internal/domain/owners"
	"puppy-spa/internal/domain/puppies"
	"puppy-spa/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("entry not found")
	// ErrConflict lo devuelve el store cuando no logra asignar una posición
	// libre (dos altas concurrentes calculando el mismo máximo).
	ErrConflict = errors.New("position conflict")
)

// PartitionDirectory es el port hacia las listas diarias: resolver fecha⇄lista
// sin acoplar este paquete al de dailylists.
type PartitionDirectory interface {
	EnsureForDate(ctx context.Context, date string) (string, error)
	DateOf(ctx context.Context, id string) (string, error)
}

type Service struct {
	entries    Repository
	owners     owners.Repository
	puppies    puppies.Repository
	catalog    catalog.Repository
	partitions PartitionDirectory
	log        logger.Logger
	now        func() time.Time
}

func NewService(
	entries Repository,
	ownerRepo owners.Repository,
	puppyRepo puppies.Repository,
	catalogRepo catalog.Repository,
	partitions PartitionDirectory,
	log logger.Logger,
) *Service {
	return &Service{
		entries:    entries,
		owners:     ownerRepo,
		puppies:    puppyRepo,
		catalog:    catalogRepo,
		partitions: partitions,
		log:        log,
		now:        time.Now,
	}
}

type OwnerInput struct {
	Name  string
	Email string
	Phone string
}

type PuppyInput struct {
	Name  string
	Breed string
	Age   int
	Notes string
}

type CreateInput struct {
	Owner     OwnerInput
	Puppy     PuppyInput
	ServiceID string
	Notes     string
	Date      string // YYYY-MM-DD opcional; si viene, la entrada queda en la lista de ese día
}

// Create es el alta compuesta: owner → puppy → entrada, en ese orden.
// No hay transacción que cubra los tres inserts, así que ante una falla parcial
// se compensa borrando lo ya creado (en orden inverso). Si la compensación
// también falla solo se loguea: el error original es el que importa al caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (EntryDetail, error) {
	if strings.TrimSpace(in.Owner.Name) == "" {
		return EntryDetail{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Puppy.Name) == "" {
		return EntryDetail{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.ServiceID) == "" {
		return EntryDetail{}, ErrInvalidInput
	}
	if in.Puppy.Age < 0 {
		return EntryDetail{}, ErrInvalidInput
	}

	date := strings.TrimSpace(in.Date)
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return EntryDetail{}, ErrInvalidInput
		}
	}

	svc, err := s.catalog.GetByID(ctx, strings.TrimSpace(in.ServiceID))
	if err != nil {
		return EntryDetail{}, err
	}

	dailyListID := ""
	if date != "" {
		id, err := s.partitions.EnsureForDate(ctx, date)
		if err != nil {
			return EntryDetail{}, err
		}
		dailyListID = id
	}

	now := s.now()

	o := owners.Owner{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Owner.Name),
		Email:     strings.TrimSpace(in.Owner.Email),
		Phone:     strings.TrimSpace(in.Owner.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.owners.Create(ctx, o); err != nil {
		return EntryDetail{}, err
	}

	p := puppies.Puppy{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Puppy.Name),
		Breed:     strings.TrimSpace(in.Puppy.Breed),
		Age:       in.Puppy.Age,
		Notes:     strings.TrimSpace(in.Puppy.Notes),
		OwnerID:   o.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.puppies.Create(ctx, p); err != nil {
		s.compensateOwner(ctx, o.ID)
		return EntryDetail{}, err
	}

	e := Entry{
		ID:          uuid.NewString(),
		OwnerID:     o.ID,
		PuppyID:     p.ID,
		ServiceID:   svc.ID,
		DailyListID: dailyListID,
		ArrivalTime: now,
		Status:      StatusWaiting,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.entries.Create(ctx, e)
	if err != nil {
		s.compensatePuppy(ctx, p.ID)
		s.compensateOwner(ctx, o.ID)
		return EntryDetail{}, err
	}

	return EntryDetail{
		Entry:   created,
		Owner:   o,
		Puppy:   p,
		Service: svc,
		Date:    date,
	}, nil
}

func (s *Service) compensateOwner(ctx context.Context, ownerID string) {
	if err := s.owners.Delete(ctx, ownerID); err != nil {
		s.log.Warn("compensating owner delete failed", map[string]any{
			"owner_id": ownerID,
			"error":    err.Error(),
		})
	}
}

func (s *Service) compensatePuppy(ctx context.Context, puppyID string) {
	if err := s.puppies.Delete(ctx, puppyID); err != nil {
		s.log.Warn("compensating puppy delete failed", map[string]any{
			"puppy_id": puppyID,
			"error":    err.Error(),
		})
	}
}

func (s *Service) Get(ctx context.Context, id string) (EntryDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return EntryDetail{}, ErrInvalidInput
	}
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return EntryDetail{}, err
	}
	return s.detail(ctx, e)
}

// List devuelve todas las entradas por posición ascendente.
func (s *Service) List(ctx context.Context) ([]EntryDetail, error) {
	es, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, es)
}

// ListByPartition devuelve las entradas de una lista diaria, position asc.
func (s *Service) ListByPartition(ctx context.Context, dailyListID string) ([]EntryDetail, error) {
	dailyListID = strings.TrimSpace(dailyListID)
	if dailyListID == "" {
		return nil, ErrInvalidInput
	}
	es, err := s.entries.ListByDailyList(ctx, dailyListID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, es)
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	Status   *string
	Position *int
	Notes    *string
}

// Update aplica un update parcial (status y/o position y/o notes).
// El status pasa por ParseStatus y CanTransition; position debe ser positiva.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (EntryDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return EntryDetail{}, ErrInvalidInput
	}

	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return EntryDetail{}, err
	}

	now := s.now()

	if in.Status != nil {
		st, err := ParseStatus(*in.Status)
		if err != nil {
			return EntryDetail{}, err
		}
		if !CanTransition(e.Status, st) {
			return EntryDetail{}, ErrInvalidInput
		}
		applyStatus(&e, st, now)
	}
	if in.Position != nil {
		if *in.Position < 1 {
			return EntryDetail{}, ErrInvalidInput
		}
		e.Position = *in.Position
	}
	if in.Notes != nil {
		e.Notes = strings.TrimSpace(*in.Notes)
	}

	e.UpdatedAt = now
	if err := s.entries.Update(ctx, e); err != nil {
		return EntryDetail{}, err
	}
	return s.detail(ctx, e)
}

// ToggleComplete es el atajo del checkbox de la UI: completed↔waiting.
// Estampa completed_at al completar y lo limpia al des-completar.
func (s *Service) ToggleComplete(ctx context.Context, id string) (EntryDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return EntryDetail{}, ErrInvalidInput
	}

	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return EntryDetail{}, err
	}

	now := s.now()
	applyStatus(&e, toggleTarget(e.Status), now)
	e.UpdatedAt = now

	if err := s.entries.Update(ctx, e); err != nil {
		return EntryDetail{}, err
	}
	return s.detail(ctx, e)
}

// Swap intercambia las posiciones de dos entradas. Swap(A,B);Swap(A,B) deja
// todo como estaba.
func (s *Service) Swap(ctx context.Context, idA, idB string) error {
	idA = strings.TrimSpace(idA)
	idB = strings.TrimSpace(idB)
	if idA == "" || idB == "" || idA == idB {
		return ErrInvalidInput
	}
	return s.entries.SwapPositions(ctx, idA, idB)
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Move sube o baja la entrada un lugar dentro de su lista diaria (o de la cola
// completa si no pertenece a ninguna), intercambiando posición con el vecino.
// Sin vecino en esa dirección es un no-op: la UI deshabilita las flechas en
// los extremos pero un doble click puede llegar igual.
func (s *Service) Move(ctx context.Context, id string, dir Direction) (EntryDetail, error) {
	if dir != DirectionUp && dir != DirectionDown {
		return EntryDetail{}, ErrInvalidInput
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return EntryDetail{}, ErrInvalidInput
	}

	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return EntryDetail{}, err
	}

	var siblings []Entry
	if e.DailyListID != "" {
		siblings, err = s.entries.ListByDailyList(ctx, e.DailyListID)
	} else {
		siblings, err = s.entries.List(ctx)
	}
	if err != nil {
		return EntryDetail{}, err
	}

	idx := -1
	for i := range siblings {
		if siblings[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return EntryDetail{}, ErrNotFound
	}

	j := idx - 1
	if dir == DirectionDown {
		j = idx + 1
	}
	if j < 0 || j >= len(siblings) {
		return s.detail(ctx, e)
	}

	if err := s.entries.SwapPositions(ctx, e.ID, siblings[j].ID); err != nil {
		return EntryDetail{}, err
	}

	swapped, err := s.entries.GetByID(ctx, e.ID)
	if err != nil {
		return EntryDetail{}, err
	}
	return s.detail(ctx, swapped)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.entries.Delete(ctx, id)
}

// Search busca término contra nombre de puppy y nombre de owner (substring,
// case-insensitive), une ambos sets y devuelve las entradas que referencian a
// alguno, created_at desc. Término vacío ⇒ lista vacía sin tocar el store.
func (s *Service) Search(ctx context.Context, term string) ([]EntryDetail, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []EntryDetail{}, nil
	}

	ps, err := s.puppies.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	os, err := s.owners.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}

	puppyIDs := make([]string, 0, len(ps))
	for _, p := range ps {
		puppyIDs = append(puppyIDs, p.ID)
	}
	ownerIDs := make([]string, 0, len(os))
	for _, o := range os {
		ownerIDs = append(ownerIDs, o.ID)
	}

	if len(puppyIDs) == 0 && len(ownerIDs) == 0 {
		return []EntryDetail{}, nil
	}

	es, err := s.entries.Search(ctx, puppyIDs, ownerIDs)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, es)
}

func applyStatus(e *Entry, st Status, now time.Time) {
	e.Status = st
	if st == StatusCompleted {
		t := now
		e.CompletedAt = &t
	} else {
		e.CompletedAt = nil
	}
}

// detail resuelve owner/puppy/service y la fecha de la lista. Fan-out de reads
// por entrada; a la escala esperada (decenas por día) alcanza.
func (s *Service) detail(ctx context.Context, e Entry) (EntryDetail, error) {
	o, err := s.owners.GetByID(ctx, e.OwnerID)
	if err != nil {
		return EntryDetail{}, err
	}
	p, err := s.puppies.GetByID(ctx, e.PuppyID)
	if err != nil {
		return EntryDetail{}, err
	}
	svc, err := s.catalog.GetByID(ctx, e.ServiceID)
	if err != nil {
		return EntryDetail{}, err
	}

	d := EntryDetail{Entry: e, Owner: o, Puppy: p, Service: svc}
	if e.DailyListID != "" {
		date, err := s.partitions.DateOf(ctx, e.DailyListID)
		if err != nil {
			return EntryDetail{}, err
		}
		d.Date = date
	}
	return d, nil
}

func (s *Service) details(ctx context.Context, es []Entry) ([]EntryDetail, error) {
	out := make([]EntryDetail, 0, len(es))
	for _, e := range es {
		d, err := s.detail(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
