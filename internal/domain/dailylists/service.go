package dailylists

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("daily list not found")
	ErrConflict     = errors.New("daily list already exists for date")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// GetByDate devuelve la lista de la fecha o ErrNotFound si nunca se creó.
// El caller decide si cae a CreateForDate.
func (s *Service) GetByDate(ctx context.Context, date string) (DailyList, error) {
	d, err := parseDate(date)
	if err != nil {
		return DailyList{}, err
	}
	return s.repo.GetByDate(ctx, d)
}

// CreateForDate es idempotente: si la lista de esa fecha ya existe la devuelve
// tal cual, sin error y sin duplicar.
func (s *Service) CreateForDate(ctx context.Context, date string) (DailyList, error) {
	d, err := parseDate(date)
	if err != nil {
		return DailyList{}, err
	}

	existing, err := s.repo.GetByDate(ctx, d)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return DailyList{}, err
	}

	now := s.now()
	l := DailyList{
		ID:        uuid.NewString(),
		Date:      d,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, ErrConflict) {
			// Carrera de creación: otro request insertó la misma fecha entre
			// nuestro GetByDate y el insert. Releemos en vez de propagar.
			return s.repo.GetByDate(ctx, d)
		}
		return DailyList{}, err
	}
	return l, nil
}

// List devuelve todas las listas, la fecha más reciente primero.
func (s *Service) List(ctx context.Context) ([]DailyList, error) {
	return s.repo.List(ctx)
}

// EnsureForDate crea la lista si hace falta y devuelve su id.
// Satisface el port PartitionDirectory del paquete queue.
func (s *Service) EnsureForDate(ctx context.Context, date string) (string, error) {
	l, err := s.CreateForDate(ctx, date)
	if err != nil {
		return "", err
	}
	return l.ID, nil
}

// DateOf devuelve la fecha (YYYY-MM-DD) de la lista indicada.
func (s *Service) DateOf(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidInput
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return l.Date, nil
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", ErrInvalidInput
	}
	return t.Format("2006-01-02"), nil
}
