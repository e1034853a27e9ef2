package postgres

import (
	"context"
	"database/sql"
	"strings"

	"puppy-spa/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Create(ctx context.Context, s catalog.Service) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (
			id, name, description, estimated_duration,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		s.ID,
		s.Name,
		s.Description,
		s.EstimatedDuration,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *CatalogRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Service{}, catalog.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, estimated_duration, created_at, updated_at
		FROM services
		WHERE id = $1
	`, id)

	var s catalog.Service
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.EstimatedDuration,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Service{}, catalog.ErrNotFound
		}
		return catalog.Service{}, err
	}

	return s, nil
}

func (r *CatalogRepo) List(ctx context.Context) ([]catalog.Service, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, estimated_duration, created_at, updated_at
		FROM services
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Service, 0)
	for rows.Next() {
		var s catalog.Service
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Description,
			&s.EstimatedDuration,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *CatalogRepo) Update(ctx context.Context, s catalog.Service) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET
			name = $2,
			description = $3,
			estimated_duration = $4,
			updated_at = $5
		WHERE id = $1
	`,
		s.ID,
		s.Name,
		s.Description,
		s.EstimatedDuration,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		// el FK desde queue_entries protege contra referencias colgantes
		if isForeignKeyViolation(err) {
			return catalog.ErrConflict
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
