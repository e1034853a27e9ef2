package postgres

import (
	"context"
	"database/sql"
	"strings"

	"puppy-spa/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (
			id, name, email, phone,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		o.ID,
		o.Name,
		o.Email,
		o.Phone,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.Owner{}, owners.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, created_at, updated_at
		FROM owners
		WHERE id = $1
	`, id)

	var o owners.Owner
	if err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Email,
		&o.Phone,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}

	return o, nil
}

func (r *OwnersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) SearchByName(ctx context.Context, term string) ([]owners.Owner, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, created_at, updated_at
		FROM owners
		WHERE name ILIKE $1
		ORDER BY name ASC
	`, "%"+escapeLike(term)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Email,
			&o.Phone,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, rows.Err()
}
