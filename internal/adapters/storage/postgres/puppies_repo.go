package postgres

import (
	"context"
	"database/sql"
	"strings"

	"puppy-spa/internal/domain/puppies"
)

type PuppiesRepo struct {
	db *sql.DB
}

func NewPuppiesRepo(db *sql.DB) *PuppiesRepo {
	return &PuppiesRepo{db: db}
}

func (r *PuppiesRepo) Create(ctx context.Context, p puppies.Puppy) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO puppies (
			id, name, breed, age, notes, owner_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Age,
		p.Notes,
		p.OwnerID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PuppiesRepo) GetByID(ctx context.Context, id string) (puppies.Puppy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return puppies.Puppy{}, puppies.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, breed, age, notes, owner_id, created_at, updated_at
		FROM puppies
		WHERE id = $1
	`, id)

	var p puppies.Puppy
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Breed,
		&p.Age,
		&p.Notes,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return puppies.Puppy{}, puppies.ErrNotFound
		}
		return puppies.Puppy{}, err
	}

	return p, nil
}

func (r *PuppiesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM puppies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return puppies.ErrNotFound
	}
	return nil
}

func (r *PuppiesRepo) SearchByName(ctx context.Context, term string) ([]puppies.Puppy, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, breed, age, notes, owner_id, created_at, updated_at
		FROM puppies
		WHERE name ILIKE $1
		ORDER BY name ASC
	`, "%"+escapeLike(term)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]puppies.Puppy, 0)
	for rows.Next() {
		var p puppies.Puppy
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Breed,
			&p.Age,
			&p.Notes,
			&p.OwnerID,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
