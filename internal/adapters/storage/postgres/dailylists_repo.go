package postgres

import (
	"context"
	"database/sql"
	"strings"

	"puppy-spa/internal/domain/dailylists"
)

type DailyListsRepo struct {
	db *sql.DB
}

func NewDailyListsRepo(db *sql.DB) *DailyListsRepo {
	return &DailyListsRepo{db: db}
}

func (r *DailyListsRepo) Create(ctx context.Context, l dailylists.DailyList) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_lists (
			id, date, created_at, updated_at
		) VALUES ($1, $2::date, $3, $4)
	`,
		l.ID,
		l.Date,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// el constraint único sobre date rechazó el segundo insert de la
			// carrera de creación; el service relee en vez de fallar
			return dailylists.ErrConflict
		}
		return err
	}
	return nil
}

func (r *DailyListsRepo) GetByID(ctx context.Context, id string) (dailylists.DailyList, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dailylists.DailyList{}, dailylists.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
		FROM daily_lists
		WHERE id = $1
	`, id)

	return scanDailyList(row)
}

func (r *DailyListsRepo) GetByDate(ctx context.Context, date string) (dailylists.DailyList, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return dailylists.DailyList{}, dailylists.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
		FROM daily_lists
		WHERE date = $1::date
	`, date)

	return scanDailyList(row)
}

func (r *DailyListsRepo) List(ctx context.Context) ([]dailylists.DailyList, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), created_at, updated_at
		FROM daily_lists
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dailylists.DailyList, 0)
	for rows.Next() {
		var l dailylists.DailyList
		if err := rows.Scan(&l.ID, &l.Date, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

func scanDailyList(row *sql.Row) (dailylists.DailyList, error) {
	var l dailylists.DailyList
	if err := row.Scan(&l.ID, &l.Date, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return dailylists.DailyList{}, dailylists.ErrNotFound
		}
		return dailylists.DailyList{}, err
	}
	return l, nil
}
