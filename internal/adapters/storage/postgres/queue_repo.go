package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"puppy-spa/internal/domain/queue"
)

type QueueRepo struct {
	db *sql.DB
}

func NewQueueRepo(db *sql.DB) *QueueRepo {
	return &QueueRepo{db: db}
}

const entryColumns = `
	id, owner_id, puppy_id, service_id, daily_list_id,
	arrival_time, status, notes, completed_at, position,
	created_at, updated_at
`

// Create asigna position = max+1 en el mismo INSERT (el subselect y el insert
// son un solo statement, así que el máximo no puede moverse en el medio).
// Dos inserts concurrentes igual pueden ver el mismo máximo bajo MVCC; el
// índice único diferido sobre position rechaza al segundo y acá reintentamos.
func (r *QueueRepo) Create(ctx context.Context, e queue.Entry) (queue.Entry, error) {
	for attempt := 0; attempt < 3; attempt++ {
		row := r.db.QueryRowContext(ctx, `
			INSERT INTO queue_entries (
				id, owner_id, puppy_id, service_id, daily_list_id,
				arrival_time, status, notes, completed_at, position,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5,
				$6, $7, $8, $9,
				(SELECT COALESCE(MAX(position), 0) + 1 FROM queue_entries),
				$10, $11
			)
			RETURNING position
		`,
			e.ID,
			e.OwnerID,
			e.PuppyID,
			e.ServiceID,
			toNullString(e.DailyListID),
			e.ArrivalTime,
			string(e.Status),
			e.Notes,
			toNullTime(e.CompletedAt),
			e.CreatedAt,
			e.UpdatedAt,
		)

		if err := row.Scan(&e.Position); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return queue.Entry{}, err
		}
		return e, nil
	}

	return queue.Entry{}, queue.ErrConflict
}

func (r *QueueRepo) GetByID(ctx context.Context, id string) (queue.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return queue.Entry{}, queue.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM queue_entries
		WHERE id = $1
	`, id)

	e, err := scanEntryRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return queue.Entry{}, queue.ErrNotFound
		}
		return queue.Entry{}, err
	}
	return e, nil
}

func (r *QueueRepo) List(ctx context.Context) ([]queue.Entry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM queue_entries
		ORDER BY position ASC
	`)
}

func (r *QueueRepo) ListByDailyList(ctx context.Context, dailyListID string) ([]queue.Entry, error) {
	dailyListID = strings.TrimSpace(dailyListID)
	if dailyListID == "" {
		return nil, nil
	}

	return r.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM queue_entries
		WHERE daily_list_id = $1
		ORDER BY position ASC
	`, dailyListID)
}

func (r *QueueRepo) Update(ctx context.Context, e queue.Entry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE queue_entries
		SET
			daily_list_id = $2,
			status = $3,
			notes = $4,
			completed_at = $5,
			position = $6,
			updated_at = $7
		WHERE id = $1
	`,
		e.ID,
		toNullString(e.DailyListID),
		string(e.Status),
		e.Notes,
		toNullTime(e.CompletedAt),
		e.Position,
		e.UpdatedAt,
	)
	if err != nil {
		// position ya ocupada por otra entrada: el índice único (diferido)
		// dispara en el commit implícito de este statement
		if isUniqueViolation(err) {
			return queue.ErrConflict
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return queue.ErrNotFound
	}
	return nil
}

func (r *QueueRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM queue_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return queue.ErrNotFound
	}
	return nil
}

// SwapPositions hace el intercambio dentro de una transacción con locks de
// fila, para que un crash en el medio no deje dos entradas compartiendo (o
// perdiendo) posición. El lock va en orden estable de id para no deadlockear
// contra otro swap de las mismas filas.
func (r *QueueRepo) SwapPositions(ctx context.Context, idA, idB string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, position
		FROM queue_entries
		WHERE id IN ($1, $2)
		ORDER BY id
		FOR UPDATE
	`, idA, idB)
	if err != nil {
		return err
	}

	positions := make(map[string]int, 2)
	for rows.Next() {
		var id string
		var pos int
		if err := rows.Scan(&id, &pos); err != nil {
			rows.Close()
			return err
		}
		positions[id] = pos
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	posA, okA := positions[idA]
	posB, okB := positions[idB]
	if !okA || !okB {
		return queue.ErrNotFound
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE queue_entries SET position = $2, updated_at = $3 WHERE id = $1
	`, idA, posB, now); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE queue_entries SET position = $2, updated_at = $3 WHERE id = $1
	`, idB, posA, now); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *QueueRepo) Search(ctx context.Context, puppyIDs, ownerIDs []string) ([]queue.Entry, error) {
	if len(puppyIDs) == 0 && len(ownerIDs) == 0 {
		return []queue.Entry{}, nil
	}

	args := []any{}
	argN := 1

	conds := make([]string, 0, 2)
	if len(puppyIDs) > 0 {
		placeholders := make([]string, 0, len(puppyIDs))
		for _, id := range puppyIDs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, id)
			argN++
		}
		conds = append(conds, "puppy_id IN ("+strings.Join(placeholders, ",")+")")
	}
	if len(ownerIDs) > 0 {
		placeholders := make([]string, 0, len(ownerIDs))
		for _, id := range ownerIDs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, id)
			argN++
		}
		conds = append(conds, "owner_id IN ("+strings.Join(placeholders, ",")+")")
	}

	query := `
		SELECT ` + entryColumns + `
		FROM queue_entries
		WHERE ` + strings.Join(conds, " OR ") + `
		ORDER BY created_at DESC
	`

	return r.queryEntries(ctx, query, args...)
}

func (r *QueueRepo) queryEntries(ctx context.Context, query string, args ...any) ([]queue.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]queue.Entry, 0)
	for rows.Next() {
		e, err := scanEntryRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func scanEntryRow(row *sql.Row) (queue.Entry, error) {
	var e queue.Entry
	var dailyListID sql.NullString
	var status string
	var completedAt sql.NullTime

	if err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.PuppyID,
		&e.ServiceID,
		&dailyListID,
		&e.ArrivalTime,
		&status,
		&e.Notes,
		&completedAt,
		&e.Position,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return queue.Entry{}, err
	}

	applyNullables(&e, dailyListID, status, completedAt)
	return e, nil
}

func scanEntryRows(rows *sql.Rows) (queue.Entry, error) {
	var e queue.Entry
	var dailyListID sql.NullString
	var status string
	var completedAt sql.NullTime

	if err := rows.Scan(
		&e.ID,
		&e.OwnerID,
		&e.PuppyID,
		&e.ServiceID,
		&dailyListID,
		&e.ArrivalTime,
		&status,
		&e.Notes,
		&completedAt,
		&e.Position,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return queue.Entry{}, err
	}

	applyNullables(&e, dailyListID, status, completedAt)
	return e, nil
}

func applyNullables(e *queue.Entry, dailyListID sql.NullString, status string, completedAt sql.NullTime) {
	if dailyListID.Valid {
		e.DailyListID = dailyListID.String
	}
	e.Status = queue.Status(status)
	if completedAt.Valid {
		t := completedAt.Time
		e.CompletedAt = &t
	}
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
