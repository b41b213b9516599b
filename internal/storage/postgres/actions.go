package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"booking-calendar/internal/models"
	"booking-calendar/internal/storage"
	"booking-calendar/pkg/response"
)

const actionColumns = `id, booking_id, title, due_date::text AS due_date, completed, created_at`

func scanAction(row rowScanner) (models.Action, error) {
	var a models.Action

	err := row.Scan(&a.ID, &a.BookingID, &a.Title, &a.DueDate, &a.Completed, &a.CreatedAt)

	return a, err
}

func (s *Storage) CreateAction(ctx context.Context, a *models.Action) error {
	const op = "storage.postgres.CreateAction"

	err := s.q.QueryRowContext(ctx,
		`INSERT INTO actions (id, booking_id, title, due_date, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		a.ID,
		a.BookingID,
		a.Title,
		a.DueDate,
		a.Completed,
	).Scan(&a.CreatedAt)
	if err != nil {
		return mapPQError(op, err)
	}

	return nil
}

func (s *Storage) GetAction(ctx context.Context, id string) (*models.Action, error) {
	const op = "storage.postgres.GetAction"

	a, err := scanAction(s.q.QueryRowContext(ctx, `SELECT `+actionColumns+` FROM actions WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &a, nil
}

func (s *Storage) ListActions(ctx context.Context, filter storage.ActionFilter) ([]models.Action, error) {
	const op = "storage.postgres.ListActions"

	var where []string
	var args []any

	if filter.BookingID != nil {
		args = append(args, *filter.BookingID)
		where = append(where, fmt.Sprintf("booking_id=$%d", len(args)))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		where = append(where, fmt.Sprintf("completed=$%d", len(args)))
	}

	query := `SELECT ` + actionColumns + ` FROM actions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY due_date ASC NULLS LAST, created_at ASC, id ASC`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	actions := []models.Action{}
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		actions = append(actions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return actions, nil
}

func (s *Storage) SetActionCompleted(ctx context.Context, id string, completed bool) (*models.Action, error) {
	const op = "storage.postgres.SetActionCompleted"

	a, err := scanAction(s.q.QueryRowContext(ctx,
		`UPDATE actions SET completed=$1 WHERE id=$2 RETURNING `+actionColumns, completed, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, mapPQError(op, err)
	}

	return &a, nil
}

func (s *Storage) DeleteAction(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteAction"

	res, err := s.q.ExecContext(ctx, `DELETE FROM actions WHERE id=$1`, id)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}
