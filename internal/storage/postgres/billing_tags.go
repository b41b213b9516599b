package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"booking-calendar/internal/models"
	"booking-calendar/pkg/response"
)

func (s *Storage) CreateBillingTag(ctx context.Context, tag *models.BillingTag) error {
	const op = "storage.postgres.CreateBillingTag"

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO billing_tags (id, name, description) VALUES ($1, $2, $3)`,
		tag.ID, tag.Name, tag.Description)
	if err != nil {
		return mapPQError(op, err)
	}

	return nil
}

func (s *Storage) GetBillingTag(ctx context.Context, id string) (*models.BillingTag, error) {
	const op = "storage.postgres.GetBillingTag"

	var tag models.BillingTag

	err := s.q.QueryRowContext(ctx, `SELECT id, name, description FROM billing_tags WHERE id=$1`, id).
		Scan(&tag.ID, &tag.Name, &tag.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tag, nil
}

func (s *Storage) ListBillingTags(ctx context.Context) ([]models.BillingTag, error) {
	const op = "storage.postgres.ListBillingTags"

	rows, err := s.q.QueryContext(ctx, `SELECT id, name, description FROM billing_tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	tags := []models.BillingTag{}
	for rows.Next() {
		var tag models.BillingTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tags, nil
}

func (s *Storage) UpdateBillingTag(ctx context.Context, tag *models.BillingTag) error {
	const op = "storage.postgres.UpdateBillingTag"

	res, err := s.q.ExecContext(ctx,
		`UPDATE billing_tags SET name=$1, description=$2 WHERE id=$3`,
		tag.Name, tag.Description, tag.ID)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}

func (s *Storage) DeleteBillingTag(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteBillingTag"

	res, err := s.q.ExecContext(ctx, `DELETE FROM billing_tags WHERE id=$1`, id)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}
