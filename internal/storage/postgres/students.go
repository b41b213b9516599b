package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"booking-calendar/internal/models"
	"booking-calendar/pkg/response"
)

const studentColumns = `id, full_name, email, phone, notes`

func (s *Storage) CreateStudent(ctx context.Context, st *models.Student) error {
	const op = "storage.postgres.CreateStudent"

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO students (`+studentColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		st.ID,
		st.FullName,
		st.Email,
		st.Phone,
		st.Notes,
	)
	if err != nil {
		return mapPQError(op, err)
	}

	return nil
}

func (s *Storage) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	const op = "storage.postgres.GetStudent"

	var st models.Student

	err := s.q.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id=$1`, id).
		Scan(&st.ID, &st.FullName, &st.Email, &st.Phone, &st.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &st, nil
}

func (s *Storage) ListStudents(ctx context.Context) ([]models.Student, error) {
	const op = "storage.postgres.ListStudents"

	rows, err := s.q.QueryContext(ctx, `SELECT `+studentColumns+` FROM students ORDER BY full_name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.FullName, &st.Email, &st.Phone, &st.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		students = append(students, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return students, nil
}

func (s *Storage) UpdateStudent(ctx context.Context, st *models.Student) error {
	const op = "storage.postgres.UpdateStudent"

	res, err := s.q.ExecContext(ctx,
		`UPDATE students SET full_name=$1, email=$2, phone=$3, notes=$4 WHERE id=$5`,
		st.FullName,
		st.Email,
		st.Phone,
		st.Notes,
		st.ID,
	)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}

func (s *Storage) DeleteStudent(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteStudent"

	res, err := s.q.ExecContext(ctx, `DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}
