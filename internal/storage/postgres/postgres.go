package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"booking-calendar/internal/models"
	"booking-calendar/internal/storage"
	"booking-calendar/pkg/response"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

var _ storage.Store = (*Storage)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Storage struct {
	db *sql.DB
	q  querier
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db, q: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RunInTx runs fn against a transaction-bound copy of the storage. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (s *Storage) RunInTx(ctx context.Context, fn func(repo storage.Repository) error) error {
	const op = "storage.postgres.RunInTx"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Storage{db: s.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func mapPQError(op string, err error) error {
	var sqlErr *pq.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code {
		case "23503":
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		case "23505":
			return fmt.Errorf("%s: %w", op, response.ErrConflict)
		case "23514", "22007", "22008":
			return fmt.Errorf("%s: %w", op, response.ErrBadRequest)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func affectedOrNotFound(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### lines ####

func (s *Storage) CreateLine(ctx context.Context, line *models.Line) error {
	const op = "storage.postgres.CreateLine"

	_, err := s.q.ExecContext(ctx, `INSERT INTO lines (id, name) VALUES ($1, $2)`, line.ID, line.Name)
	if err != nil {
		return mapPQError(op, err)
	}

	return nil
}

func (s *Storage) GetLine(ctx context.Context, id string) (*models.Line, error) {
	const op = "storage.postgres.GetLine"

	var line models.Line

	err := s.q.QueryRowContext(ctx, `SELECT id, name FROM lines WHERE id=$1`, id).Scan(&line.ID, &line.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &line, nil
}

func (s *Storage) ListLines(ctx context.Context) ([]models.Line, error) {
	const op = "storage.postgres.ListLines"

	rows, err := s.q.QueryContext(ctx, `SELECT id, name FROM lines ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	lines := []models.Line{}
	for rows.Next() {
		var line models.Line
		if err := rows.Scan(&line.ID, &line.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lines, nil
}

func (s *Storage) UpdateLine(ctx context.Context, line *models.Line) error {
	const op = "storage.postgres.UpdateLine"

	res, err := s.q.ExecContext(ctx, `UPDATE lines SET name=$1 WHERE id=$2`, line.Name, line.ID)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}

func (s *Storage) DeleteLine(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteLine"

	res, err := s.q.ExecContext(ctx, `DELETE FROM lines WHERE id=$1`, id)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}

// #### course types ####

func (s *Storage) CreateCourseType(ctx context.Context, ct *models.CourseType) error {
	const op = "storage.postgres.CreateCourseType"

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO course_types (id, name, description, weekly_capacity) VALUES ($1, $2, $3, $4)`,
		ct.ID,
		ct.Name,
		ct.Description,
		ct.WeeklyCapacity,
	)
	if err != nil {
		return mapPQError(op, err)
	}

	return nil
}

func (s *Storage) GetCourseType(ctx context.Context, id string) (*models.CourseType, error) {
	const op = "storage.postgres.GetCourseType"

	var ct models.CourseType
	var capacity sql.NullInt64

	err := s.q.QueryRowContext(ctx,
		`SELECT id, name, description, weekly_capacity FROM course_types WHERE id=$1`, id).
		Scan(&ct.ID, &ct.Name, &ct.Description, &capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ct.WeeklyCapacity = nullableInt(capacity)

	return &ct, nil
}

func (s *Storage) ListCourseTypes(ctx context.Context) ([]models.CourseType, error) {
	const op = "storage.postgres.ListCourseTypes"

	rows, err := s.q.QueryContext(ctx,
		`SELECT id, name, description, weekly_capacity FROM course_types ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	courseTypes := []models.CourseType{}
	for rows.Next() {
		var ct models.CourseType
		var capacity sql.NullInt64

		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Description, &capacity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		ct.WeeklyCapacity = nullableInt(capacity)
		courseTypes = append(courseTypes, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return courseTypes, nil
}

func (s *Storage) UpdateCourseType(ctx context.Context, ct *models.CourseType) error {
	const op = "storage.postgres.UpdateCourseType"

	res, err := s.q.ExecContext(ctx,
		`UPDATE course_types SET name=$1, description=$2, weekly_capacity=$3 WHERE id=$4`,
		ct.Name,
		ct.Description,
		ct.WeeklyCapacity,
		ct.ID,
	)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}

func (s *Storage) DeleteCourseType(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteCourseType"

	res, err := s.q.ExecContext(ctx, `DELETE FROM course_types WHERE id=$1`, id)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// #### bookings ####

const bookingColumns = `id, line_id, student_id, course_type, start_date::text AS start_date, end_date::text AS end_date, billing_tag, note, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBooking reads DATE columns as text and canonicalises them. lib/pq
// hands dates back as timestamps, so the suffix is stripped here, once.
func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking

	err := row.Scan(
		&b.ID,
		&b.LineID,
		&b.StudentID,
		&b.CourseType,
		&b.StartDate,
		&b.EndDate,
		&b.BillingTag,
		&b.Note,
		&b.UpdatedAt,
	)

	return b, err
}

func (s *Storage) CreateBooking(ctx context.Context, b *models.Booking) error {
	const op = "storage.postgres.CreateBooking"

	err := s.q.QueryRowContext(ctx,
		`INSERT INTO bookings
		(id, line_id, student_id, course_type, start_date, end_date, billing_tag, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING updated_at`,
		b.ID,
		b.LineID,
		b.StudentID,
		b.CourseType,
		b.StartDate,
		b.EndDate,
		b.BillingTag,
		b.Note,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return mapPQError(op, err)
	}

	return nil
}

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	b, err := scanBooking(s.q.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

func (s *Storage) ListBookings(ctx context.Context, filter storage.BookingFilter) ([]models.Booking, error) {
	const op = "storage.postgres.ListBookings"

	var where []string
	var args []any

	if filter.LineID != nil {
		args = append(args, *filter.LineID)
		where = append(where, fmt.Sprintf("line_id=$%d", len(args)))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		where = append(where, fmt.Sprintf("student_id=$%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY start_date ASC, id ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

// UpdateBooking writes b. When expectedUpdatedAt is set the row is only
// updated if it has not changed since; otherwise response.ErrStale.
func (s *Storage) UpdateBooking(ctx context.Context, b *models.Booking, expectedUpdatedAt *time.Time) error {
	const op = "storage.postgres.UpdateBooking"

	query := `UPDATE bookings SET
		line_id=$1, student_id=$2, course_type=$3, start_date=$4, end_date=$5,
		billing_tag=$6, note=$7, updated_at=now()
		WHERE id=$8`
	args := []any{b.LineID, b.StudentID, b.CourseType, b.StartDate, b.EndDate, b.BillingTag, b.Note, b.ID}

	if expectedUpdatedAt != nil {
		query += ` AND updated_at=$9`
		args = append(args, *expectedUpdatedAt)
	}

	err := s.q.QueryRowContext(ctx, query+` RETURNING updated_at`, args...).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if expectedUpdatedAt != nil {
				return fmt.Errorf("%s: %w", op, response.ErrStale)
			}
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return mapPQError(op, err)
	}

	return nil
}

// DeleteBooking removes the booking together with its actions and history.
func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteBooking"

	if _, err := s.q.ExecContext(ctx, `DELETE FROM actions WHERE booking_id=$1`, id); err != nil {
		return fmt.Errorf("%s: actions: %w", op, err)
	}

	if _, err := s.q.ExecContext(ctx, `DELETE FROM booking_history WHERE booking_id=$1`, id); err != nil {
		return fmt.Errorf("%s: history: %w", op, err)
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return mapPQError(op, err)
	}

	return affectedOrNotFound(op, res)
}

func (s *Storage) DeleteBookingsByLine(ctx context.Context, lineID string) (int64, error) {
	const op = "storage.postgres.DeleteBookingsByLine"

	const ofLine = `(SELECT id FROM bookings WHERE line_id=$1)`

	if _, err := s.q.ExecContext(ctx, `DELETE FROM actions WHERE booking_id IN `+ofLine, lineID); err != nil {
		return 0, fmt.Errorf("%s: actions: %w", op, err)
	}

	if _, err := s.q.ExecContext(ctx, `DELETE FROM booking_history WHERE booking_id IN `+ofLine, lineID); err != nil {
		return 0, fmt.Errorf("%s: history: %w", op, err)
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM bookings WHERE line_id=$1`, lineID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// #### history ####

func (s *Storage) AddHistory(ctx context.Context, entry *models.HistoryEntry) error {
	const op = "storage.postgres.AddHistory"

	err := s.q.QueryRowContext(ctx,
		`INSERT INTO booking_history (id, booking_id, description) VALUES ($1, $2, $3) RETURNING created_at`,
		entry.ID,
		entry.BookingID,
		entry.Description,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return mapPQError(op, err)
	}

	return nil
}

func (s *Storage) ListHistory(ctx context.Context, bookingID string) ([]models.HistoryEntry, error) {
	const op = "storage.postgres.ListHistory"

	rows, err := s.q.QueryContext(ctx,
		`SELECT id, booking_id, description, created_at
		FROM booking_history WHERE booking_id=$1
		ORDER BY created_at DESC, id DESC`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
