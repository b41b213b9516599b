package storage

import (
	"context"
	"time"

	"booking-calendar/internal/models"
)

// Repository is the data access surface of the service. Not-found rows are
// reported as response.ErrNotFound.
type Repository interface {
	// Lines
	CreateLine(ctx context.Context, line *models.Line) error
	GetLine(ctx context.Context, id string) (*models.Line, error)
	ListLines(ctx context.Context) ([]models.Line, error)
	UpdateLine(ctx context.Context, line *models.Line) error
	DeleteLine(ctx context.Context, id string) error

	// Students
	CreateStudent(ctx context.Context, st *models.Student) error
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	UpdateStudent(ctx context.Context, st *models.Student) error
	DeleteStudent(ctx context.Context, id string) error

	// Billing tags
	CreateBillingTag(ctx context.Context, tag *models.BillingTag) error
	GetBillingTag(ctx context.Context, id string) (*models.BillingTag, error)
	ListBillingTags(ctx context.Context) ([]models.BillingTag, error)
	UpdateBillingTag(ctx context.Context, tag *models.BillingTag) error
	DeleteBillingTag(ctx context.Context, id string) error

	// Course types
	CreateCourseType(ctx context.Context, ct *models.CourseType) error
	GetCourseType(ctx context.Context, id string) (*models.CourseType, error)
	ListCourseTypes(ctx context.Context) ([]models.CourseType, error)
	UpdateCourseType(ctx context.Context, ct *models.CourseType) error
	DeleteCourseType(ctx context.Context, id string) error

	// Bookings
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking, expectedUpdatedAt *time.Time) error
	// DeleteBooking and DeleteBookingsByLine also remove the bookings'
	// actions and history. Run them inside RunInTx.
	DeleteBooking(ctx context.Context, id string) error
	DeleteBookingsByLine(ctx context.Context, lineID string) (int64, error)

	// Actions
	CreateAction(ctx context.Context, a *models.Action) error
	GetAction(ctx context.Context, id string) (*models.Action, error)
	ListActions(ctx context.Context, filter ActionFilter) ([]models.Action, error)
	SetActionCompleted(ctx context.Context, id string, completed bool) (*models.Action, error)
	DeleteAction(ctx context.Context, id string) error

	// History
	AddHistory(ctx context.Context, entry *models.HistoryEntry) error
	ListHistory(ctx context.Context, bookingID string) ([]models.HistoryEntry, error)
}

// Store is a Repository that can run a group of calls in one transaction.
type Store interface {
	Repository
	RunInTx(ctx context.Context, fn func(repo Repository) error) error
}

// BookingFilter narrows a booking listing. Results are always ordered by
// start_date ascending, then id, which is the order the calendar relies on
// for first-match cell resolution.
type BookingFilter struct {
	LineID    *string
	StudentID *string
	Limit     int
}

// ActionFilter narrows an action listing. Results are ordered by due date
// with undated actions last.
type ActionFilter struct {
	BookingID *string
	Completed *bool
}
