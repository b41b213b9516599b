package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-calendar/api"
	"booking-calendar/internal/calendar"
	"booking-calendar/internal/lock"
	"booking-calendar/internal/models"
	"booking-calendar/internal/storage"
	"booking-calendar/pkg/response"

	"github.com/google/uuid"
)

const (
	defaultLockTTL    = 10 * time.Second
	defaultFetchLimit = 1000
)

type Service struct {
	store      storage.Store
	locker     lock.Locker
	lockTTL    time.Duration
	fetchLimit int
	loc        *time.Location
	now        func() time.Time
	newID      func() string
}

type Option func(*Service)

func WithLockTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithFetchLimit caps how many bookings a calendar view loads.
func WithFetchLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.fetchLimit = limit
		}
	}
}

// WithLocation sets the timezone used to decide what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(store storage.Store, locker lock.Locker, opts ...Option) *Service {
	s := &Service{
		store:      store,
		locker:     locker,
		lockTTL:    defaultLockTTL,
		fetchLimit: defaultFetchLimit,
		loc:        time.Local,
		now:        time.Now,
		newID:      uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

// Lines

func (s *Service) CreateLine(ctx context.Context, req *api.LineRequest) (*api.LineResponse, error) {
	const op = "service.CreateLine"

	line := &models.Line{ID: s.newID(), Name: req.Name}

	if err := s.store.CreateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toLineResponse(*line), nil
}

func (s *Service) GetLine(ctx context.Context, id string) (*api.LineResponse, error) {
	const op = "service.GetLine"

	line, err := s.store.GetLine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toLineResponse(*line), nil
}

func (s *Service) ListLines(ctx context.Context) ([]*api.LineResponse, error) {
	const op = "service.ListLines"

	lines, err := s.store.ListLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.LineResponse, 0, len(lines))
	for _, line := range lines {
		result = append(result, toLineResponse(line))
	}

	return result, nil
}

func (s *Service) UpdateLine(ctx context.Context, id string, req *api.LineRequest) (*api.LineResponse, error) {
	const op = "service.UpdateLine"

	line := &models.Line{ID: id, Name: req.Name}

	if err := s.store.UpdateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toLineResponse(*line), nil
}

// DeleteLine removes the line and, in the same transaction, every booking on
// it together with their history and actions.
func (s *Service) DeleteLine(ctx context.Context, id string) (*api.LineDeleteResponse, error) {
	const op = "service.DeleteLine"

	var deleted int64

	acquired, err := lock.WithLock(ctx, s.locker, lock.LineKey(id), s.lockTTL, func() error {
		return s.store.RunInTx(ctx, func(repo storage.Repository) error {
			if _, err := repo.GetLine(ctx, id); err != nil {
				return err
			}

			n, err := repo.DeleteBookingsByLine(ctx, id)
			if err != nil {
				return err
			}
			deleted = n

			return repo.DeleteLine(ctx, id)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}

	return &api.LineDeleteResponse{LineID: id, DeletedBookings: deleted}, nil
}

// LineImpact lists the line's bookings that overlap [from, to]. Empty bounds
// are open. It backs the confirmation shown before a line is deleted.
func (s *Service) LineImpact(ctx context.Context, id, from, to string) (*api.LineImpactResponse, error) {
	const op = "service.LineImpact"

	if _, err := s.store.GetLine(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	window := calendar.Interval{Start: "0000-01-01", End: "9999-12-31"}
	if from != "" {
		d, ok := calendar.Normalize(from)
		if !ok {
			return nil, fmt.Errorf("%s: from: %w", op, response.ErrInvalidDate)
		}
		window.Start = d
	}
	if to != "" {
		d, ok := calendar.Normalize(to)
		if !ok {
			return nil, fmt.Errorf("%s: to: %w", op, response.ErrInvalidDate)
		}
		window.End = d
	}

	bookings, err := s.store.ListBookings(ctx, storage.BookingFilter{LineID: &id})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	overlapping := calendar.OverlappingBookings(bookings, window)

	result := &api.LineImpactResponse{
		LineID:   id,
		From:     from,
		To:       to,
		Bookings: make([]api.BookingResponse, 0, len(overlapping)),
	}
	for _, b := range overlapping {
		result.Bookings = append(result.Bookings, *toBookingResponse(b))
	}

	return result, nil
}

// Course Types

func (s *Service) CreateCourseType(ctx context.Context, req *api.CourseTypeRequest) (*api.CourseTypeResponse, error) {
	const op = "service.CreateCourseType"

	ct := &models.CourseType{
		ID:             s.newID(),
		Name:           req.Name,
		Description:    req.Description,
		WeeklyCapacity: req.WeeklyCapacity,
	}

	if err := s.store.CreateCourseType(ctx, ct); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toCourseTypeResponse(*ct), nil
}

func (s *Service) GetCourseType(ctx context.Context, id string) (*api.CourseTypeResponse, error) {
	const op = "service.GetCourseType"

	ct, err := s.store.GetCourseType(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toCourseTypeResponse(*ct), nil
}

func (s *Service) ListCourseTypes(ctx context.Context) ([]*api.CourseTypeResponse, error) {
	const op = "service.ListCourseTypes"

	courseTypes, err := s.store.ListCourseTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.CourseTypeResponse, 0, len(courseTypes))
	for _, ct := range courseTypes {
		result = append(result, toCourseTypeResponse(ct))
	}

	return result, nil
}

func (s *Service) UpdateCourseType(ctx context.Context, id string, req *api.CourseTypeRequest) (*api.CourseTypeResponse, error) {
	const op = "service.UpdateCourseType"

	ct := &models.CourseType{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		WeeklyCapacity: req.WeeklyCapacity,
	}

	if err := s.store.UpdateCourseType(ctx, ct); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toCourseTypeResponse(*ct), nil
}

func (s *Service) DeleteCourseType(ctx context.Context, id string) error {
	const op = "service.DeleteCourseType"

	if err := s.store.DeleteCourseType(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Bookings

// bookingInput is a validated request: canonical dates and defaults applied.
type bookingInput struct {
	booking      models.Booking
	interval     calendar.Interval
	allowOverlap bool
}

func parseBookingRequest(req *api.BookingRequest) (bookingInput, error) {
	start, ok := calendar.Normalize(req.StartDate)
	if !ok {
		return bookingInput{}, fmt.Errorf("start_date %q: %w", req.StartDate, response.ErrInvalidDate)
	}
	end, ok := calendar.Normalize(req.EndDate)
	if !ok {
		return bookingInput{}, fmt.Errorf("end_date %q: %w", req.EndDate, response.ErrInvalidDate)
	}

	iv := calendar.Interval{Start: start, End: end}
	if !iv.Valid() {
		return bookingInput{}, fmt.Errorf("end_date before start_date: %w", response.ErrInvalidDate)
	}

	courseType := req.CourseType
	if courseType == "" {
		courseType = calendar.DefaultCourseLabel
	}

	return bookingInput{
		booking: models.Booking{
			LineID:     req.LineID,
			StudentID:  req.StudentID,
			CourseType: courseType,
			StartDate:  start.String(),
			EndDate:    end.String(),
			BillingTag: emptyToNil(req.BillingTag),
			Note:       emptyToNil(req.Note),
		},
		interval:     iv,
		allowOverlap: req.AllowOverlap,
	}, nil
}

// checkOverlap fails with response.ErrOverlap when another booking on the
// same line overlaps iv. excludeID skips the booking being edited.
func checkOverlap(ctx context.Context, repo storage.Repository, lineID string, iv calendar.Interval, excludeID string) error {
	existing, err := repo.ListBookings(ctx, storage.BookingFilter{LineID: &lineID})
	if err != nil {
		return err
	}

	for _, b := range calendar.OverlappingBookings(existing, iv) {
		if b.ID == excludeID {
			continue
		}
		return fmt.Errorf("conflicts with booking %s (%s → %s): %w", b.ID, b.StartDate, b.EndDate, response.ErrOverlap)
	}

	return nil
}

func (s *Service) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.CreateBooking"

	in, err := parseBookingRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking := in.booking
	booking.ID = s.newID()

	acquired, err := lock.WithLock(ctx, s.locker, lock.LineKey(booking.LineID), s.lockTTL, func() error {
		return s.store.RunInTx(ctx, func(repo storage.Repository) error {
			if _, err := repo.GetLine(ctx, booking.LineID); err != nil {
				return err
			}
			if _, err := repo.GetStudent(ctx, booking.StudentID); err != nil {
				return err
			}

			if !in.allowOverlap {
				if err := checkOverlap(ctx, repo, booking.LineID, in.interval, ""); err != nil {
					return err
				}
			}

			if err := repo.CreateBooking(ctx, &booking); err != nil {
				return err
			}

			return repo.AddHistory(ctx, &models.HistoryEntry{
				ID:          s.newID(),
				BookingID:   booking.ID,
				Description: fmt.Sprintf("Booking created: %s (%s → %s)", booking.CourseType, booking.StartDate, booking.EndDate),
			})
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}

	return toBookingResponse(booking), nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBookingResponse(*booking), nil
}

func (s *Service) ListBookings(ctx context.Context, lineID *string) ([]*api.BookingResponse, error) {
	const op = "service.ListBookings"

	bookings, err := s.store.ListBookings(ctx, storage.BookingFilter{LineID: lineID, Limit: s.fetchLimit})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, toBookingResponse(b))
	}

	return result, nil
}

func (s *Service) UpdateBooking(ctx context.Context, id string, req *api.BookingUpdateRequest) (*api.BookingResponse, error) {
	const op = "service.UpdateBooking"

	in, err := parseBookingRequest(&req.BookingRequest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := in.booking
	updated.ID = id

	acquired, err := lock.WithLock(ctx, s.locker, lock.LineKey(updated.LineID), s.lockTTL, func() error {
		return s.store.RunInTx(ctx, func(repo storage.Repository) error {
			current, err := repo.GetBooking(ctx, id)
			if err != nil {
				return err
			}

			if current.LineID != updated.LineID {
				if _, err := repo.GetLine(ctx, updated.LineID); err != nil {
					return err
				}
			}
			if current.StudentID != updated.StudentID {
				if _, err := repo.GetStudent(ctx, updated.StudentID); err != nil {
					return err
				}
			}

			if !in.allowOverlap {
				if err := checkOverlap(ctx, repo, updated.LineID, in.interval, id); err != nil {
					return err
				}
			}

			if err := repo.UpdateBooking(ctx, &updated, req.ExpectedUpdatedAt); err != nil {
				return err
			}

			for _, desc := range describeChanges(*current, updated) {
				entry := &models.HistoryEntry{ID: s.newID(), BookingID: id, Description: desc}
				if err := repo.AddHistory(ctx, entry); err != nil {
					return err
				}
			}

			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}

	return toBookingResponse(updated), nil
}

// describeChanges produces one history line per user-visible field change.
func describeChanges(before, after models.Booking) []string {
	var changes []string

	if before.LineID != after.LineID {
		changes = append(changes, fmt.Sprintf("Moved to line %s", after.LineID))
	}
	if before.StudentID != after.StudentID {
		changes = append(changes, fmt.Sprintf("Student changed to %s", after.StudentID))
	}
	if before.CourseType != after.CourseType {
		changes = append(changes, fmt.Sprintf("Course type changed to %q", after.CourseType))
	}
	if before.BillingTagValue() != after.BillingTagValue() {
		tag := after.BillingTagValue()
		if tag == "" {
			tag = "None"
		}
		changes = append(changes, fmt.Sprintf("Billing tag changed to %q", tag))
	}
	if before.StartDate != after.StartDate {
		changes = append(changes, fmt.Sprintf("Start date changed to %s", after.StartDate))
	}
	if before.EndDate != after.EndDate {
		changes = append(changes, fmt.Sprintf("End date changed to %s", after.EndDate))
	}
	if derefString(before.Note) != derefString(after.Note) {
		changes = append(changes, "Notes updated")
	}

	return changes
}

// DeleteBooking removes the booking with its history and actions in one
// transaction, holding the booking's line lock.
func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	const op = "service.DeleteBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	acquired, err := lock.WithLock(ctx, s.locker, lock.LineKey(booking.LineID), s.lockTTL, func() error {
		return s.store.RunInTx(ctx, func(repo storage.Repository) error {
			return repo.DeleteBooking(ctx, id)
		})
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !acquired {
		return fmt.Errorf("%s: %w", op, response.ErrLocked)
	}

	return nil
}

func (s *Service) ListHistory(ctx context.Context, bookingID string) ([]*api.HistoryEntryResponse, error) {
	const op = "service.ListHistory"

	if _, err := s.store.GetBooking(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.store.ListHistory(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, &api.HistoryEntryResponse{
			ID:          e.ID,
			BookingID:   e.BookingID,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		})
	}

	return result, nil
}

// IsClientError reports whether err was caused by the request rather than
// the service.
func IsClientError(err error) bool {
	return errors.Is(err, response.ErrInvalidDate) || errors.Is(err, response.ErrBadRequest)
}
