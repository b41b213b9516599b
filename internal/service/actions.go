package service

import (
	"context"
	"fmt"

	"booking-calendar/api"
	"booking-calendar/internal/calendar"
	"booking-calendar/internal/models"
	"booking-calendar/internal/storage"
	"booking-calendar/pkg/response"
)

// Todo list filters.
const (
	TodoOpen = "open"
	TodoDone = "done"
	TodoAll  = "all"
)

func (s *Service) todayKey() calendar.Date {
	return calendar.ToDate(s.today())
}

func (s *Service) CreateAction(ctx context.Context, bookingID string, req *api.ActionRequest) (*api.ActionResponse, error) {
	const op = "service.CreateAction"

	action := &models.Action{ID: s.newID(), BookingID: bookingID, Title: req.Title}

	if req.DueDate != "" {
		due, ok := calendar.Normalize(req.DueDate)
		if !ok {
			return nil, fmt.Errorf("%s: due_date %q: %w", op, req.DueDate, response.ErrInvalidDate)
		}
		d := due.String()
		action.DueDate = &d
	}

	err := s.store.RunInTx(ctx, func(repo storage.Repository) error {
		if _, err := repo.GetBooking(ctx, bookingID); err != nil {
			return err
		}

		return repo.CreateAction(ctx, action)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := toActionResponse(*action, s.todayKey())
	return &res, nil
}

// ListBookingActions lists one booking's actions, soonest due first.
func (s *Service) ListBookingActions(ctx context.Context, bookingID string) ([]api.ActionResponse, error) {
	const op = "service.ListBookingActions"

	if _, err := s.store.GetBooking(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	actions, err := s.store.ListActions(ctx, storage.ActionFilter{BookingID: &bookingID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	today := s.todayKey()

	result := make([]api.ActionResponse, 0, len(actions))
	for _, a := range actions {
		result = append(result, toActionResponse(a, today))
	}

	return result, nil
}

// Todo lists actions across all bookings. status is TodoOpen, TodoDone or
// TodoAll; empty means TodoOpen.
func (s *Service) Todo(ctx context.Context, status string) ([]api.TodoItem, error) {
	const op = "service.Todo"

	filter := storage.ActionFilter{}
	switch status {
	case "", TodoOpen:
		open := false
		filter.Completed = &open
	case TodoDone:
		done := true
		filter.Completed = &done
	case TodoAll:
	default:
		return nil, fmt.Errorf("%s: status %q: %w", op, status, response.ErrBadRequest)
	}

	actions, err := s.store.ListActions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings, err := s.store.ListBookings(ctx, storage.BookingFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lines, err := s.store.ListLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookingsByID := make(map[string]models.Booking, len(bookings))
	for _, b := range bookings {
		bookingsByID[b.ID] = b
	}
	lineNames := make(map[string]string, len(lines))
	for _, l := range lines {
		lineNames[l.ID] = l.Name
	}
	studentNames := studentNameIndex(students)

	today := s.todayKey()

	result := make([]api.TodoItem, 0, len(actions))
	for _, a := range actions {
		item := api.TodoItem{ActionResponse: toActionResponse(a, today)}
		if b, ok := bookingsByID[a.BookingID]; ok {
			item.LineID = b.LineID
			item.LineName = lineNames[b.LineID]
			item.StudentID = b.StudentID
			item.StudentName = studentNames[b.StudentID]
			item.CourseType = b.CourseType
			item.StartDate = b.StartDate
			item.EndDate = b.EndDate
		}
		result = append(result, item)
	}

	return result, nil
}

func (s *Service) SetActionCompleted(ctx context.Context, id string, completed bool) (*api.ActionResponse, error) {
	const op = "service.SetActionCompleted"

	action, err := s.store.SetActionCompleted(ctx, id, completed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := toActionResponse(*action, s.todayKey())
	return &res, nil
}

func (s *Service) DeleteAction(ctx context.Context, id string) error {
	const op = "service.DeleteAction"

	if err := s.store.DeleteAction(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func studentNameIndex(students []models.Student) map[string]string {
	names := make(map[string]string, len(students))
	for _, st := range students {
		names[st.ID] = st.FullName
	}
	return names
}
