package service

import (
	"context"
	"fmt"

	"booking-calendar/api"
	"booking-calendar/internal/calendar"
	"booking-calendar/internal/ics"
	"booking-calendar/internal/storage"
	"booking-calendar/pkg/response"
)

// viewState builds a fresh cursor for one request. Nothing is kept between
// requests.
func (s *Service) viewState(q api.CalendarQuery) (*calendar.ViewState, error) {
	state := calendar.NewViewState(s.today())

	if q.Date != "" {
		d, ok := calendar.Normalize(q.Date)
		if !ok {
			return nil, fmt.Errorf("date %q: %w", q.Date, response.ErrInvalidDate)
		}
		t, err := d.Time()
		if err != nil {
			return nil, fmt.Errorf("date %q: %w", q.Date, response.ErrInvalidDate)
		}
		state.WeekBaseDate = t
		state.MonthBaseDate = t
	}

	state.SetFilterLineID(q.LineID)
	state.SetFilterCourseType(q.CourseType)
	state.SetFilterBillingTag(q.BillingTag)

	return state, nil
}

func (s *Service) loadDataset(ctx context.Context) (calendar.Dataset, error) {
	bookings, err := s.store.ListBookings(ctx, storage.BookingFilter{Limit: s.fetchLimit})
	if err != nil {
		return calendar.Dataset{}, err
	}

	lines, err := s.store.ListLines(ctx)
	if err != nil {
		return calendar.Dataset{}, err
	}

	courseTypes, err := s.store.ListCourseTypes(ctx)
	if err != nil {
		return calendar.Dataset{}, err
	}

	return calendar.Dataset{Bookings: bookings, Lines: lines, CourseTypes: courseTypes}, nil
}

func (s *Service) WeekView(ctx context.Context, q api.CalendarQuery) (*api.WeekViewResponse, error) {
	const op = "service.WeekView"

	state, err := s.viewState(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.loadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	studentNames := studentNameIndex(students)

	view := state.Snapshot(data)

	lines := make([]api.WeekLine, 0, len(view.VisibleLines))
	for _, line := range view.VisibleLines {
		cells := make(map[string]*api.BookingResponse, len(view.DayKeys))
		for _, day := range view.DayKeys {
			if b, ok := view.Occupancy.Lookup(line.ID, day); ok {
				cell := toBookingResponse(b)
				cell.StudentName = studentNames[b.StudentID]
				cells[day.String()] = cell
			} else {
				cells[day.String()] = nil
			}
		}
		lines = append(lines, api.WeekLine{LineID: line.ID, Name: line.Name, Cells: cells})
	}

	return &api.WeekViewResponse{
		WeekStart:         view.WeekStart.String(),
		WeekEnd:           view.WeekEnd.String(),
		DayKeys:           dateStrings(view.DayKeys),
		Policy:            string(view.Occupancy.Policy),
		Lines:             lines,
		Capacity:          toCapacityItems(view.Capacity),
		Conflicts:         toCellConflicts(view.Occupancy.Conflicts),
		CourseTypeOptions: view.CourseTypeOptions,
		BillingTagOptions: view.BillingTagOptions,
		CourseChips:       view.CourseChips,
	}, nil
}

func (s *Service) MonthView(ctx context.Context, q api.CalendarQuery) (*api.MonthViewResponse, error) {
	const op = "service.MonthView"

	state, err := s.viewState(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	state.SetViewMode(calendar.ViewMonth)

	data, err := s.loadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := state.Snapshot(data)

	days := make([]api.MonthDay, 0, len(view.Month))
	for _, d := range view.Month {
		days = append(days, api.MonthDay{
			Day:      d.Day.String(),
			InMonth:  d.InMonth,
			Total:    d.Counts.Total,
			ByCourse: d.Counts.ByCourse,
		})
	}

	return &api.MonthViewResponse{
		MonthStart: view.MonthStart.String(),
		Days:       days,
	}, nil
}

// Cell resolves a click on (lineID, q.Date) in the week grid that contains
// that day, under the same filters the grid was rendered with.
func (s *Service) Cell(ctx context.Context, lineID string, q api.CalendarQuery) (*api.CellResponse, error) {
	const op = "service.Cell"

	if q.Date == "" {
		return nil, fmt.Errorf("%s: day is required: %w", op, response.ErrInvalidDate)
	}

	state, err := s.viewState(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	state.JumpToWeek(state.WeekBaseDate)

	if _, err := s.store.GetLine(ctx, lineID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.loadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := state.Snapshot(data)
	day := calendar.ToDate(state.WeekBaseDate)
	action := view.Occupancy.ResolveCell(lineID, day)

	result := &api.CellResponse{
		Action: string(action.Kind),
		LineID: lineID,
		Day:    day.String(),
	}
	if action.Booking != nil {
		result.Booking = toBookingResponse(*action.Booking)
	}

	return result, nil
}

// LineCalendar renders the line's bookings as an iCalendar feed.
func (s *Service) LineCalendar(ctx context.Context, lineID string) ([]byte, error) {
	const op = "service.LineCalendar"

	line, err := s.store.GetLine(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings, err := s.store.ListBookings(ctx, storage.BookingFilter{LineID: &lineID, Limit: s.fetchLimit})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	body, err := ics.Export(*line, bookings, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return body, nil
}
