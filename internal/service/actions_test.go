package service

import (
	"context"
	"errors"
	"testing"

	"booking-calendar/api"
	"booking-calendar/pkg/response"
)

func TestCreateAction(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	line := mustLine(t, svc, "Line A")
	b := mustBooking(t, svc, api.BookingRequest{LineID: line, StudentID: "s1", StartDate: "2024-03-04", EndDate: "2024-03-08"})

	tests := []struct {
		name        string
		bookingID   string
		req         api.ActionRequest
		wantDue     string
		wantOverdue bool
		wantErr     error
	}{
		{name: "past due", bookingID: b.ID, req: api.ActionRequest{Title: "Invoice", DueDate: "2024-03-05"}, wantDue: "2024-03-05", wantOverdue: true},
		{name: "due today", bookingID: b.ID, req: api.ActionRequest{Title: "Call", DueDate: "2024-03-06T08:00:00Z"}, wantDue: "2024-03-06"},
		{name: "undated", bookingID: b.ID, req: api.ActionRequest{Title: "Pack books"}},
		{name: "bad due date", bookingID: b.ID, req: api.ActionRequest{Title: "x", DueDate: "soon"}, wantErr: response.ErrInvalidDate},
		{name: "unknown booking", bookingID: "nope", req: api.ActionRequest{Title: "x"}, wantErr: response.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CreateAction(ctx, tt.bookingID, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var due string
			if got.DueDate != nil {
				due = *got.DueDate
			}
			if due != tt.wantDue {
				t.Errorf("due = %q, want %q", due, tt.wantDue)
			}
			if got.Overdue != tt.wantOverdue {
				t.Errorf("overdue = %v, want %v", got.Overdue, tt.wantOverdue)
			}
		})
	}

	listed, err := svc.ListBookingActions(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListBookingActions: %v", err)
	}
	var titles []string
	for _, a := range listed {
		titles = append(titles, a.Title)
	}
	if len(titles) != 3 || titles[0] != "Invoice" || titles[1] != "Call" || titles[2] != "Pack books" {
		t.Errorf("titles = %q, want due order with undated last", titles)
	}

	if _, err := svc.ListBookingActions(ctx, "nope"); !errors.Is(err, response.ErrNotFound) {
		t.Errorf("unknown booking error = %v, want ErrNotFound", err)
	}
}

func TestTodo(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	line := mustLine(t, svc, "Line A")
	b := mustBooking(t, svc, api.BookingRequest{
		LineID: line, StudentID: "s1", CourseType: "Math", StartDate: "2024-03-04", EndDate: "2024-03-08",
	})

	overdue, err := svc.CreateAction(ctx, b.ID, &api.ActionRequest{Title: "Invoice", DueDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("CreateAction: %v", err)
	}
	if _, err := svc.CreateAction(ctx, b.ID, &api.ActionRequest{Title: "Call"}); err != nil {
		t.Fatalf("CreateAction: %v", err)
	}
	done, err := svc.CreateAction(ctx, b.ID, &api.ActionRequest{Title: "Book room", DueDate: "2024-02-20"})
	if err != nil {
		t.Fatalf("CreateAction: %v", err)
	}

	toggled, err := svc.SetActionCompleted(ctx, done.ID, true)
	if err != nil {
		t.Fatalf("SetActionCompleted: %v", err)
	}
	if !toggled.Completed || toggled.Overdue {
		t.Errorf("toggled = %+v, want completed and not overdue", toggled)
	}

	tests := []struct {
		status     string
		wantTitles []string
		wantErr    error
	}{
		{status: "", wantTitles: []string{"Invoice", "Call"}},
		{status: TodoOpen, wantTitles: []string{"Invoice", "Call"}},
		{status: TodoDone, wantTitles: []string{"Book room"}},
		{status: TodoAll, wantTitles: []string{"Book room", "Invoice", "Call"}},
		{status: "later", wantErr: response.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run("status="+tt.status, func(t *testing.T) {
			items, err := svc.Todo(ctx, tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != len(tt.wantTitles) {
				t.Fatalf("items = %d, want %d", len(items), len(tt.wantTitles))
			}
			for i, item := range items {
				if item.Title != tt.wantTitles[i] {
					t.Errorf("item %d = %q, want %q", i, item.Title, tt.wantTitles[i])
				}
				if item.LineName != "Line A" || item.StudentName != "Student 1" || item.CourseType != "Math" {
					t.Errorf("item %d context = %+v", i, item)
				}
			}
		})
	}

	items, err := svc.Todo(ctx, TodoOpen)
	if err != nil {
		t.Fatalf("Todo: %v", err)
	}
	if items[0].ID != overdue.ID || !items[0].Overdue {
		t.Errorf("first open item = %+v, want overdue %s", items[0], overdue.ID)
	}
}

func TestDeleteAction(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	line := mustLine(t, svc, "Line A")
	b := mustBooking(t, svc, api.BookingRequest{LineID: line, StudentID: "s1", StartDate: "2024-03-04", EndDate: "2024-03-08"})

	a, err := svc.CreateAction(ctx, b.ID, &api.ActionRequest{Title: "Invoice"})
	if err != nil {
		t.Fatalf("CreateAction: %v", err)
	}

	if err := svc.DeleteAction(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAction: %v", err)
	}
	if len(store.actions) != 0 {
		t.Errorf("actions left = %d", len(store.actions))
	}
	if err := svc.DeleteAction(ctx, a.ID); !errors.Is(err, response.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
	if _, err := svc.SetActionCompleted(ctx, a.ID, true); !errors.Is(err, response.ErrNotFound) {
		t.Errorf("toggle error = %v, want ErrNotFound", err)
	}
}
