package week

import (
	"booking-calendar/api"
	"booking-calendar/pkg/response"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

type viewerStub struct {
	got  api.CalendarQuery
	view *api.WeekViewResponse
	err  error
}

func (v *viewerStub) WeekView(ctx context.Context, q api.CalendarQuery) (*api.WeekViewResponse, error) {
	v.got = q
	return v.view, v.err
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("passes query through", func(t *testing.T) {
		stub := &viewerStub{view: &api.WeekViewResponse{
			WeekStart: "2024-03-04",
			WeekEnd:   "2024-03-10",
			Capacity:  []api.CapacityItem{{Name: "Math", Capacity: 2, Booked: 3, State: "over"}},
		}}

		req := httptest.NewRequest(http.MethodGet, "/calendar/week?date=2024-03-06&line_id=l1&course_type=Math&billing_tag=A", nil)
		rec := httptest.NewRecorder()

		New(log, stub).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		want := api.CalendarQuery{Date: "2024-03-06", LineID: "l1", CourseType: "Math", BillingTag: "A"}
		if stub.got != want {
			t.Errorf("query = %+v, want %+v", stub.got, want)
		}

		var resp Response
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.WeekStart != "2024-03-04" || len(resp.Capacity) != 1 || resp.Capacity[0].State != "over" {
			t.Errorf("response = %+v", resp.WeekViewResponse)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		stub := &viewerStub{err: fmt.Errorf("service.WeekView: %w", response.ErrInvalidDate)}

		req := httptest.NewRequest(http.MethodGet, "/calendar/week?date=tomorrow", nil)
		rec := httptest.NewRecorder()

		New(log, stub).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
