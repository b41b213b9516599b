package create

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
	"strings"
	"testing"
)

type creatorFunc func(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error)

func (f creatorFunc) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	return f(ctx, req)
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ok := func(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
		return &api.BookingResponse{
			ID: "b1", LineID: req.LineID, StudentID: req.StudentID,
			CourseType: "Course", StartDate: req.StartDate, EndDate: req.EndDate,
		}, nil
	}
	fail := func(err error) creatorFunc {
		return func(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
			return nil, fmt.Errorf("service.CreateBooking: %w", err)
		}
	}

	valid := `{"line_id":"l1","student_id":"s1","start_date":"2024-03-04","end_date":"2024-03-05"}`

	tests := []struct {
		name     string
		body     string
		creator  creatorFunc
		wantCode int
		wantErr  response.ErrCode
	}{
		{name: "created", body: valid, creator: ok, wantCode: http.StatusCreated},
		{name: "bad json", body: `{"line_id":`, creator: ok, wantCode: http.StatusBadRequest, wantErr: response.BAD_REQUEST},
		{name: "missing student", body: `{"line_id":"l1","start_date":"2024-03-04","end_date":"2024-03-05"}`, creator: ok, wantCode: http.StatusBadRequest, wantErr: response.INVALID},
		{name: "overlap", body: valid, creator: fail(response.ErrOverlap), wantCode: http.StatusConflict, wantErr: response.OVERLAP},
		{name: "locked", body: valid, creator: fail(response.ErrLocked), wantCode: http.StatusLocked, wantErr: response.LOCKED},
		{name: "bad dates", body: valid, creator: fail(response.ErrInvalidDate), wantCode: http.StatusBadRequest, wantErr: response.INVALID},
		{name: "unknown line", body: valid, creator: fail(response.ErrNotFound), wantCode: http.StatusNotFound, wantErr: response.NOT_FOUND},
		{name: "storage down", body: valid, creator: fail(fmt.Errorf("connection refused")), wantCode: http.StatusInternalServerError, wantErr: response.FAILED_REQUEST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			New(log, tt.creator).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}

			var resp Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if resp.Code != string(tt.wantErr) {
				t.Errorf("error code = %q, want %q", resp.Code, tt.wantErr)
			}
			if tt.wantErr == "" && resp.Booking.ID != "b1" {
				t.Errorf("booking = %+v", resp.Booking)
			}
		})
	}
}
