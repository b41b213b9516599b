package week

import (
	"booking-calendar/api"
	"booking-calendar/pkg/response"
	"booking-calendar/pkg/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type WeekViewer interface {
	WeekView(ctx context.Context, q api.CalendarQuery) (*api.WeekViewResponse, error)
}

type Response struct {
	response.Response
	api.WeekViewResponse
}

// New serves the week grid. Query: date (any day of the week, default
// today), line_id, course_type, billing_tag.
func New(log *slog.Logger, viewer WeekViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.week.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()
		q := api.CalendarQuery{
			Date:       query.Get("date"),
			LineID:     query.Get("line_id"),
			CourseType: query.Get("course_type"),
			BillingTag: query.Get("billing_tag"),
		}

		view, err := viewer.WeekView(r.Context(), q)

		if errors.Is(err, response.ErrInvalidDate) {
			log.Error("invalid date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "date must be YYYY-MM-DD"))
			return
		}

		if err != nil {
			log.Error("Failed to build week view", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build week view"))
			return
		}

		if n := len(view.Conflicts); n > 0 {
			log.Warn("overlapping bookings hidden in week grid", slog.Int("cells", n))
		}

		render.JSON(w, r, Response{WeekViewResponse: *view})
	}
}
