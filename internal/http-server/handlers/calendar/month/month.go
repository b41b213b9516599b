package month

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

type MonthViewer interface {
	MonthView(ctx context.Context, q api.CalendarQuery) (*api.MonthViewResponse, error)
}

type Response struct {
	response.Response
	api.MonthViewResponse
}

func New(log *slog.Logger, viewer MonthViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.month.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()
		q := api.CalendarQuery{
			Date:       query.Get("month"),
			LineID:     query.Get("line_id"),
			CourseType: query.Get("course_type"),
			BillingTag: query.Get("billing_tag"),
		}

		view, err := viewer.MonthView(r.Context(), q)

		if errors.Is(err, response.ErrInvalidDate) {
			log.Error("invalid month", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "month must be YYYY-MM-DD"))
			return
		}

		if err != nil {
			log.Error("Failed to build month view", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build month view"))
			return
		}

		render.JSON(w, r, Response{MonthViewResponse: *view})
	}
}
