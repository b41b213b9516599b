package cell

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

type CellResolver interface {
	Cell(ctx context.Context, lineID string, q api.CalendarQuery) (*api.CellResponse, error)
}

type Response struct {
	response.Response
	api.CellResponse
}

// New tells the client what a click on (line_id, day) should open: the
// booking occupying the cell or a new booking prefilled with both.
func New(log *slog.Logger, resolver CellResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.cell.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()

		lineID := query.Get("line_id")
		if lineID == "" {
			log.Error("line_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "line_id is required"))
			return
		}

		q := api.CalendarQuery{
			Date:       query.Get("day"),
			CourseType: query.Get("course_type"),
			BillingTag: query.Get("billing_tag"),
		}

		res, err := resolver.Cell(r.Context(), lineID, q)

		if errors.Is(err, response.ErrInvalidDate) {
			log.Error("invalid day", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "day must be YYYY-MM-DD"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("line not found", slog.String("line_id", lineID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "line not found"))
			return
		}

		if err != nil {
			log.Error("Failed to resolve cell", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to resolve cell"))
			return
		}

		render.JSON(w, r, Response{CellResponse: *res})
	}
}
