package impact

import (
	"booking-calendar/api"
	"booking-calendar/pkg/response"
	"booking-calendar/pkg/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ImpactChecker interface {
	LineImpact(ctx context.Context, id, from, to string) (*api.LineImpactResponse, error)
}

type Response struct {
	response.Response
	api.LineImpactResponse
}

func New(log *slog.Logger, checker ImpactChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lines.impact.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")

		res, err := checker.LineImpact(r.Context(), id, from, to)

		if errors.Is(err, response.ErrInvalidDate) {
			log.Error("invalid range", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "from and to must be YYYY-MM-DD"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("line not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "line not found"))
			return
		}

		if err != nil {
			log.Error("Failed to check line impact", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to check line impact"))
			return
		}

		log.Debug("Line impact computed", slog.Int("bookings", len(res.Bookings)))
		render.JSON(w, r, Response{LineImpactResponse: *res})
	}
}
