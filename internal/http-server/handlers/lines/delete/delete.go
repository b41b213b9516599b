package delete

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

// LineDeleter removes a line together with all of its bookings.
type LineDeleter interface {
	DeleteLine(ctx context.Context, id string) (*api.LineDeleteResponse, error)
}

type Response struct {
	response.Response
	api.LineDeleteResponse
}

func New(log *slog.Logger, deleter LineDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lines.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		res, err := deleter.DeleteLine(r.Context(), id)

		if errors.Is(err, response.ErrLocked) {
			log.Error("line is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "line is locked, try again"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("line not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "line not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete line", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete line"))
			return
		}

		log.Info("Line deleted", slog.String("id", id), slog.Int64("deleted_bookings", res.DeletedBookings))
		render.JSON(w, r, Response{LineDeleteResponse: *res})
	}
}
