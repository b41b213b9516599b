package delete

import (
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

type StudentDeleter interface {
	DeleteStudent(ctx context.Context, id string) error
}

func New(log *slog.Logger, deleter StudentDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.students.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		err := deleter.DeleteStudent(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("student not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "student not found"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("student still has bookings", slog.String("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "student still has bookings"))
			return
		}

		if err != nil {
			log.Error("Failed to delete student", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete student"))
			return
		}

		log.Info("Student deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
