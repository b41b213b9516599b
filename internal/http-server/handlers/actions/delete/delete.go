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

type ActionDeleter interface {
	DeleteAction(ctx context.Context, id string) error
}

func New(log *slog.Logger, deleter ActionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		err := deleter.DeleteAction(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("action not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "action not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete action", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete action"))
			return
		}

		log.Info("Action deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
