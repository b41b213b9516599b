package get

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

type ActionLister interface {
	ListBookingActions(ctx context.Context, bookingID string) ([]api.ActionResponse, error)
	Todo(ctx context.Context, status string) ([]api.TodoItem, error)
}

type Response struct {
	response.Response
	Actions []api.ActionResponse `json:"actions,omitempty"`
	Todo    []api.TodoItem       `json:"todo,omitempty"`
}

// New serves both /bookings/{id}/actions and the cross-booking to-do list at
// /actions?status=open|done|all.
func New(log *slog.Logger, lister ActionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if bookingID := chi.URLParam(r, "id"); bookingID != "" {
			actions, err := lister.ListBookingActions(r.Context(), bookingID)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("booking not found", slog.String("booking_id", bookingID))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
				return
			}

			if err != nil {
				log.Error("Failed to list actions", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list actions"))
				return
			}

			render.JSON(w, r, Response{Actions: actions})
			return
		}

		status := r.URL.Query().Get("status")

		todo, err := lister.Todo(r.Context(), status)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("unknown status", slog.String("status", status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "status must be open, done or all"))
			return
		}

		if err != nil {
			log.Error("Failed to list to-do", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list actions"))
			return
		}

		render.JSON(w, r, Response{Todo: todo})
	}
}
