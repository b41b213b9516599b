package history

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

type HistoryLister interface {
	ListHistory(ctx context.Context, bookingID string) ([]*api.HistoryEntryResponse, error)
}

type Response struct {
	response.Response
	History []*api.HistoryEntryResponse `json:"history"`
}

func New(log *slog.Logger, lister HistoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.history.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		entries, err := lister.ListHistory(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("booking not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
			return
		}

		if err != nil {
			log.Error("Failed to list history", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list history"))
			return
		}

		render.JSON(w, r, Response{History: entries})
	}
}
