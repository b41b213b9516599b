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

type BookingGetter interface {
	GetBooking(ctx context.Context, id string) (*api.BookingResponse, error)
	ListBookings(ctx context.Context, lineID *string) ([]*api.BookingResponse, error)
}

type Response struct {
	response.Response
	Bookings []api.BookingResponse `json:"bookings,omitempty"`
	Booking  *api.BookingResponse  `json:"booking,omitempty"`
}

func New(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			booking, err := getter.GetBooking(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("booking not found", slog.String("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get booking", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get booking"))
				return
			}

			render.JSON(w, r, Response{Booking: booking})
			return
		}

		var lineID *string
		if v := r.URL.Query().Get("line_id"); v != "" {
			lineID = &v
		}

		bookings, err := getter.ListBookings(r.Context(), lineID)
		if err != nil {
			log.Error("Failed to list bookings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list bookings"))
			return
		}

		log.Info("Bookings retrieved", slog.Int("count", len(bookings)))

		result := make([]api.BookingResponse, len(bookings))
		for i, b := range bookings {
			result[i] = *b
		}
		render.JSON(w, r, Response{Bookings: result})
	}
}
