package update

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
	"github.com/go-playground/validator/v10"
)

type BookingUpdater interface {
	UpdateBooking(ctx context.Context, id string, req *api.BookingUpdateRequest) (*api.BookingResponse, error)
}

type Request struct {
	api.BookingUpdateRequest
}

type Response struct {
	response.Response
	Booking api.BookingResponse `json:"booking,omitzero"`
}

func New(log *slog.Logger, updater BookingUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.update.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("Invalid request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		booking, err := updater.UpdateBooking(r.Context(), id, &req.BookingUpdateRequest)

		if errors.Is(err, response.ErrLocked) {
			log.Error("line is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "line is locked, try again"))
			return
		}

		if errors.Is(err, response.ErrStale) {
			log.Warn("stale update", slog.String("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.STALE), "booking was changed by someone else, reload and retry"))
			return
		}

		if errors.Is(err, response.ErrOverlap) {
			log.Warn("booking overlaps", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.OVERLAP), "booking overlaps another booking on the same line"))
			return
		}

		if errors.Is(err, response.ErrInvalidDate) {
			log.Error("invalid dates", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "start_date and end_date must be YYYY-MM-DD with start_date <= end_date"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("booking, line or student not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking, line or student not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update booking", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update booking"))
			return
		}

		log.Info("Booking updated", slog.String("id", booking.ID))

		render.JSON(w, r, Response{Booking: *booking})
	}
}
