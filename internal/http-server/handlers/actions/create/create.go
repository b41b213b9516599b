package create

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

type ActionCreator interface {
	CreateAction(ctx context.Context, bookingID string, req *api.ActionRequest) (*api.ActionResponse, error)
}

type Request struct {
	api.ActionRequest
}

type Response struct {
	response.Response
	Action api.ActionResponse `json:"action,omitzero"`
}

func New(log *slog.Logger, creator ActionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		bookingID := chi.URLParam(r, "id")

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

		action, err := creator.CreateAction(r.Context(), bookingID, &req.ActionRequest)

		if errors.Is(err, response.ErrInvalidDate) {
			log.Error("invalid due date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "due_date must be YYYY-MM-DD"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("booking not found", slog.String("booking_id", bookingID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
			return
		}

		if err != nil {
			log.Error("Failed to create action", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create action"))
			return
		}

		log.Info("Action created", slog.String("id", action.ID), slog.String("booking_id", bookingID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Action: *action})
	}
}
