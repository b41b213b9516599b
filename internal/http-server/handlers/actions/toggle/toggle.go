package toggle

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

type ActionCompleter interface {
	SetActionCompleted(ctx context.Context, id string, completed bool) (*api.ActionResponse, error)
}

type Request struct {
	api.ActionCompletedRequest
}

type Response struct {
	response.Response
	Action api.ActionResponse `json:"action,omitzero"`
}

func New(log *slog.Logger, completer ActionCompleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.toggle.New"

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

		action, err := completer.SetActionCompleted(r.Context(), id, *req.Completed)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("action not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "action not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update action", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update action"))
			return
		}

		log.Info("Action updated", slog.String("id", id), slog.Bool("completed", action.Completed))
		render.JSON(w, r, Response{Action: *action})
	}
}
