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
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type LineCreator interface {
	CreateLine(ctx context.Context, req *api.LineRequest) (*api.LineResponse, error)
}

type Request struct {
	api.LineRequest
}

type Response struct {
	response.Response
	Line api.LineResponse `json:"line,omitzero"`
}

func New(log *slog.Logger, creator LineCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lines.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

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

		line, err := creator.CreateLine(r.Context(), &req.LineRequest)

		if errors.Is(err, response.ErrConflict) {
			log.Error("line already exists")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "line already exists"))
			return
		}

		if err != nil {
			log.Error("Failed to create line", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create line"))
			return
		}

		log.Info("Line created", slog.Any("line", line))

		w.WriteHeader(http.StatusCreated)
		responseOK(w, r, line)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, line *api.LineResponse) {
	render.JSON(w, r, Response{
		Line: *line,
	})
}
