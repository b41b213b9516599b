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

type StudentCreator interface {
	CreateStudent(ctx context.Context, req *api.StudentRequest) (*api.StudentResponse, error)
}

type Request struct {
	api.StudentRequest
}

type Response struct {
	response.Response
	Student api.StudentResponse `json:"student,omitzero"`
}

func New(log *slog.Logger, creator StudentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.students.create.New"

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

		st, err := creator.CreateStudent(r.Context(), &req.StudentRequest)

		if err != nil {
			log.Error("Failed to create student", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create student"))
			return
		}

		log.Info("Student created", slog.String("id", st.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Student: *st})
	}
}
