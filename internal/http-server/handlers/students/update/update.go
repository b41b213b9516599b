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

type StudentUpdater interface {
	UpdateStudent(ctx context.Context, id string, req *api.StudentRequest) (*api.StudentResponse, error)
}

type Request struct {
	api.StudentRequest
}

type Response struct {
	response.Response
	Student api.StudentResponse `json:"student,omitzero"`
}

func New(log *slog.Logger, updater StudentUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.students.update.New"

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

		st, err := updater.UpdateStudent(r.Context(), id, &req.StudentRequest)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("student not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "student not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update student", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update student"))
			return
		}

		log.Info("Student updated", slog.String("id", st.ID))
		render.JSON(w, r, Response{Student: *st})
	}
}
