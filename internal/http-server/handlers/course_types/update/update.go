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

type CourseTypeUpdater interface {
	UpdateCourseType(ctx context.Context, id string, req *api.CourseTypeRequest) (*api.CourseTypeResponse, error)
}

type Request struct {
	api.CourseTypeRequest
}

type Response struct {
	response.Response
	CourseType api.CourseTypeResponse `json:"course_type,omitzero"`
}

func New(log *slog.Logger, updater CourseTypeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.course_types.update.New"

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

		ct, err := updater.UpdateCourseType(r.Context(), id, &req.CourseTypeRequest)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("course type not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "course type not found"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("course type name taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "course type with this name already exists"))
			return
		}

		if err != nil {
			log.Error("Failed to update course type", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update course type"))
			return
		}

		log.Info("Course type updated", slog.Any("course_type", ct))
		render.JSON(w, r, Response{CourseType: *ct})
	}
}
