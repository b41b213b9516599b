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

type CourseTypeCreator interface {
	CreateCourseType(ctx context.Context, req *api.CourseTypeRequest) (*api.CourseTypeResponse, error)
}

type Request struct {
	api.CourseTypeRequest
}

type Response struct {
	response.Response
	CourseType api.CourseTypeResponse `json:"course_type,omitzero"`
}

func New(log *slog.Logger, creator CourseTypeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.course_types.create.New"

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

		log.Info("Request body decoded", slog.Any("request", req))

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("Invalid request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		ct, err := creator.CreateCourseType(r.Context(), &req.CourseTypeRequest)

		if errors.Is(err, response.ErrConflict) {
			log.Error("course type already exists")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "course type with this name already exists"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("course type rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID), "weekly_capacity must be >= 0"))
			return
		}

		if err != nil {
			log.Error("Failed to create course type", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create course type"))
			return
		}

		log.Info("Course type created", slog.Any("course_type", ct))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{CourseType: *ct})
	}
}
