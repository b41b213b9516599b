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

type CourseTypeGetter interface {
	GetCourseType(ctx context.Context, id string) (*api.CourseTypeResponse, error)
	ListCourseTypes(ctx context.Context) ([]*api.CourseTypeResponse, error)
}

type Response struct {
	response.Response
	CourseTypes []*api.CourseTypeResponse `json:"course_types,omitempty"`
	CourseType  *api.CourseTypeResponse   `json:"course_type,omitempty"`
}

func New(log *slog.Logger, getter CourseTypeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.course_types.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			ct, err := getter.GetCourseType(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("course type not found", slog.String("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "course type not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get course type", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get course type"))
				return
			}

			render.JSON(w, r, Response{CourseType: ct})
			return
		}

		courseTypes, err := getter.ListCourseTypes(r.Context())
		if err != nil {
			log.Error("Failed to list course types", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list course types"))
			return
		}

		render.JSON(w, r, Response{CourseTypes: courseTypes})
	}
}
