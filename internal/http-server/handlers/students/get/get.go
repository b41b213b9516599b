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

type StudentGetter interface {
	GetStudent(ctx context.Context, id string) (*api.StudentResponse, error)
	ListStudents(ctx context.Context) ([]*api.StudentResponse, error)
}

type Response struct {
	response.Response
	Students []*api.StudentResponse `json:"students,omitempty"`
	Student  *api.StudentResponse   `json:"student,omitempty"`
}

func New(log *slog.Logger, getter StudentGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.students.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			st, err := getter.GetStudent(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("student not found", slog.String("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "student not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get student", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get student"))
				return
			}

			render.JSON(w, r, Response{Student: st})
			return
		}

		students, err := getter.ListStudents(r.Context())
		if err != nil {
			log.Error("Failed to list students", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list students"))
			return
		}

		render.JSON(w, r, Response{Students: students})
	}
}
