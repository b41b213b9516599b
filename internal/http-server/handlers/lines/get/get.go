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

type LineGetter interface {
	GetLine(ctx context.Context, id string) (*api.LineResponse, error)
	ListLines(ctx context.Context) ([]*api.LineResponse, error)
}

type Response struct {
	response.Response
	Lines []*api.LineResponse `json:"lines,omitempty"`
	Line  *api.LineResponse   `json:"line,omitempty"`
}

func New(log *slog.Logger, getter LineGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lines.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			line, err := getter.GetLine(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("line not found", slog.String("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "line not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get line", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get line"))
				return
			}

			render.JSON(w, r, Response{Line: line})
			return
		}

		lines, err := getter.ListLines(r.Context())
		if err != nil {
			log.Error("Failed to list lines", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list lines"))
			return
		}

		log.Info("Lines retrieved", slog.Int("count", len(lines)))
		render.JSON(w, r, Response{Lines: lines})
	}
}
