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

type BillingTagGetter interface {
	GetBillingTag(ctx context.Context, id string) (*api.BillingTagResponse, error)
	ListBillingTags(ctx context.Context) ([]*api.BillingTagResponse, error)
}

type Response struct {
	response.Response
	BillingTags []*api.BillingTagResponse `json:"billing_tags,omitempty"`
	BillingTag  *api.BillingTagResponse   `json:"billing_tag,omitempty"`
}

func New(log *slog.Logger, getter BillingTagGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing_tags.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			tag, err := getter.GetBillingTag(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("billing tag not found", slog.String("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "billing tag not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get billing tag", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get billing tag"))
				return
			}

			render.JSON(w, r, Response{BillingTag: tag})
			return
		}

		tags, err := getter.ListBillingTags(r.Context())
		if err != nil {
			log.Error("Failed to list billing tags", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list billing tags"))
			return
		}

		render.JSON(w, r, Response{BillingTags: tags})
	}
}
