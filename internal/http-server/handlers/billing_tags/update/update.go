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

type BillingTagUpdater interface {
	UpdateBillingTag(ctx context.Context, id string, req *api.BillingTagRequest) (*api.BillingTagResponse, error)
}

type Request struct {
	api.BillingTagRequest
}

type Response struct {
	response.Response
	BillingTag api.BillingTagResponse `json:"billing_tag,omitzero"`
}

func New(log *slog.Logger, updater BillingTagUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing_tags.update.New"

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

		tag, err := updater.UpdateBillingTag(r.Context(), id, &req.BillingTagRequest)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("billing tag not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "billing tag not found"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("billing tag name taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "billing tag with this name already exists"))
			return
		}

		if err != nil {
			log.Error("Failed to update billing tag", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update billing tag"))
			return
		}

		log.Info("Billing tag updated", slog.Any("billing_tag", tag))
		render.JSON(w, r, Response{BillingTag: *tag})
	}
}
