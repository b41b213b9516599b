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

type BillingTagCreator interface {
	CreateBillingTag(ctx context.Context, req *api.BillingTagRequest) (*api.BillingTagResponse, error)
}

type Request struct {
	api.BillingTagRequest
}

type Response struct {
	response.Response
	BillingTag api.BillingTagResponse `json:"billing_tag,omitzero"`
}

func New(log *slog.Logger, creator BillingTagCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing_tags.create.New"

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

		tag, err := creator.CreateBillingTag(r.Context(), &req.BillingTagRequest)

		if errors.Is(err, response.ErrConflict) {
			log.Error("billing tag already exists")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "billing tag with this name already exists"))
			return
		}

		if err != nil {
			log.Error("Failed to create billing tag", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create billing tag"))
			return
		}

		log.Info("Billing tag created", slog.Any("billing_tag", tag))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{BillingTag: *tag})
	}
}
