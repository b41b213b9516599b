package create

import (
	"booking-calendar/api"
	"booking-calendar/pkg/response"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type creatorFunc func(ctx context.Context, req *api.BillingTagRequest) (*api.BillingTagResponse, error)

func (f creatorFunc) CreateBillingTag(ctx context.Context, req *api.BillingTagRequest) (*api.BillingTagResponse, error) {
	return f(ctx, req)
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	creator := creatorFunc(func(ctx context.Context, req *api.BillingTagRequest) (*api.BillingTagResponse, error) {
		if req.Name == "Invoice" {
			return nil, response.ErrConflict
		}
		return &api.BillingTagResponse{ID: "t1", Name: req.Name}, nil
	})

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  response.ErrCode
	}{
		{name: "created", body: `{"name":"Grant"}`, wantCode: http.StatusCreated},
		{name: "duplicate", body: `{"name":"Invoice"}`, wantCode: http.StatusConflict, wantErr: response.CONFLICT},
		{name: "missing name", body: `{"description":"x"}`, wantCode: http.StatusBadRequest, wantErr: response.INVALID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			New(log, creator).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing_tags", strings.NewReader(tt.body)))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}

			var resp Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Code != string(tt.wantErr) {
				t.Errorf("error code = %q, want %q", resp.Code, tt.wantErr)
			}
			if tt.wantErr == "" && resp.BillingTag.ID != "t1" {
				t.Errorf("billing tag = %+v", resp.BillingTag)
			}
		})
	}
}
