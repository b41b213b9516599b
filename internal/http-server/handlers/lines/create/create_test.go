package create

import (
	"booking-calendar/api"
	"booking-calendar/pkg/response"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type creatorFunc func(ctx context.Context, req *api.LineRequest) (*api.LineResponse, error)

func (f creatorFunc) CreateLine(ctx context.Context, req *api.LineRequest) (*api.LineResponse, error) {
	return f(ctx, req)
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	creator := creatorFunc(func(ctx context.Context, req *api.LineRequest) (*api.LineResponse, error) {
		switch req.Name {
		case "Taken":
			return nil, response.ErrConflict
		case "Broken":
			return nil, errors.New("connection refused")
		}
		return &api.LineResponse{ID: "l1", Name: req.Name}, nil
	})

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  response.ErrCode
	}{
		{name: "created", body: `{"name":"Line A"}`, wantCode: http.StatusCreated},
		{name: "empty name", body: `{"name":""}`, wantCode: http.StatusBadRequest, wantErr: response.INVALID},
		{name: "bad json", body: `name=Line`, wantCode: http.StatusBadRequest, wantErr: response.BAD_REQUEST},
		{name: "duplicate", body: `{"name":"Taken"}`, wantCode: http.StatusConflict, wantErr: response.CONFLICT},
		{name: "storage down", body: `{"name":"Broken"}`, wantCode: http.StatusInternalServerError, wantErr: response.FAILED_REQUEST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			New(log, creator).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/lines", strings.NewReader(tt.body)))

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
			if tt.wantErr == "" && resp.Line.Name != "Line A" {
				t.Errorf("line = %+v", resp.Line)
			}
		})
	}
}
