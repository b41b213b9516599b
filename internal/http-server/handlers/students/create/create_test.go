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

type creatorFunc func(ctx context.Context, req *api.StudentRequest) (*api.StudentResponse, error)

func (f creatorFunc) CreateStudent(ctx context.Context, req *api.StudentRequest) (*api.StudentResponse, error) {
	return f(ctx, req)
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	creator := creatorFunc(func(ctx context.Context, req *api.StudentRequest) (*api.StudentResponse, error) {
		return &api.StudentResponse{ID: "s1", FullName: req.FullName, Email: req.Email}, nil
	})

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  response.ErrCode
	}{
		{name: "created", body: `{"full_name":"Ada Lovelace","email":"ada@lovelace.test"}`, wantCode: http.StatusCreated},
		{name: "bad email", body: `{"full_name":"Ada Lovelace","email":"ada"}`, wantCode: http.StatusBadRequest, wantErr: response.INVALID},
		{name: "missing name", body: `{"email":"ada@lovelace.test"}`, wantCode: http.StatusBadRequest, wantErr: response.INVALID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			New(log, creator).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(tt.body)))

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
			if tt.wantErr == "" && resp.Student.FullName != "Ada Lovelace" {
				t.Errorf("student = %+v", resp.Student)
			}
		})
	}
}
