package toggle

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

	"github.com/go-chi/chi/v5"
)

type completerFunc func(ctx context.Context, id string, completed bool) (*api.ActionResponse, error)

func (f completerFunc) SetActionCompleted(ctx context.Context, id string, completed bool) (*api.ActionResponse, error) {
	return f(ctx, id, completed)
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	completer := completerFunc(func(ctx context.Context, id string, completed bool) (*api.ActionResponse, error) {
		if id == "gone" {
			return nil, response.ErrNotFound
		}
		return &api.ActionResponse{ID: id, Completed: completed}, nil
	})

	router := chi.NewRouter()
	router.Put("/actions/{id}/completed", New(log, completer))

	tests := []struct {
		name          string
		id            string
		body          string
		wantCode      int
		wantCompleted bool
	}{
		{name: "complete", id: "a1", body: `{"completed":true}`, wantCode: http.StatusOK, wantCompleted: true},
		{name: "reopen", id: "a1", body: `{"completed":false}`, wantCode: http.StatusOK},
		{name: "missing flag", id: "a1", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "unknown action", id: "gone", body: `{"completed":true}`, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/actions/"+tt.id+"/completed", strings.NewReader(tt.body)))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Action.Completed != tt.wantCompleted {
				t.Errorf("completed = %v, want %v", resp.Action.Completed, tt.wantCompleted)
			}
		})
	}
}
