package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		ping       error
		wantStatus int
		wantBody   string
	}{
		{name: "storage up", wantStatus: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "storage down", ping: errors.New("conn refused"), wantStatus: http.StatusServiceUnavailable, wantBody: `{"status":"unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(sl.Discard(), pingerFunc(func(ctx context.Context) error {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				return tt.ping
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
