package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := NewHealthHandler(map[string]Pinger{"database": pingFunc(func(context.Context) error { return nil })})
	down := NewHealthHandler(map[string]Pinger{"database": pingFunc(func(context.Context) error { return errors.New("down") })})

	for _, tc := range []struct {
		name   string
		h      *HealthHandler
		status int
		body   string
	}{
		{"healthy", ok, http.StatusOK, "ok"},
		{"no deps", NewHealthHandler(nil), http.StatusOK, "ok"},
		{"db down", down, http.StatusServiceUnavailable, "database unavailable"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthcheck", tc.h.HealthCheck)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
		})
	}
}
