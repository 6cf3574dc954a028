// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a chi.Mux without Handler.Init so no services are needed.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("queued"))
	})
	router.Post("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.Post("/download", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"GET /status registered", http.MethodGet, "/status", http.StatusOK},
		{"POST /status registered", http.MethodPost, "/status", http.StatusAccepted},
		{"POST /download registered", http.MethodPost, "/download", http.StatusOK},
		{"GET /api/health in sub-router", http.MethodGet, "/api/health", http.StatusOK},
		{"DELETE /status not registered", http.MethodDelete, "/status", http.StatusNotFound},
		{"GET /download not registered", http.MethodGet, "/download", http.StatusNotFound},
		{"HEAD /download not registered", http.MethodHead, "/download", http.StatusNotFound},
		{"POST /api/health in sub-router", http.MethodPost, "/api/health", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "queued", rr.Body.String())
}

func TestRouteServes(t *testing.T) {
	router := buildRouter()

	assert.True(t, routeServes(router, "/status", http.MethodPost))
	assert.False(t, routeServes(router, "/status", http.MethodPut))
	assert.False(t, routeServes(router, "/api/health", http.MethodGet), "sub-router routes are not expanded")
	assert.False(t, routeServes(router, "/nope", http.MethodGet))
}
