// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler for [chi.Mux.MethodNotAllowed] that
// answers 404 instead of 405 when the matched route does not serve the
// requested method, so unsupported methods look like unknown paths.
//
// Routes are looked up by exact pattern against the request path; mounted
// sub-routers expose only their "/prefix/*" pattern, so requests routed
// through them always fall through to 404.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !routeServes(router, r.URL.Path, r.Method) {
			http.NotFound(w, r)
			return
		}

		router.ServeHTTP(w, r)
	}
}

func routeServes(router chi.Routes, path, method string) bool {
	for _, route := range router.Routes() {
		if route.Pattern != path {
			continue
		}
		_, ok := route.Handlers[method]
		return ok
	}
	return false
}
