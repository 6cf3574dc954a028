package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// throttleBacklogFactor sets how many requests per concurrency slot may wait
// for a slot before the server answers 429.
const throttleBacklogFactor = 4

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.maxConcurrent > 0 {
		router.Use(middleware.ThrottleBacklog(h.maxConcurrent, h.maxConcurrent*throttleBacklogFactor, h.requestTimeout))
	}

	router.Get("/", h.index)

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.requestTimeout > 0 {
				r.Use(middleware.Timeout(h.requestTimeout))
			}

			// JSON endpoints
			r.Group(func(r chi.Router) {
				r.Use(withGZip)
				r.Post("/download", h.startDownload)
				r.Get("/status/{taskID}", h.getStatus)
				r.Get("/health", h.getHealth)
			})

			r.Get("/version/", h.getServerVersion)
		})

		// Streams may outlive the request timeout; http.Server.WriteTimeout
		// bounds them instead.
		r.Get("/file/{taskID}", h.getFile)
	})

	router.Get("/*", h.static)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
