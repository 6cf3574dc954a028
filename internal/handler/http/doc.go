// Package http implements the HTTP transport layer of the video fetcher.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API and the static front-end. Cross-cutting concerns such as request
// tracing, access logging, concurrency limiting, timeouts and response
// compression are handled in this package before requests are delegated to
// the service layer.
package http
