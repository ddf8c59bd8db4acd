// Package httpserver builds the process HTTP server.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with conservative read timeouts. Individual
// request deadlines are enforced by the timeout middleware.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
