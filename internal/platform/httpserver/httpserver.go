// Package httpserver builds and tears down the process HTTP server.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

// shutdownTimeout bounds graceful shutdown. In-flight analyses get this long
// to finish before the listener is torn down.
const shutdownTimeout = 10 * time.Second

// New builds the server. Only the header read is bounded here: an analysis
// request legitimately holds the connection for up to the analyzer timeout,
// so no overall read/write deadline is set.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Shutdown drains srv gracefully within the shutdown timeout.
func Shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
