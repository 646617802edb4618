package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/logger"

	"go.uber.org/zap"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// writeTimeout covers a whole store operation, including the wait on the
// remote API when api.timeout is 0.
const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	defaultPort       = "8080"
)

// New builds a server for handler on port ("8080", ":8080" or "host:8080").
func New(port string, handler http.Handler, log *logger.Logger) *Server {
	s := &http.Server{
		Addr:              normalizeAddr(port),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	if log != nil {
		s.ErrorLog = zap.NewStdLog(log.Desugar())
	}
	return &Server{httpServer: s, log: log}
}

// Addr is the listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

func normalizeAddr(port string) string {
	if port == "" {
		port = defaultPort
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Run serves until Shutdown. A clean shutdown returns nil.
func (s *Server) Run() error {
	if s.log != nil {
		s.log.Infow("http_listen", "addr", s.httpServer.Addr)
	}
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
