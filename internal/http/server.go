package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps the engine in an http.Server so the process can drain
// in-flight requests on shutdown instead of using gin's bare Run.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, engine *gin.Engine) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

// ListenAndServe blocks until the listener fails or Shutdown runs. A
// shutdown-initiated close is not an error.
func (s *Server) ListenAndServe() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
