package http

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestServerWrapsEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(":0", gin.New())
	if srv.Addr() != ":0" {
		t.Errorf("addr = %q, want %q", srv.Addr(), ":0")
	}
	// Shutdown before serving is a no-op, not an error.
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
