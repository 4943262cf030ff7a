package app

import (
	"fmt"
	"os"
	"strings"

	redisclient "github.com/soundfield/attune-backend/internal/clients/redis"
	"github.com/soundfield/attune-backend/internal/platform/localmedia"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type Clients struct {
	History redisclient.HistoryStore
	Media   localmedia.Store
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis is optional; without it anonymous history lives in process
	// memory only.
	var history redisclient.HistoryStore
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		h, err := redisclient.NewHistoryStore(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis history store: %w", err)
		}
		history = h
	}

	media, err := localmedia.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init media store: %w", err)
	}

	return Clients{
		History: history,
		Media:   media,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.History != nil {
		_ = c.History.Close()
	}
}
