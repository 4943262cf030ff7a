// Package redis holds thin clients over go-redis used by the services
// layer.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

// HistoryCap bounds how many completed sessions are remembered per client
// key. Pushes beyond the cap evict the oldest entries.
const HistoryCap = 50

// HistoryStore keeps a per-client list of completed sessions, newest
// first. It backs the anonymous-client history that has no user row to
// hang sessions on.
type HistoryStore interface {
	Push(ctx context.Context, clientKey string, s *types.TuningSession) error
	List(ctx context.Context, clientKey string) ([]*types.TuningSession, error)
	Clear(ctx context.Context, clientKey string) error
	Close() error
}

type historyStore struct {
	log       *logger.Logger
	rdb       *goredis.Client
	keyPrefix string
}

// NewHistoryStore connects to REDIS_ADDR. REDIS_HISTORY_PREFIX overrides
// the default key prefix.
func NewHistoryStore(log *logger.Logger) (HistoryStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_HISTORY_PREFIX"))
	if prefix == "" {
		prefix = "attune:history"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &historyStore{
		log:       log.With("service", "RedisHistoryStore"),
		rdb:       rdb,
		keyPrefix: prefix,
	}, nil
}

func (h *historyStore) key(clientKey string) string {
	return h.keyPrefix + ":" + clientKey
}

func (h *historyStore) Push(ctx context.Context, clientKey string, s *types.TuningSession) error {
	if h == nil || h.rdb == nil {
		return fmt.Errorf("history store not initialized")
	}
	if clientKey == "" {
		return fmt.Errorf("client key required")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	key := h.key(clientKey)
	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, HistoryCap-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (h *historyStore) List(ctx context.Context, clientKey string) ([]*types.TuningSession, error) {
	if h == nil || h.rdb == nil {
		return nil, fmt.Errorf("history store not initialized")
	}
	if clientKey == "" {
		return nil, fmt.Errorf("client key required")
	}

	raws, err := h.rdb.LRange(ctx, h.key(clientKey), 0, HistoryCap-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*types.TuningSession, 0, len(raws))
	for _, raw := range raws {
		var s types.TuningSession
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			h.log.Warn("bad history payload, skipping", "error", err)
			continue
		}
		out = append(out, &s)
	}
	return out, nil
}

func (h *historyStore) Clear(ctx context.Context, clientKey string) error {
	if h == nil || h.rdb == nil {
		return fmt.Errorf("history store not initialized")
	}
	if clientKey == "" {
		return fmt.Errorf("client key required")
	}
	return h.rdb.Del(ctx, h.key(clientKey)).Err()
}

func (h *historyStore) Close() error {
	if h == nil || h.rdb == nil {
		return nil
	}
	return h.rdb.Close()
}
