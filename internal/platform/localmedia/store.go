// Package localmedia is a disk-backed object store for small generated
// assets (avatars). Keys are slash-separated relative paths under the
// configured root; public URLs are served from the media mount.
package localmedia

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soundfield/attune-backend/internal/platform/logger"
	"github.com/soundfield/attune-backend/internal/utils"
)

type Store interface {
	Save(ctx context.Context, key string, data []byte) (url string, err error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Root() string
	BaseURL() string
}

type store struct {
	log     *logger.Logger
	root    string
	baseURL string
}

// New reads MEDIA_ROOT (default ./media) and MEDIA_BASE_URL (default
// /media) and ensures the root directory exists.
func New(log *logger.Logger) (Store, error) {
	slog := log.With("service", "LocalMediaStore")

	root := utils.GetEnv("MEDIA_ROOT", "./media", log)
	baseURL := strings.TrimRight(utils.GetEnv("MEDIA_BASE_URL", "/media", log), "/")

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}

	return &store{log: slog, root: root, baseURL: baseURL}, nil
}

func (s *store) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *store) Save(_ context.Context, key string, data []byte) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("mkdir media dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write media object: %w", err)
	}
	s.log.Debug("Saved media object", "key", key, "bytes", len(data))
	return s.URL(key), nil
}

func (s *store) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media object: %w", err)
	}
	return nil
}

func (s *store) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}

func (s *store) Root() string { return s.root }

func (s *store) BaseURL() string { return s.baseURL }
