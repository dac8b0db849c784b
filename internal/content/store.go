package content

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Store serves the current Site and swaps it atomically on reload.
type Store struct {
	path   string
	site   atomic.Pointer[Site]
	logger *zap.Logger
}

// NewStore loads path (or the embedded default when empty).
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	site, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, logger: logger}
	s.site.Store(site)
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Site() *Site { return s.site.Load() }

// Reload re-reads the content file. On failure the previous site stays live.
func (s *Store) Reload() error {
	site, err := Load(s.path)
	if err != nil {
		s.logger.Warn("content reload failed, keeping previous version", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.site.Store(site)
	s.logger.Info("content reloaded",
		zap.String("path", s.path),
		zap.Int("posts", len(site.Posts)),
		zap.Int("projects", len(site.Projects)),
	)
	return nil
}
