package commands

import (
	"context"
	"time"

	"github.com/ruminaider/presetctl/internal/cache"
	"github.com/ruminaider/presetctl/internal/config"
	"go.uber.org/zap"
)

// CacheMaxAge is how long cached detections are kept.
const CacheMaxAge = 30 * 24 * time.Hour

// OpenCache opens the detection cache at path and drops stale entries.
// It returns nil when caching is disabled in cfg.
func OpenCache(ctx context.Context, cfg config.Config, path string, logger *zap.Logger) (*cache.Store, error) {
	if !cfg.CacheEnabled() {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := cache.Open(path)
	if err != nil {
		return nil, err
	}
	n, err := store.Prune(ctx, CacheMaxAge)
	if err != nil {
		logger.Warn("pruning detection cache", zap.Error(err))
	} else if n > 0 {
		logger.Debug("pruned detection cache", zap.Int64("entries", n))
	}
	return store, nil
}
