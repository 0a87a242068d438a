package db

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// StartValueLogGC reclaims space left by overwritten snapshots with interval.
// Every snapshot save rewrites a whole key, so the value log grows with each mutation.
func StartValueLogGC(
	ctx context.Context,
	bdb *badger.DB,
	interval time.Duration,
	discardRatio float64,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rewritten := 0
				var err error
				// RunValueLogGC rewrites at most one file per call.
				for err == nil {
					if err = bdb.RunValueLogGC(discardRatio); err == nil {
						rewritten++
					}
				}
				if !errors.Is(err, badger.ErrNoRewrite) {
					log.Error("failed to run value log GC", zap.Error(err))
					continue
				}
				if rewritten > 0 {
					log.Info("value log GC finished", zap.Int("rewritten", rewritten))
				}
			}
		}
	}()
}
