package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hero4job/cv-engine/internal/drafts"
)

// Cleaner handles periodic removal of expired drafts
type Cleaner struct {
	manager  *drafts.Manager
	interval time.Duration
	logger   *zap.Logger
}

// NewCleaner creates a new cleanup worker
func NewCleaner(manager *drafts.Manager, interval time.Duration, logger *zap.Logger) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cleaner{
		manager:  manager,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	c.logger.Info("cleanup worker started", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup finds and removes expired drafts
func (c *Cleaner) cleanup() {
	now := time.Now()

	expired := c.manager.Expired(now)
	if len(expired) == 0 {
		c.logger.Debug("no expired drafts found")
		return
	}

	for _, d := range expired {
		c.logger.Info("discarding expired draft",
			zap.String("id", d.ID),
			zap.String("section", string(d.Section)),
			zap.Time("expired_at", d.ExpiresAt),
		)
	}

	removed := c.manager.DeleteExpired(now)
	c.logger.Info("expired drafts removed", zap.Int("count", removed))
}
