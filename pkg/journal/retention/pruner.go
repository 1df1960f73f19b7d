package retention

import (
	"context"
	"log/slog"
	"time"

	"turtlescript/console/pkg/journal"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to keep entries.
	// 0 keeps entries forever.
	RetentionDays int

	// Schedule is a cron expression for background pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	Schedule string
}

// Pruner deletes journal entries older than the retention period.
type Pruner struct {
	storage   journal.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time
}

// NewPruner creates a new retention pruner.
func NewPruner(storage journal.Storage, config *Config, logger *slog.Logger) *Pruner {
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pruner{
		storage: storage,
		config:  config,
		logger:  logger.With("component", "journal.retention"),
		now:     time.Now,
	}
	p.scheduler = NewScheduler(p)
	return p
}

// Prune deletes entries that started before now minus RetentionDays and
// returns how many were removed.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.RetentionDays <= 0 {
		return 0, nil
	}

	// Entries exactly at the cutoff are still within the period.
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays).Add(-time.Nanosecond)

	deleted, err := p.storage.Delete(ctx, &journal.Query{EndTime: &cutoff})
	if err != nil {
		return 0, &journal.RetentionError{RetentionDays: p.config.RetentionDays, Cause: err}
	}

	if deleted > 0 {
		p.logger.Info("pruned journal entries",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	} else {
		p.logger.Debug("no journal entries pruned",
			"retention_days", p.config.RetentionDays,
		)
	}

	return deleted, nil
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning, or nil when
// the scheduler is not running.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
