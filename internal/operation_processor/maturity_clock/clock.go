package maturity_clock

import (
	"context"
	"log/slog"
	"time"

	"github.com/account-ledger/internal/config"
	banking "github.com/account-ledger/internal/service"
)

// MaturityAdvancer is the part of the banking service the clock drives
type MaturityAdvancer interface {
	AdvanceMaturity(ctx context.Context, months int) (*banking.MaturityReport, error)
}

// Clock advances fixed deposit lock-ins by MonthsPerTick on every tick, so a
// running service lets deposits mature without an operator calling the
// advance endpoint
type Clock struct {
	advancer      MaturityAdvancer
	logger        *slog.Logger
	tickInterval  time.Duration
	monthsPerTick int
}

func NewClock(cfg *config.MaturityConfig, advancer MaturityAdvancer, logger *slog.Logger) *Clock {
	return &Clock{
		advancer:      advancer,
		logger:        logger,
		tickInterval:  cfg.TickInterval,
		monthsPerTick: cfg.MonthsPerTick,
	}
}

// Start ticks until ctx is cancelled
func (c *Clock) Start(ctx context.Context) {
	c.logger.Info("Starting maturity clock",
		"tick_interval", c.tickInterval.String(),
		"months_per_tick", c.monthsPerTick,
	)
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Maturity clock stopping due to context cancellation")
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

func (c *Clock) tick(ctx context.Context) {
	report, err := c.advancer.AdvanceMaturity(ctx, c.monthsPerTick)
	if err != nil {
		c.logger.Error("Failed to advance fixed deposit lock-ins", "error", err)
		return
	}
	if len(report.Matured) > 0 {
		c.logger.Info("Fixed deposits matured", "customer_ids", report.Matured)
	}
	c.logger.Debug("Maturity clock tick", "advanced", report.Advanced)
}
