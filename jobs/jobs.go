package jobs

import (
	"ClinicHub/models"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = time.Minute

type OverdueLister interface {
	ListOverdue(ctx context.Context) ([]models.Invoice, error)
}

// StartOverdueSweep schedules the overdue invoice sweep and starts the
// scheduler. The caller stops it on shutdown.
func StartOverdueSweep(spec string, invoices OverdueLister, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		RunOverdueSweep(ctx, invoices, logger)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("overdue sweep scheduled", zap.String("schedule", spec))
	return c, nil
}

// RunOverdueSweep logs every invoice that is pending past its due date and
// returns how many there were.
func RunOverdueSweep(ctx context.Context, invoices OverdueLister, logger *zap.Logger) int {
	logger.Info("running overdue invoice sweep")
	overdue, err := invoices.ListOverdue(ctx)
	if err != nil {
		logger.Error("overdue sweep failed", zap.Error(err))
		return 0
	}
	ids := make([]string, 0, len(overdue))
	for _, inv := range overdue {
		ids = append(ids, inv.ID.Hex())
	}
	logger.Info("overdue invoices", zap.Int("count", len(overdue)), zap.Strings("invoice_ids", ids))
	return len(overdue)
}
