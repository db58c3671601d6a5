package main

import (
	"context"

	"go.uber.org/zap"
)

// Monitor runs a periodic background check until its context is done.
type Monitor interface {
	Watch(ctx context.Context) error
}

// overdueMonitor periodically sweeps the open loans and emits one
// notification per overdue loan. It is the process-level counterpart of the
// late-return notification raised at return time.
type overdueMonitor struct {
	logger  *zap.Logger
	config  *Config
	clock   TickerClocker
	library LendingServiceProvider
}

func NewOverdueMonitor(logger *zap.Logger, config *Config, clock TickerClocker, library LendingServiceProvider) Monitor {
	return &overdueMonitor{
		logger:  logger,
		config:  config,
		clock:   clock,
		library: library,
	}
}

// Watch performs one overdue sweep per configured interval. A sweep failure
// is logged and the next tick retries, only context cancellation stops it.
func (om *overdueMonitor) Watch(ctx context.Context) error {
	ticker := om.clock.NewTicker(om.config.Lending.OverdueScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			om.logger.Info("monitor: overdue sweep stopping", zap.String("reason", ctx.Err().Error()))
			return nil
		case <-ticker.C:
			overdue, err := om.library.GetAllOverdueBooks(ctx)
			if err != nil {
				om.logger.Error("monitor: overdue sweep failed", zap.Error(err))
				continue
			}
			om.logger.Info("monitor: overdue sweep completed", zap.Int("loans.overdue", len(overdue)))
			for _, loan := range overdue {
				om.logger.Warn("monitor: loan is overdue",
					zap.String("loan.id", loan.ID),
					zap.String("member.id", loan.MemberID),
					zap.String("book.isbn", loan.BookISBN),
					zap.Time("loan.due", loan.DueDate),
				)
			}
		}
	}
}
