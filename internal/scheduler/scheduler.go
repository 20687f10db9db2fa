package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/notifier"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/screener"
)

// Scheduler runs the screener on a cron schedule and pushes the ranked
// report to Telegram.
type Scheduler struct {
	Cron     *cron.Cron
	Screener *screener.Screener
	Notifier *notifier.TelegramNotifier
	Tickers  []string
	Days     int
	Limit    int
	Logger   *zap.Logger
	Ctx      context.Context
}

// New creates a Scheduler over the given ticker universe.
func New(ctx context.Context, scr *screener.Screener, tn *notifier.TelegramNotifier, tickers []string, days, limit int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Screener: scr,
		Notifier: tn,
		Tickers:  tickers,
		Days:     days,
		Limit:    limit,
		Logger:   logger,
		Ctx:      ctx,
	}
}

// Register adds the daily scan task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.runScan); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() { s.runScan() }

func (s *Scheduler) runScan() {
	s.Logger.Info("running scheduled scan")
	report, err := s.Screener.Run(s.Ctx, s.Tickers, s.Days, s.Limit)
	if err != nil {
		s.Logger.Error("scheduled scan failed", zap.Error(err))
		return
	}
	msg := notifier.FormatScanReport(report.Results)
	if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
		s.Logger.Error("deliver scan report", zap.Error(err))
	}
}
