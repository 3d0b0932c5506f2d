package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"raankai/backend/internal/money"
	"raankai/backend/internal/service"
)

// Scheduler runs the nightly operations digest.
type Scheduler struct {
	cron     *cron.Cron
	svc      *service.Service
	schedule string
	logger   *zap.Logger
}

func New(svc *service.Service, schedule string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = "0 20 * * *"
	}

	return &Scheduler{
		cron:     cron.New(),
		svc:      svc,
		schedule: schedule,
		logger:   logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runDigest); err != nil {
		s.logger.Error("failed to schedule operations digest", zap.Error(err))
		return
	}
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.svc.OperationsDigest(ctx)
	if err != nil {
		s.logger.Error("failed to build operations digest", zap.Error(err))
		return
	}

	s.logger.Info("operations digest",
		zap.String("today_revenue", money.FormatBaht(report.TodayRevenue)),
		zap.String("today_wages", money.FormatBaht(report.TodayWages)),
		zap.Int("low_stock_parts", len(report.LowStockParts)),
		zap.Int("inactive_customers", len(report.InactiveCustomers)))

	for _, part := range report.LowStockParts {
		s.logger.Warn("low stock",
			zap.String("part", part.Name),
			zap.Float64("stock_kg", part.StockKg))
	}
}
