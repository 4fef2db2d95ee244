package app

import (
	"context"
	"time"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/config"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/datex"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 4 * time.Minute

type job struct {
	name string
	spec string
	run  func(ctx context.Context) error
}

func jobs(m *modules, cfg *config.Config) []job {
	return []job{
		{"salary_generation", cfg.Cron.SalaryGeneration, func(ctx context.Context) error {
			_, err := m.salary.Generate(ctx)
			return err
		}},
		{"total_payroll", cfg.Cron.TotalPayroll, func(ctx context.Context) error {
			_, err := m.payroll.RefreshTotals(ctx, datex.DateOf(time.Now(), cfg.Location))
			return err
		}},
		{"holiday_resync", cfg.Cron.HolidayResync, func(ctx context.Context) error {
			_, err := m.schedule.ResyncAll(ctx)
			return err
		}},
		{"schedule_creation", cfg.Cron.ScheduleCreation, func(ctx context.Context) error {
			_, err := m.schedule.EnsureSchedules(ctx)
			return err
		}},
	}
}

// newCron registers every job. A run that is still going when its next tick
// arrives causes that tick to be skipped.
func newCron(list []job, loc *time.Location, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	for _, j := range list {
		j := j
		log := logger.With(zap.String("job", j.name))
		if _, err := c.AddFunc(j.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			start := time.Now()
			if err := j.run(ctx); err != nil {
				log.Error("job failed", zap.Error(err), zap.Duration("took", time.Since(start)))
				return
			}
			log.Info("job finished", zap.Duration("took", time.Since(start)))
		}); err != nil {
			return nil, err
		}
		log.Info("job scheduled", zap.String("spec", j.spec))
	}
	return c, nil
}

// RunScheduler runs the periodic jobs until SIGINT or SIGTERM.
func RunScheduler(cfg *config.Config) error {
	logger := zap.L().Named("app.scheduler")

	db, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.MaxRetries)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	m, err := newModules(db, rdb, cfg)
	if err != nil {
		return err
	}

	c, err := newCron(jobs(m, cfg), cfg.Location, logger)
	if err != nil {
		return err
	}

	ctx, cancel := bootstrap.SignalContext()
	defer cancel()

	c.Start()
	<-ctx.Done()

	logger.Info("scheduler shutting down")
	<-c.Stop().Done()
	return nil
}
