package app

import (
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/config"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// stage binds one topic to one consumer group. Two stages on the same topic
// use different groups so each sees every message.
type stage struct {
	name   string
	topic  string
	handle consumer.Handler
}

func stages(m *modules) []stage {
	return []stage{
		{"attendance", events.PunchRecordedTopic, consumer.Typed(m.attendance.HandlePunch)},
		{"attendance-summary", events.AttendanceSavedTopic, consumer.Typed(m.summary.HandleAttendanceSaved)},
		{"attendance-summary-schedule", events.ScheduleChangedTopic, consumer.Typed(m.summary.HandleScheduleChanged)},
		{"schedule-calendar", events.CalendarChangedTopic, consumer.Typed(m.schedule.HandleCalendarChanged)},
		{"overtime", events.AttendanceSummarySavedTopic, consumer.Typed(m.overtime.HandleSummarySaved)},
		{"overtime-schedule", events.ScheduleChangedTopic, consumer.Typed(m.overtime.HandleScheduleChanged)},
		{"contribution", events.EarningsSavedTopic, consumer.Typed(m.contribution.HandleEarningsSaved)},
		{"payroll", events.SalaryCreatedTopic, consumer.Typed(m.payroll.HandleSalaryCreated)},
		{"payslip", events.PayrollComputedTopic, consumer.Typed(m.payslip.HandlePayrollComputed)},
	}
}

// RunConsumer runs every pipeline stage consumer until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

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

	ctx, cancel := bootstrap.SignalContext()
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, st := range stages(m) {
		st := st
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{cfg.KafkaBroker},
			Topic:          st.topic,
			GroupID:        "go-payroll-" + st.name,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
		g.Go(func() error {
			defer reader.Close()
			consumer.Run(gctx, st.name, reader, st.handle, logger)
			return nil
		})
	}

	<-ctx.Done()
	logger.Info("consumer shutting down")
	return g.Wait()
}
