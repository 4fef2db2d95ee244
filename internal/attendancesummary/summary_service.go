package attendancesummary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/attendance"
	summaryerrors "go-payroll/internal/attendancesummary/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	summarySavedEventType = "attendance_summary.saved"
	aggregateSummary      = "attendance_summary"
)

// AttendanceReader is the attendance data the aggregator folds.
type AttendanceReader interface {
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*attendance.Attendance, error)
	FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]attendance.Attendance, error)
}

type Service interface {
	HandleAttendanceSaved(ctx context.Context, event events.AttendanceSavedEvent) error
	HandleScheduleChanged(ctx context.Context, event events.ScheduleChangedEvent) error
	// RecomputeWindow rebuilds the summary of sch from every attendance row
	// in its window. It returns nil when the window has nothing to count.
	RecomputeWindow(ctx context.Context, sch schedule.Schedule, trigger *uuid.UUID) (*AttendanceSummary, error)
	List(ctx context.Context, userID string) ([]SummaryResponse, error)
	GetByID(ctx context.Context, id string) (SummaryResponse, error)
}

type service struct {
	db          *gorm.DB
	repo        Repository
	attendances AttendanceReader
	resolver    schedule.Resolver
	outbox      kafka.OutboxRepository
	loc         *time.Location
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	attendances AttendanceReader,
	resolver schedule.Resolver,
	outbox kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendancesummary.aggregator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendancesummary.aggregator")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:          db,
		repo:        repo,
		attendances: attendances,
		resolver:    resolver,
		outbox:      outbox,
		loc:         loc,
		logger:      l,
	}
}

func (s *service) HandleAttendanceSaved(ctx context.Context, event events.AttendanceSavedEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return pipeline.Permanent(fmt.Errorf("attendance event user id: %w", err))
	}
	date, err := datex.Parse(event.AttendanceDate)
	if err != nil {
		return pipeline.Permanent(err)
	}

	row, err := s.attendances.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pipeline.Skip("attendance %s on %s not found", event.UserID, event.AttendanceDate)
		}
		return err
	}

	if _, ok := WorkedMinutes(row.CheckIn, row.CheckOut, s.loc); !ok {
		return pipeline.Skip("attendance %s on %s has no completed day yet", event.UserID, event.AttendanceDate)
	}

	sch, ok, err := s.resolver.ResolveSchedule(ctx, userID, date)
	if err != nil {
		return err
	}
	if !ok {
		return pipeline.Skip("no schedule covers %s for user %s", event.AttendanceDate, event.UserID)
	}
	if _, ok := sch.ShiftOn(date); !ok {
		return pipeline.Skip("schedule %s has no shift on %s", sch.ID, event.AttendanceDate)
	}

	_, err = s.RecomputeWindow(ctx, *sch, &row.ID)
	return err
}

func (s *service) HandleScheduleChanged(ctx context.Context, event events.ScheduleChangedEvent) error {
	scheduleID, err := uuid.Parse(event.ScheduleID)
	if err != nil {
		return pipeline.Permanent(fmt.Errorf("schedule event id: %w", err))
	}

	sch, ok, err := s.resolver.ScheduleByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !ok {
		return pipeline.Skip("schedule %s no longer exists", event.ScheduleID)
	}

	_, err = s.RecomputeWindow(ctx, *sch, nil)
	return err
}

func (s *service) RecomputeWindow(ctx context.Context, sch schedule.Schedule, trigger *uuid.UUID) (*AttendanceSummary, error) {
	start, end := Window(sch)
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("user_id", sch.UserID.String()),
		zap.String("biweek_start", datex.Format(start)),
	)

	rows, err := s.attendances.FindInRange(ctx, sch.UserID, start, end)
	if err != nil {
		return nil, err
	}

	var totals Totals
	for _, row := range rows {
		owner, ok, err := s.resolver.ResolveSchedule(ctx, sch.UserID, row.AttendanceDate)
		if err != nil {
			return nil, err
		}
		if !ok || owner.ID != sch.ID {
			log.Debug("attendance owned by another schedule, not counted", zap.String("date", datex.Format(row.AttendanceDate)))
			continue
		}

		shift, ok := owner.ShiftOn(row.AttendanceDate)
		if !ok {
			log.Warn("attendance without shift, not counted", zap.String("date", datex.Format(row.AttendanceDate)))
			continue
		}

		day, ok := ClassifyDay(row.AttendanceDate, row.CheckIn, row.CheckOut, *shift, *owner, s.loc)
		if !ok {
			continue
		}
		totals.Add(day)
	}

	existing, err := s.repo.FindByUserAndStart(ctx, sch.UserID, start)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if totals.Days == 0 && existing == nil {
		log.Debug("no countable attendance in window, summary not created")
		return nil, nil
	}

	summary := &AttendanceSummary{ID: uuid.New(), UserID: sch.UserID, BiweekStart: start, AttendanceID: trigger}
	if trigger == nil && existing != nil {
		summary.AttendanceID = existing.AttendanceID
	}
	totals.Apply(summary)

	var saved *AttendanceSummary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.Upsert(ctx, summary); err != nil {
			return err
		}
		var err error
		saved, err = qtx.FindByUserAndStart(ctx, sch.UserID, start)
		if err != nil {
			return err
		}
		return s.publishSaved(ctx, tx, saved)
	})
	if err != nil {
		return nil, err
	}

	log.Info("attendance summary saved",
		zap.Int("days", totals.Days),
		zap.Int("actual_hours", saved.ActualHours),
		zap.Int("overtime_hours", saved.OvertimeHours),
		zap.Int("late_minutes", saved.LateMinutes),
		zap.Int("undertime_hours", saved.UndertimeHours),
	)
	return saved, nil
}

func (s *service) List(ctx context.Context, userID string) ([]SummaryResponse, error) {
	var uid *uuid.UUID
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return []SummaryResponse{}, nil
		}
		uid = &id
	}

	rows, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := make([]SummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SummaryResponse, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return SummaryResponse{}, summaryerrors.ErrSummaryNotFound
	}
	row, err := s.repo.FindByID(ctx, sid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, summaryerrors.ErrSummaryNotFound
		}
		return SummaryResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) publishSaved(ctx context.Context, tx *gorm.DB, sum *AttendanceSummary) error {
	userID := sum.UserID.String()
	return kafka.Enqueue(ctx, s.outbox, tx,
		events.AttendanceSummarySavedTopic, summarySavedEventType, aggregateSummary, sum.ID.String(), userID,
		events.AttendanceSummarySavedEvent{
			EventType:   summarySavedEventType,
			SummaryID:   sum.ID.String(),
			UserID:      userID,
			BiweekStart: datex.Format(sum.BiweekStart),
			OccurredAt:  time.Now().UTC(),
		},
	)
}

func mapToResponse(s AttendanceSummary) SummaryResponse {
	return SummaryResponse{
		ID:                  s.ID.String(),
		UserID:              s.UserID.String(),
		BiweekStart:         datex.Format(s.BiweekStart),
		ActualHours:         s.ActualHours,
		OvertimeHours:       s.OvertimeHours,
		LateMinutes:         s.LateMinutes,
		UndertimeHours:      s.UndertimeHours,
		SpecialHolidayHours: s.SpecialHolidayHours,
		RegularHolidayHours: s.RegularHolidayHours,
	}
}
