package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	attendanceSavedEventType = "attendance.saved"
	aggregateAttendance      = "attendance"
)

type Service interface {
	// HandlePunch folds one punch into the day's attendance row.
	HandlePunch(ctx context.Context, event events.PunchRecordedEvent) error
	List(ctx context.Context, userID string, filter ListAttendanceFilter) ([]AttendanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	directory employee.Directory
	outbox    kafka.OutboxRepository
	loc       *time.Location
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	directory employee.Directory,
	outbox kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.normalizer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.normalizer")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{db: db, repo: repo, directory: directory, outbox: outbox, loc: loc, logger: l}
}

func (s *service) HandlePunch(ctx context.Context, event events.PunchRecordedEvent) error {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.Int("emp_id", event.EmpID))

	if event.PunchedAt.IsZero() {
		return pipeline.Permanent(fmt.Errorf("punch %s has no time", event.PunchID))
	}

	userID, err := s.directory.ResolveUser(ctx, event.EmpID)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrUserNotMapped) {
			log.Warn("punch dropped, employee number maps to no user", zap.String("punch_id", event.PunchID))
			return pipeline.Permanent(err)
		}
		return err
	}

	punchedAt := event.PunchedAt.UTC()
	date := datex.DateOf(punchedAt, s.loc)
	log = log.With(zap.String("user_id", userID.String()), zap.String("attendance_date", datex.Format(date)))

	var saved *Attendance
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		written, err := qtx.Upsert(ctx, &Attendance{
			ID:             uuid.New(),
			UserID:         userID,
			AttendanceDate: date,
			CheckIn:        punchedAt,
			CheckOut:       punchedAt,
			Status:         StatusPresent,
		})
		if err != nil || !written {
			return err
		}

		saved, err = qtx.FindByUserAndDate(ctx, userID, date)
		if err != nil {
			return err
		}
		return s.publishSaved(ctx, tx, saved)
	})
	if err != nil {
		return err
	}

	if saved == nil {
		log.Debug("punch not later than check-out, attendance unchanged")
		return nil
	}

	log.Info("attendance saved",
		zap.Time("check_in", saved.CheckIn),
		zap.Time("check_out", saved.CheckOut),
	)
	return nil
}

func (s *service) List(ctx context.Context, userID string, filter ListAttendanceFilter) ([]AttendanceResponse, error) {
	var uid *uuid.UUID
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return []AttendanceResponse{}, nil
		}
		uid = &id
	}

	from, to, err := parseRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, uid, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.mapToResponse(r))
	}
	return out, nil
}

func parseRange(fromRaw, toRaw string) (from, to *time.Time, err error) {
	if fromRaw != "" {
		d, err := datex.Parse(fromRaw)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFilter
		}
		from = &d
	}
	if toRaw != "" {
		d, err := datex.Parse(toRaw)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFilter
		}
		to = &d
	}
	return from, to, nil
}

func (s *service) publishSaved(ctx context.Context, tx *gorm.DB, a *Attendance) error {
	userID := a.UserID.String()
	return kafka.Enqueue(ctx, s.outbox, tx,
		events.AttendanceSavedTopic, attendanceSavedEventType, aggregateAttendance, a.ID.String(), userID,
		events.AttendanceSavedEvent{
			EventType:      attendanceSavedEventType,
			AttendanceID:   a.ID.String(),
			UserID:         userID,
			AttendanceDate: datex.Format(a.AttendanceDate),
			OccurredAt:     time.Now().UTC(),
		},
	)
}

func (s *service) mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID.String(),
		UserID:         a.UserID.String(),
		AttendanceDate: datex.Format(a.AttendanceDate),
		CheckIn:        a.CheckIn.In(s.loc).Format(time.RFC3339),
		CheckOut:       a.CheckOut.In(s.loc).Format(time.RFC3339),
		Status:         a.Status,
	}
}
