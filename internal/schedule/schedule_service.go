package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-payroll/internal/calendar"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/pipeline"
	scheduleerrors "go-payroll/internal/schedule/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	scheduleChangedEventType = "schedule.changed"
	aggregateSchedule        = "schedule"

	ReasonCreated      = "created"
	ReasonHolidaySync  = "holiday_sync"
	ReasonShiftAdded   = "shift_added"
	ReasonFlagsUpdated = "flags_updated"
)

// CalendarReader is the calendar data holiday sync reads.
type CalendarReader interface {
	FindHolidaysBetween(ctx context.Context, from, to time.Time) ([]calendar.Holiday, error)
	FindPeriodByID(ctx context.Context, id string) (*calendar.PayrollPeriod, error)
	FindAllPeriods(ctx context.Context) ([]calendar.PayrollPeriod, error)
}

type Service interface {
	HandleCalendarChanged(ctx context.Context, event events.CalendarChangedEvent) error
	SyncHolidays(ctx context.Context, scheduleID uuid.UUID) (bool, error)
	EnsureSchedules(ctx context.Context) (int, error)
	ResyncAll(ctx context.Context) (int, error)
	AddShift(ctx context.Context, scheduleID string, req AddShiftRequest) (ScheduleResponse, error)
	UpdateFlags(ctx context.Context, scheduleID string, req UpdateFlagsRequest) (ScheduleResponse, error)
	List(ctx context.Context, userID string) ([]ScheduleResponse, error)
	GetByID(ctx context.Context, scheduleID string) (ScheduleResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	calendar  CalendarReader
	directory employee.Directory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	cal CalendarReader,
	directory employee.Directory,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, calendar: cal, directory: directory, outbox: outbox, logger: l}
}

// HandleCalendarChanged re-materializes the schedules touched by a calendar
// write. A new payroll period first gets one schedule per active user.
func (s *service) HandleCalendarChanged(ctx context.Context, event events.CalendarChangedEvent) error {
	log := contextutil.GetLogger(ctx, s.logger)

	from, err := datex.Parse(event.From)
	if err != nil {
		return pipeline.Permanent(err)
	}
	to, err := datex.Parse(event.To)
	if err != nil {
		return pipeline.Permanent(err)
	}

	if event.Kind == events.CalendarKindPayrollPeriod && event.PayrollPeriodID != "" {
		period, err := s.calendar.FindPeriodByID(ctx, event.PayrollPeriodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pipeline.Skip("payroll period %s no longer exists", event.PayrollPeriodID)
			}
			return err
		}
		created, err := s.ensureForPeriod(ctx, *period)
		if err != nil {
			return err
		}
		log.Info("schedules ensured for payroll period",
			zap.String("payroll_period_id", event.PayrollPeriodID),
			zap.Int("created", created),
		)
	}

	schedules, err := s.repo.FindIntersecting(ctx, from, to)
	if err != nil {
		return err
	}

	changed := 0
	for i := range schedules {
		ok, err := s.sync(ctx, &schedules[i], false)
		if err != nil {
			return err
		}
		if ok {
			changed++
		}
	}

	log.Info("holiday sync finished",
		zap.String("kind", event.Kind),
		zap.String("from", event.From),
		zap.String("to", event.To),
		zap.Int("schedules", len(schedules)),
		zap.Int("changed", changed),
	)
	return nil
}

func (s *service) SyncHolidays(ctx context.Context, scheduleID uuid.UUID) (bool, error) {
	sch, err := s.repo.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, scheduleerrors.ErrScheduleNotFound
		}
		return false, err
	}
	return s.sync(ctx, sch, false)
}

// EnsureSchedules creates the missing schedule of every active user for
// every payroll period.
func (s *service) EnsureSchedules(ctx context.Context) (int, error) {
	periods, err := s.calendar.FindAllPeriods(ctx)
	if err != nil {
		return 0, err
	}
	if len(periods) == 0 {
		s.logger.Warn("no payroll periods found, no schedules created")
		return 0, nil
	}

	total := 0
	for _, p := range periods {
		created, err := s.ensureForPeriod(ctx, p)
		if err != nil {
			return total, err
		}
		total += created
	}
	return total, nil
}

// ResyncAll recomputes the holiday arrays of every schedule.
func (s *service) ResyncAll(ctx context.Context) (int, error) {
	schedules, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range schedules {
		ok, err := s.sync(ctx, &schedules[i], false)
		if err != nil {
			return changed, err
		}
		if ok {
			changed++
		}
	}

	s.logger.Info("holiday resync finished", zap.Int("schedules", len(schedules)), zap.Int("changed", changed))
	return changed, nil
}

func (s *service) ensureForPeriod(ctx context.Context, period calendar.PayrollPeriod) (int, error) {
	userIDs, err := s.directory.ListActiveUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, userID := range userIDs {
		sch := &Schedule{
			ID:                 uuid.New(),
			UserID:             userID,
			PayrollPeriodStart: datex.Normalize(period.PeriodStart),
			PayrollPeriodEnd:   datex.Normalize(period.PeriodEnd),
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			inserted, err := s.repo.WithTx(tx).CreateIfAbsent(ctx, sch)
			if err != nil || !inserted {
				return err
			}
			created++
			_, err = s.syncTx(ctx, tx, sch, true)
			return err
		})
		if err != nil {
			return created, fmt.Errorf("ensure schedule for user %s: %w", userID, err)
		}
	}
	return created, nil
}

// sync recomputes the holiday arrays of sch from the calendar in full and
// writes them when they differ. force publishes schedule.changed even when
// nothing moved, as for a freshly created schedule.
func (s *service) sync(ctx context.Context, sch *Schedule, force bool) (bool, error) {
	var changed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		changed, err = s.syncTx(ctx, tx, sch, force)
		return err
	})
	return changed, err
}

func (s *service) syncTx(ctx context.Context, tx *gorm.DB, sch *Schedule, force bool) (bool, error) {
	holidays, err := s.calendar.FindHolidaysBetween(ctx, sch.PayrollPeriodStart, sch.PayrollPeriodEnd)
	if err != nil {
		return false, err
	}

	regular, special := HolidayArrays(holidays)
	changed := !sameDates(sch.RegularHolidays, regular) || !sameDates(sch.SpecialHolidays, special)

	if changed {
		if err := s.repo.WithTx(tx).UpdateHolidays(ctx, sch.ID, regular, special); err != nil {
			return false, err
		}
		sch.RegularHolidays = regular
		sch.SpecialHolidays = special
	}

	if !changed && !force {
		return false, nil
	}

	reason := ReasonHolidaySync
	if force {
		reason = ReasonCreated
	}
	return changed, s.publishChanged(ctx, tx, sch, reason)
}

func (s *service) AddShift(ctx context.Context, scheduleID string, req AddShiftRequest) (ScheduleResponse, error) {
	sch, err := s.findSchedule(ctx, scheduleID)
	if err != nil {
		return ScheduleResponse{}, err
	}

	date, err := datex.Parse(req.Date)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidDate
	}
	if !sch.Covers(date) {
		return ScheduleResponse{}, scheduleerrors.ErrOutsideWindow
	}

	shift, err := NewShift(date, req.StartTime, req.EndTime)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidShiftTime
	}

	var saved *Schedule
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.AddShift(ctx, sch, &shift); err != nil {
			return err
		}
		var err error
		if saved, err = qtx.FindByID(ctx, sch.ID); err != nil {
			return err
		}
		return s.publishChanged(ctx, tx, saved, ReasonShiftAdded)
	})
	if err != nil {
		return ScheduleResponse{}, err
	}

	s.logger.Info("shift added",
		zap.String("schedule_id", scheduleID),
		zap.String("date", req.Date),
		zap.Int("expected_hours", shift.ExpectedHours),
	)
	return mapScheduleToResponse(*saved), nil
}

func (s *service) UpdateFlags(ctx context.Context, scheduleID string, req UpdateFlagsRequest) (ScheduleResponse, error) {
	sch, err := s.findSchedule(ctx, scheduleID)
	if err != nil {
		return ScheduleResponse{}, err
	}

	updates := map[string]any{}
	if req.NightDiffDates != nil {
		dates := make(pq.StringArray, 0, len(req.NightDiffDates))
		for _, raw := range req.NightDiffDates {
			d, err := datex.Parse(raw)
			if err != nil {
				return ScheduleResponse{}, scheduleerrors.ErrInvalidDate
			}
			if !sch.Covers(d) {
				return ScheduleResponse{}, scheduleerrors.ErrOutsideWindow
			}
			dates = append(dates, datex.Format(d))
		}
		updates["night_diff_dates"] = dates
		sch.NightDiffDates = dates
	}
	if req.RestDay != nil {
		updates["rest_day"] = *req.RestDay
		sch.RestDay = req.RestDay
	}
	if req.Days != nil {
		updates["days"] = pq.StringArray(req.Days)
		sch.Days = req.Days
	}
	if req.Hours != nil {
		updates["hours"] = *req.Hours
		sch.Hours = *req.Hours
	}
	if len(updates) == 0 {
		return mapScheduleToResponse(*sch), nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateFlags(ctx, sch.ID, updates); err != nil {
			return err
		}
		return s.publishChanged(ctx, tx, sch, ReasonFlagsUpdated)
	})
	if err != nil {
		return ScheduleResponse{}, err
	}

	return mapScheduleToResponse(*sch), nil
}

// List returns the schedules of userID, or of everyone when userID is empty.
func (s *service) List(ctx context.Context, userID string) ([]ScheduleResponse, error) {
	var filter *uuid.UUID
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return []ScheduleResponse{}, nil
		}
		filter = &id
	}

	schedules, err := s.repo.FindByUser(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]ScheduleResponse, 0, len(schedules))
	for _, sch := range schedules {
		out = append(out, mapScheduleToResponse(sch))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, scheduleID string) (ScheduleResponse, error) {
	sch, err := s.findSchedule(ctx, scheduleID)
	if err != nil {
		return ScheduleResponse{}, err
	}
	return mapScheduleToResponse(*sch), nil
}

func (s *service) findSchedule(ctx context.Context, scheduleID string) (*Schedule, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, scheduleerrors.ErrScheduleNotFound
	}
	sch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduleerrors.ErrScheduleNotFound
		}
		return nil, err
	}
	return sch, nil
}

func (s *service) publishChanged(ctx context.Context, tx *gorm.DB, sch *Schedule, reason string) error {
	userID := sch.UserID.String()
	return kafka.Enqueue(ctx, s.outbox, tx,
		events.ScheduleChangedTopic, scheduleChangedEventType, aggregateSchedule, sch.ID.String(), userID,
		events.ScheduleChangedEvent{
			EventType:   scheduleChangedEventType,
			ScheduleID:  sch.ID.String(),
			UserID:      userID,
			PeriodStart: datex.Format(sch.PayrollPeriodStart),
			PeriodEnd:   datex.Format(sch.PayrollPeriodEnd),
			Reason:      reason,
			OccurredAt:  time.Now().UTC(),
		},
	)
}

// HolidayArrays splits holidays into sorted, distinct regular and special
// ISO date lists.
func HolidayArrays(holidays []calendar.Holiday) (regular, special []string) {
	regular, special = []string{}, []string{}
	seen := map[string]bool{}
	for _, h := range holidays {
		key := h.HolidayType + datex.Format(h.HolidayDate)
		if seen[key] {
			continue
		}
		seen[key] = true

		switch h.HolidayType {
		case calendar.HolidayTypeRegular:
			regular = append(regular, datex.Format(h.HolidayDate))
		case calendar.HolidayTypeSpecial:
			special = append(special, datex.Format(h.HolidayDate))
		}
	}
	sort.Strings(regular)
	sort.Strings(special)
	return regular, special
}

func sameDates(current pq.StringArray, next []string) bool {
	if len(current) != len(next) {
		return false
	}
	for i := range current {
		if current[i] != next[i] {
			return false
		}
	}
	return true
}

func mapScheduleToResponse(s Schedule) ScheduleResponse {
	shifts := make([]ShiftResponse, 0, len(s.Shifts))
	for _, sh := range s.Shifts {
		shifts = append(shifts, ShiftResponse{
			ID:            sh.ID.String(),
			Date:          datex.Format(sh.ShiftDate),
			StartTime:     sh.StartTime,
			EndTime:       sh.EndTime,
			ExpectedHours: sh.ExpectedHours,
		})
	}

	return ScheduleResponse{
		ID:                 s.ID.String(),
		UserID:             s.UserID.String(),
		PayrollPeriodStart: datex.Format(s.PayrollPeriodStart),
		PayrollPeriodEnd:   datex.Format(s.PayrollPeriodEnd),
		Days:               nonNil(s.Days),
		RegularHolidays:    nonNil(s.RegularHolidays),
		SpecialHolidays:    nonNil(s.SpecialHolidays),
		NightDiffDates:     nonNil(s.NightDiffDates),
		RestDay:            s.RestDay,
		Hours:              s.Hours,
		Shifts:             shifts,
	}
}

func nonNil(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return a
}
