package calendar

import (
	"context"
	"errors"
	"time"

	calendarerrors "go-payroll/internal/calendar/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	calendarChangedEventType = "calendar.changed"
	aggregateHoliday         = "holiday"
	aggregatePayrollPeriod   = "payroll_period"
)

type Service interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context, filter ListHolidaysFilter) ([]HolidayResponse, error)
	CreatePayrollPeriod(ctx context.Context, req CreatePayrollPeriodRequest) (PayrollPeriodResponse, error)
	SeedPayrollPeriods(ctx context.Context, year int) ([]PayrollPeriodResponse, error)
	ListPayrollPeriods(ctx context.Context) ([]PayrollPeriodResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := datex.Parse(req.Date)
	if err != nil {
		return HolidayResponse{}, calendarerrors.ErrInvalidDate
	}
	if req.HolidayType != HolidayTypeRegular && req.HolidayType != HolidayTypeSpecial {
		return HolidayResponse{}, calendarerrors.ErrInvalidHolidayType
	}

	holiday := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		HolidayDate: date,
		HolidayType: req.HolidayType,
		Description: req.Description,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateHoliday(ctx, holiday); err != nil {
			return err
		}
		return s.publishChanged(ctx, tx, events.CalendarKindHoliday, date, date, "", aggregateHoliday, holiday.ID.String())
	})
	if err != nil {
		if apperror.IsUniqueViolation(err, "uq_holiday_date_type") {
			return HolidayResponse{}, calendarerrors.ErrHolidayExists
		}
		return HolidayResponse{}, err
	}

	s.logger.Info("holiday created",
		zap.String("holiday_id", holiday.ID.String()),
		zap.String("date", req.Date),
		zap.String("holiday_type", req.HolidayType),
	)
	return mapHolidayToResponse(*holiday), nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return calendarerrors.ErrHolidayNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		holiday, err := qtx.FindHolidayByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return calendarerrors.ErrHolidayNotFound
			}
			return err
		}
		if err := qtx.DeleteHoliday(ctx, id); err != nil {
			return err
		}
		return s.publishChanged(ctx, tx, events.CalendarKindHoliday, holiday.HolidayDate, holiday.HolidayDate, "", aggregateHoliday, id)
	})
}

func (s *service) ListHolidays(ctx context.Context, filter ListHolidaysFilter) ([]HolidayResponse, error) {
	from := datex.Date(1900, time.January, 1)
	to := datex.Date(9999, time.December, 31)
	if filter.From != "" {
		d, err := datex.Parse(filter.From)
		if err != nil {
			return nil, calendarerrors.ErrInvalidDate
		}
		from = d
	}
	if filter.To != "" {
		d, err := datex.Parse(filter.To)
		if err != nil {
			return nil, calendarerrors.ErrInvalidDate
		}
		to = d
	}

	holidays, err := s.repo.FindHolidaysBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, mapHolidayToResponse(h))
	}
	return out, nil
}

func (s *service) CreatePayrollPeriod(ctx context.Context, req CreatePayrollPeriodRequest) (PayrollPeriodResponse, error) {
	start, err := datex.Parse(req.PeriodStart)
	if err != nil {
		return PayrollPeriodResponse{}, calendarerrors.ErrInvalidDate
	}
	end, err := datex.Parse(req.PeriodEnd)
	if err != nil {
		return PayrollPeriodResponse{}, calendarerrors.ErrInvalidDate
	}
	if start.After(end) {
		return PayrollPeriodResponse{}, calendarerrors.ErrInvalidDateRange
	}

	period := &PayrollPeriod{ID: uuid.New(), PeriodStart: start, PeriodEnd: end}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreatePeriod(ctx, period); err != nil {
			return err
		}
		return s.publishChanged(ctx, tx, events.CalendarKindPayrollPeriod, start, end, period.ID.String(), aggregatePayrollPeriod, period.ID.String())
	})
	if err != nil {
		if apperror.IsUniqueViolation(err, "uq_payroll_period_range") {
			return PayrollPeriodResponse{}, calendarerrors.ErrPayrollPeriodExists
		}
		return PayrollPeriodResponse{}, err
	}

	s.logger.Info("payroll period created",
		zap.String("payroll_period_id", period.ID.String()),
		zap.String("start", req.PeriodStart),
		zap.String("end", req.PeriodEnd),
	)
	return mapPeriodToResponse(*period), nil
}

// SeedPayrollPeriods creates the semi-monthly periods (1st-15th and
// 16th-end of month) of year that do not exist yet.
func (s *service) SeedPayrollPeriods(ctx context.Context, year int) ([]PayrollPeriodResponse, error) {
	periods, err := SemiMonthlyPeriods(year)
	if err != nil {
		return nil, err
	}

	created := make([]PayrollPeriodResponse, 0, len(periods))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		for i := range periods {
			p := &periods[i]
			p.ID = uuid.New()
			inserted, err := qtx.CreatePeriodIfAbsent(ctx, p)
			if err != nil {
				return err
			}
			if !inserted {
				continue
			}
			if err := s.publishChanged(ctx, tx, events.CalendarKindPayrollPeriod, p.PeriodStart, p.PeriodEnd, p.ID.String(), aggregatePayrollPeriod, p.ID.String()); err != nil {
				return err
			}
			created = append(created, mapPeriodToResponse(*p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payroll periods seeded", zap.Int("year", year), zap.Int("created", len(created)))
	return created, nil
}

func (s *service) ListPayrollPeriods(ctx context.Context) ([]PayrollPeriodResponse, error) {
	periods, err := s.repo.FindAllPeriods(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PayrollPeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, mapPeriodToResponse(p))
	}
	return out, nil
}

// SemiMonthlyPeriods returns the 24 semi-monthly periods of year.
func SemiMonthlyPeriods(year int) ([]PayrollPeriod, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.MONTHLY,
		Dtstart:    datex.Date(year, time.January, 1),
		Until:      datex.Date(year, time.December, 31),
		Bymonthday: []int{1, 16},
	})
	if err != nil {
		return nil, err
	}

	starts := rule.All()
	periods := make([]PayrollPeriod, 0, len(starts))
	for _, start := range starts {
		start = datex.Normalize(start)
		end := datex.Date(start.Year(), start.Month(), 15)
		if start.Day() == 16 {
			end = datex.EndOfMonth(start)
		}
		periods = append(periods, PayrollPeriod{PeriodStart: start, PeriodEnd: end})
	}
	return periods, nil
}

func (s *service) publishChanged(
	ctx context.Context,
	tx *gorm.DB,
	kind string,
	from, to time.Time,
	periodID, aggregateType, aggregateID string,
) error {
	return kafka.Enqueue(ctx, s.outbox, tx,
		events.CalendarChangedTopic, calendarChangedEventType, aggregateType, aggregateID, events.CalendarPartitionKey,
		events.CalendarChangedEvent{
			EventType:       calendarChangedEventType,
			Kind:            kind,
			From:            datex.Format(from),
			To:              datex.Format(to),
			PayrollPeriodID: periodID,
			OccurredAt:      time.Now().UTC(),
		},
	)
}

func mapHolidayToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        datex.Format(h.HolidayDate),
		HolidayType: h.HolidayType,
		Description: h.Description,
	}
}

func mapPeriodToResponse(p PayrollPeriod) PayrollPeriodResponse {
	return PayrollPeriodResponse{
		ID:          p.ID.String(),
		PeriodStart: datex.Format(p.PeriodStart),
		PeriodEnd:   datex.Format(p.PeriodEnd),
	}
}
