package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/salary"
	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	payrollComputedEventType = "payroll.computed"
	aggregatePayroll         = "payroll"

	totalsCacheTTL = 5 * time.Minute
)

// SalaryReader is the salary data the calculator reads.
type SalaryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*salary.Salary, error)
}

type Service interface {
	HandleSalaryCreated(ctx context.Context, event events.SalaryCreatedEvent) error
	List(ctx context.Context, userID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	// Totals returns the dashboard totals as of day, served from cache when
	// fresh.
	Totals(ctx context.Context, day time.Time) (TotalsResponse, error)
	// RefreshTotals recomputes the totals of day and overwrites the cache.
	RefreshTotals(ctx context.Context, day time.Time) (TotalsResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	salaries  SalaryReader
	resolver  schedule.Resolver
	directory employee.Directory
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	salaries SalaryReader,
	resolver schedule.Resolver,
	directory employee.Directory,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.calculator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.calculator")
	}
	return &service{
		db:        db,
		repo:      repo,
		salaries:  salaries,
		resolver:  resolver,
		directory: directory,
		outbox:    outbox,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) HandleSalaryCreated(ctx context.Context, event events.SalaryCreatedEvent) error {
	salaryID, err := uuid.Parse(event.SalaryID)
	if err != nil {
		return pipeline.Permanent(fmt.Errorf("salary event id: %w", err))
	}

	sal, err := s.salaries.FindByID(ctx, salaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pipeline.Skip("salary %s not found", event.SalaryID)
		}
		return err
	}

	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("user_id", sal.UserID.String()),
		zap.String("salary_id", sal.ID.String()),
		zap.String("pay_date", datex.Format(sal.PayDate)),
	)

	amounts := Compute(sal.Snapshot.Data())
	row := &Payroll{
		ID:              uuid.New(),
		SalaryID:        sal.ID,
		UserID:          sal.UserID,
		PayDate:         sal.PayDate,
		GrossPay:        amounts.Gross,
		TotalDeductions: amounts.Deductions,
		NetPay:          amounts.Net,
	}

	sch, ok, err := s.resolver.LatestEndingBefore(ctx, sal.UserID, sal.PayDate)
	if err != nil {
		return err
	}
	if ok {
		row.ScheduleID = &sch.ID
	} else {
		log.Warn("no schedule ends before pay date")
	}

	info, err := s.directory.EmploymentInfo(ctx, sal.UserID)
	switch {
	case err == nil:
		row.EmploymentInfoID = &info.ID
	case errors.Is(err, employeeerrors.ErrEmploymentInfoNotFound):
		log.Warn("no employment info linked to user")
	default:
		return err
	}

	var saved *Payroll
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.Upsert(ctx, row); err != nil {
			return err
		}
		var err error
		saved, err = qtx.FindBySalary(ctx, sal.ID)
		if err != nil {
			return err
		}
		userID := saved.UserID.String()
		return kafka.Enqueue(ctx, s.outbox, tx,
			events.PayrollComputedTopic, payrollComputedEventType, aggregatePayroll, saved.ID.String(), userID,
			events.PayrollComputedEvent{
				EventType:  payrollComputedEventType,
				PayrollID:  saved.ID.String(),
				SalaryID:   sal.ID.String(),
				UserID:     userID,
				OccurredAt: time.Now().UTC(),
			},
		)
	})
	if err != nil {
		return fmt.Errorf("upsert payroll: %w", err)
	}

	log.Info("payroll computed",
		zap.String("gross_pay", saved.GrossPay.StringFixed(2)),
		zap.String("total_deductions", saved.TotalDeductions.StringFixed(2)),
		zap.String("net_pay", saved.NetPay.StringFixed(2)),
	)
	return nil
}

func (s *service) List(ctx context.Context, userID string) ([]PayrollResponse, error) {
	var uid *uuid.UUID
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return []PayrollResponse{}, nil
		}
		uid = &id
	}

	rows, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]PayrollResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}
	row, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

func totalsCacheKey(day time.Time) string {
	return "payroll:totals:" + datex.Format(day)
}

func (s *service) Totals(ctx context.Context, day time.Time) (TotalsResponse, error) {
	day = datex.Normalize(day)
	cacheKey := totalsCacheKey(day)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp TotalsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		return s.RefreshTotals(ctx, day)
	})
	if err != nil {
		return TotalsResponse{}, err
	}
	return v.(TotalsResponse), nil
}

func (s *service) RefreshTotals(ctx context.Context, day time.Time) (TotalsResponse, error) {
	day = datex.Normalize(day)
	resp := TotalsResponse{AsOf: datex.Format(day)}

	prev, err := s.repo.LatestPayDateBefore(ctx, day)
	if err != nil {
		return TotalsResponse{}, err
	}
	if prev != nil {
		sum, err := s.repo.SumNetPay(ctx, *prev)
		if err != nil {
			return TotalsResponse{}, err
		}
		date := datex.Format(*prev)
		resp.PreviousPayDate, resp.PreviousPayroll = &date, &sum
	}

	next, err := s.repo.SoonestPayDateAfter(ctx, day)
	if err != nil {
		return TotalsResponse{}, err
	}
	if next != nil {
		sum, err := s.repo.SumNetPay(ctx, *next)
		if err != nil {
			return TotalsResponse{}, err
		}
		date := datex.Format(*next)
		resp.UpcomingPayDate, resp.UpcomingPayroll = &date, &sum
	}

	if s.rdb != nil {
		if jsonData, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, totalsCacheKey(day), jsonData, totalsCacheTTL).Err(); err != nil {
				contextutil.GetLogger(ctx, s.logger).Warn("cache total payroll failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:              p.ID.String(),
		SalaryID:        p.SalaryID.String(),
		UserID:          p.UserID.String(),
		PayDate:         datex.Format(p.PayDate),
		GrossPay:        p.GrossPay,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
	}
	if p.ScheduleID != nil {
		id := p.ScheduleID.String()
		resp.ScheduleID = &id
	}
	if p.EmploymentInfoID != nil {
		id := p.EmploymentInfoID.String()
		resp.EmploymentInfoID = &id
	}
	return resp
}
