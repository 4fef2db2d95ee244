package salary

import (
	"context"
	"errors"
	"time"

	"go-payroll/internal/contribution"
	"go-payroll/internal/earnings"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/overtime"
	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	salaryCreatedEventType = "salary.created"
	aggregateSalary        = "salary"

	// windowsPerRun is how many of the latest overtime pay entries a run
	// turns into salaries.
	windowsPerRun = 2
)

type OvertimeSource interface {
	LatestPay(ctx context.Context, userID uuid.UUID, limit int) ([]overtime.OvertimePay, error)
	FindHoursByUserAndStart(ctx context.Context, userID uuid.UUID, start time.Time) (*overtime.OvertimeHours, error)
}

type EarningsSource interface {
	FindEarningsByUser(ctx context.Context, userID uuid.UUID) (*earnings.Earnings, error)
	FindDeductionsByUser(ctx context.Context, userID uuid.UUID) (*earnings.Deductions, error)
}

type ContributionSource interface {
	FindSetByUser(ctx context.Context, userID uuid.UUID) (*contribution.Set, error)
}

type Service interface {
	Generate(ctx context.Context) (GenerateResult, error)
	List(ctx context.Context, userID string) ([]SalaryResponse, error)
	GetByID(ctx context.Context, id string) (SalaryResponse, error)
}

type service struct {
	db            *gorm.DB
	repo          Repository
	directory     employee.Directory
	resolver      schedule.Resolver
	overtime      OvertimeSource
	earnings      EarningsSource
	contributions ContributionSource
	outbox        kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	directory employee.Directory,
	resolver schedule.Resolver,
	overtime OvertimeSource,
	earnings EarningsSource,
	contributions ContributionSource,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.assembler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.assembler")
	}
	return &service{
		db:            db,
		repo:          repo,
		directory:     directory,
		resolver:      resolver,
		overtime:      overtime,
		earnings:      earnings,
		contributions: contributions,
		outbox:        outbox,
		logger:        l,
	}
}

// Generate creates the missing salaries of every active user. A failing user
// is logged and counted; the run continues with the next one.
func (s *service) Generate(ctx context.Context) (GenerateResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	users, err := s.directory.ListActiveUserIDs(ctx)
	if err != nil {
		return GenerateResult{}, err
	}

	result := GenerateResult{Users: len(users)}
	for _, userID := range users {
		created, skipped, err := s.generateForUser(ctx, userID)
		result.Created += created
		result.Skipped += skipped
		if err != nil {
			result.Failed++
			log.Error("salary generation failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	log.Info("salary generation finished",
		zap.Int("users", result.Users),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *service) generateForUser(ctx context.Context, userID uuid.UUID) (created, skipped int, err error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("user_id", userID.String()))

	pays, err := s.overtime.LatestPay(ctx, userID, windowsPerRun)
	if err != nil {
		return 0, 0, err
	}
	if len(pays) == 0 {
		return 0, 0, nil
	}

	inputs, err := s.loadInputs(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	inputs.warnMissing(log)

	for _, pay := range pays {
		wlog := log.With(zap.String("biweek_start", datex.Format(pay.BiweekStart)))

		sch, ok, err := s.resolver.ScheduleByWindow(ctx, userID, pay.BiweekStart)
		if err != nil {
			return created, skipped, err
		}
		if !ok {
			wlog.Warn("no schedule starts at overtime pay window, salary not generated")
			skipped++
			continue
		}

		payDate := PayDate(sch.PayrollPeriodEnd)
		exists, err := s.repo.ExistsForPayDate(ctx, userID, payDate)
		if err != nil {
			return created, skipped, err
		}
		if exists {
			wlog.Debug("salary already exists", zap.String("pay_date", datex.Format(payDate)))
			skipped++
			continue
		}

		hours, err := s.overtime.FindHoursByUserAndStart(ctx, userID, pay.BiweekStart)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, err
		}

		row := assemble(userID, payDate, *sch, pay, hours, inputs)
		ok, err = s.create(ctx, row)
		if err != nil {
			return created, skipped, err
		}
		if !ok {
			skipped++
			continue
		}
		created++
		wlog.Info("salary created", zap.String("salary_id", row.ID.String()), zap.String("pay_date", datex.Format(payDate)))
	}
	return created, skipped, nil
}

func (s *service) create(ctx context.Context, row *Salary) (bool, error) {
	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.repo.WithTx(tx).CreateIfAbsent(ctx, row)
		if err != nil || !created {
			return err
		}
		userID := row.UserID.String()
		return kafka.Enqueue(ctx, s.outbox, tx,
			events.SalaryCreatedTopic, salaryCreatedEventType, aggregateSalary, row.ID.String(), userID,
			events.SalaryCreatedEvent{
				EventType:  salaryCreatedEventType,
				SalaryID:   row.ID.String(),
				UserID:     userID,
				PayDate:    datex.Format(row.PayDate),
				OccurredAt: time.Now().UTC(),
			},
		)
	})
	return created, err
}

// inputs are the current-value registers shared by every window of a user.
type inputs struct {
	earnings      *earnings.Earnings
	deductions    *earnings.Deductions
	contributions *contribution.Set
}

func (s *service) loadInputs(ctx context.Context, userID uuid.UUID) (inputs, error) {
	var in inputs
	var err error

	if in.earnings, err = s.earnings.FindEarningsByUser(ctx, userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return in, err
	}
	if in.deductions, err = s.earnings.FindDeductionsByUser(ctx, userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return in, err
	}
	if in.contributions, err = s.contributions.FindSetByUser(ctx, userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return in, err
	}
	return in, nil
}

func (in inputs) warnMissing(log *zap.Logger) {
	if in.earnings == nil {
		log.Warn("no earnings found")
	}
	if in.deductions == nil {
		log.Warn("no deductions found")
	}
	if in.contributions == nil {
		log.Warn("no contributions found")
	}
}

func assemble(
	userID uuid.UUID,
	payDate time.Time,
	sch schedule.Schedule,
	pay overtime.OvertimePay,
	hours *overtime.OvertimeHours,
	in inputs,
) *Salary {
	row := &Salary{
		ID:            uuid.New(),
		UserID:        userID,
		PayDate:       payDate,
		ScheduleID:    sch.ID,
		OvertimePayID: pay.ID,
	}

	snap := Snapshot{
		PeriodStart: datex.Format(sch.PayrollPeriodStart),
		PeriodEnd:   datex.Format(sch.PayrollPeriodEnd),
		OvertimePay: OvertimePaySnapshot{
			BiweekStart:         datex.Format(pay.BiweekStart),
			TotalRegularOT:      pay.TotalRegularOT,
			TotalRegularHoliday: pay.TotalRegularHoliday,
			TotalSpecialHoliday: pay.TotalSpecialHoliday,
			TotalRestDay:        pay.TotalRestDay,
			TotalNightDiff:      pay.TotalNightDiff,
			TotalBackwage:       pay.TotalBackwage,
			TotalOvertime:       pay.TotalOvertime,
			TotalLate:           pay.TotalLate,
			TotalUndertime:      pay.TotalUndertime,
		},
	}

	if hours != nil {
		row.OvertimeHoursID = &hours.ID
		snap.OvertimeHours = OvertimeHoursSnapshot{
			ActualHours:    hours.ActualHours,
			RegularOT:      hours.RegularOT,
			RegularHoliday: hours.RegularHoliday,
			SpecialHoliday: hours.SpecialHoliday,
			RestDay:        hours.RestDay,
			NightDiff:      hours.NightDiff,
			Late:           hours.Late,
			Undertime:      hours.Undertime,
		}
	}
	if e := in.earnings; e != nil {
		row.EarningsID = &e.ID
		snap.Earnings = EarningsSnapshot{
			Basic:         e.Basic,
			Allowance:     e.Allowance,
			Ntax:          e.Ntax,
			VacationLeave: e.VacationLeave,
			SickLeave:     e.SickLeave,
		}
		if e.BasicRate.Valid {
			snap.Earnings.BasicRate = e.BasicRate.Decimal
		}
	}
	if d := in.deductions; d != nil {
		row.DeductionsID = &d.ID
		snap.Deductions = DeductionsSnapshot{
			Wtax:     d.Wtax,
			Nowork:   d.Nowork,
			Loan:     d.Loan,
			Charges:  d.Charges,
			Msfcloan: d.Msfcloan,
		}
	}
	if c := in.contributions; c != nil {
		row.SSSID = &c.SSS.ID
		row.PhilHealthID = &c.PhilHealth.ID
		row.PagIBIGID = &c.PagIBIG.ID
		snap.Contributions = ContributionsSnapshot{
			TableVersion:    c.SSS.TableVersion,
			SSSEmployee:     c.SSS.TotalEmployee,
			SSSEmployer:     c.SSS.TotalEmployer,
			PhilHealthTotal: c.PhilHealth.Total,
			PagIBIGEmployee: c.PagIBIG.EmployeeShare,
			PagIBIGEmployer: c.PagIBIG.EmployerShare,
		}
	}

	row.Snapshot = datatypes.NewJSONType(snap)
	return row
}

func (s *service) List(ctx context.Context, userID string) ([]SalaryResponse, error) {
	var uid *uuid.UUID
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return []SalaryResponse{}, nil
		}
		uid = &id
	}

	rows, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]SalaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryResponse, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
	}
	row, err := s.repo.FindByID(ctx, sid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	return mapToResponse(*row), nil
}

func mapToResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:            s.ID.String(),
		UserID:        s.UserID.String(),
		PayDate:       datex.Format(s.PayDate),
		ScheduleID:    s.ScheduleID.String(),
		OvertimePayID: s.OvertimePayID.String(),
		Snapshot:      s.Snapshot.Data(),
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
