package contribution

import (
	"context"
	"errors"
	"fmt"

	contributionerrors "go-payroll/internal/contribution/errors"
	"go-payroll/internal/contribution/ratetable"
	"go-payroll/internal/earnings"
	"go-payroll/internal/events"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EarningsReader is the pay basis the engine derives from.
type EarningsReader interface {
	FindEarningsByUser(ctx context.Context, userID uuid.UUID) (*earnings.Earnings, error)
}

type Service interface {
	HandleEarningsSaved(ctx context.Context, event events.EarningsSavedEvent) error
	Get(ctx context.Context, userID string) (ContributionsResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	earnings EarningsReader
	tables   *ratetable.Tables
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, earnings EarningsReader, tables *ratetable.Tables, logger ...*zap.Logger) Service {
	l := zap.L().Named("contribution.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contribution.engine")
	}
	return &service{db: db, repo: repo, earnings: earnings, tables: tables, logger: l}
}

func (s *service) HandleEarningsSaved(ctx context.Context, event events.EarningsSavedEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return pipeline.Permanent(fmt.Errorf("earnings event user id: %w", err))
	}

	e, err := s.earnings.FindEarningsByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pipeline.Skip("earnings of user %s not found", event.UserID)
		}
		return err
	}
	if !e.BasicRate.Valid {
		return pipeline.Skip("user %s has no basic rate", event.UserID)
	}

	set := Compute(s.tables, userID, e.BasicRate.Decimal)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).UpsertSet(ctx, &set)
	})
	if err != nil {
		return fmt.Errorf("upsert contributions: %w", err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("contributions saved",
		zap.String("user_id", event.UserID),
		zap.String("table_version", s.tables.Version),
		zap.String("basic_rate", e.BasicRate.Decimal.StringFixed(2)),
		zap.String("employee_total", set.EmployeeTotal().StringFixed(2)),
	)
	return nil
}

func (s *service) Get(ctx context.Context, userID string) (ContributionsResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ContributionsResponse{}, contributionerrors.ErrContributionsNotFound
	}
	set, err := s.repo.FindSetByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContributionsResponse{}, contributionerrors.ErrContributionsNotFound
		}
		return ContributionsResponse{}, err
	}
	return mapToResponse(*set), nil
}

func mapToResponse(set Set) ContributionsResponse {
	return ContributionsResponse{
		UserID:       set.SSS.UserID.String(),
		TableVersion: set.SSS.TableVersion,
		SSS: SSSResponse{
			BasicSalary:   set.SSS.BasicSalary,
			MSC:           set.SSS.MSC,
			EmployeeShare: set.SSS.EmployeeShare,
			EmployerShare: set.SSS.EmployerShare,
			EC:            set.SSS.EC,
			EmployerMPF:   set.SSS.EmployerMPF,
			EmployeeMPF:   set.SSS.EmployeeMPF,
			TotalEmployer: set.SSS.TotalEmployer,
			TotalEmployee: set.SSS.TotalEmployee,
			Total:         set.SSS.Total,
		},
		PhilHealth: PhilHealthResponse{
			BasicSalary: set.PhilHealth.BasicSalary,
			Total:       set.PhilHealth.Total,
		},
		PagIBIG: PagIBIGResponse{
			EmployeeShare: set.PagIBIG.EmployeeShare,
			EmployerShare: set.PagIBIG.EmployerShare,
			Total:         set.PagIBIG.Total,
		},
		EmployeeTotal: set.EmployeeTotal(),
	}
}
