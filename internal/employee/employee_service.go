package employee

import (
	"context"
	"errors"
	"fmt"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Directory answers identity questions for the pipeline.
type Directory interface {
	ResolveUser(ctx context.Context, employeeNumber int) (uuid.UUID, error)
	EmploymentInfo(ctx context.Context, userID uuid.UUID) (*EmploymentInfo, error)
	ListActiveUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type directory struct {
	repo   Repository
	logger *zap.Logger
}

func NewDirectory(repo Repository, logger ...*zap.Logger) Directory {
	l := zap.L().Named("employee.directory")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.directory")
	}
	return &directory{repo: repo, logger: l}
}

// ResolveUser returns ErrUserNotMapped when no account owns employeeNumber.
func (d *directory) ResolveUser(ctx context.Context, employeeNumber int) (uuid.UUID, error) {
	user, err := d.repo.FindUserByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, employeeerrors.ErrUserNotMapped.WithDetails(map[string]int{"employee_number": employeeNumber})
		}
		return uuid.Nil, fmt.Errorf("resolve employee number %d: %w", employeeNumber, err)
	}
	return user.ID, nil
}

func (d *directory) EmploymentInfo(ctx context.Context, userID uuid.UUID) (*EmploymentInfo, error) {
	info, err := d.repo.FindEmploymentInfoByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmploymentInfoNotFound
		}
		return nil, err
	}
	return info, nil
}

func (d *directory) ListActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := d.repo.ListActiveUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("active users listed", zap.Int("count", len(ids)))
	return ids, nil
}
