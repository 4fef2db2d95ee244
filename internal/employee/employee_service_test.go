package employee

import (
	"context"
	"errors"
	"testing"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	findUserByEmployeeNumberFn func(ctx context.Context, n int) (*User, error)
	findEmploymentInfoFn       func(ctx context.Context, userID uuid.UUID) (*EmploymentInfo, error)
	listActiveUserIDsFn        func(ctx context.Context) ([]uuid.UUID, error)
}

func (f *fakeRepo) FindUserByEmployeeNumber(ctx context.Context, n int) (*User, error) {
	return f.findUserByEmployeeNumberFn(ctx, n)
}
func (f *fakeRepo) FindEmploymentInfoByUser(ctx context.Context, userID uuid.UUID) (*EmploymentInfo, error) {
	return f.findEmploymentInfoFn(ctx, userID)
}
func (f *fakeRepo) ListActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.listActiveUserIDsFn(ctx)
}

func TestDirectory_ResolveUser(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{
		findUserByEmployeeNumberFn: func(_ context.Context, n int) (*User, error) {
			if n == 1001 {
				return &User{ID: userID}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	dir := NewDirectory(repo, zap.NewNop())

	got, err := dir.ResolveUser(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = dir.ResolveUser(context.Background(), 42)
	assert.ErrorIs(t, err, employeeerrors.ErrUserNotMapped)
}

func TestDirectory_ResolveUser_InfraError(t *testing.T) {
	repo := &fakeRepo{
		findUserByEmployeeNumberFn: func(context.Context, int) (*User, error) {
			return nil, errors.New("connection refused")
		},
	}
	dir := NewDirectory(repo, zap.NewNop())

	_, err := dir.ResolveUser(context.Background(), 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, employeeerrors.ErrUserNotMapped)
}

func TestEmploymentInfo_FullName(t *testing.T) {
	assert.Equal(t, "Ana Cruz", EmploymentInfo{FirstName: "Ana", LastName: "Cruz"}.FullName())
	assert.Equal(t, "Cruz", EmploymentInfo{LastName: "Cruz"}.FullName())
}
