package contribution

import (
	"context"
	"testing"

	"go-payroll/internal/contribution/ratetable"
	"go-payroll/internal/earnings"
	"go-payroll/internal/events"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type memRepo struct {
	sets    map[uuid.UUID]Set
	upserts int
}

func (m *memRepo) WithTx(*gorm.DB) Repository { return m }

func (m *memRepo) UpsertSet(_ context.Context, set *Set) error {
	m.upserts++
	m.sets[set.SSS.UserID] = *set
	return nil
}

func (m *memRepo) FindSetByUser(_ context.Context, userID uuid.UUID) (*Set, error) {
	set, ok := m.sets[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &set, nil
}

type fakeEarnings struct {
	findFn func(ctx context.Context, userID uuid.UUID) (*earnings.Earnings, error)
}

func (f *fakeEarnings) FindEarningsByUser(ctx context.Context, userID uuid.UUID) (*earnings.Earnings, error) {
	return f.findFn(ctx, userID)
}

func loadTables(t *testing.T) *ratetable.Tables {
	t.Helper()
	tables, err := ratetable.Load(ratetable.DefaultVersion)
	require.NoError(t, err)
	return tables
}

func TestCompute(t *testing.T) {
	userID := uuid.New()
	set := Compute(loadTables(t), userID, decimal.NewFromInt(10000))

	assert.True(t, decimal.NewFromInt(250).Equal(set.SSS.EmployeeShare), set.SSS.EmployeeShare.String())
	assert.True(t, decimal.NewFromInt(250).Equal(set.PhilHealth.Total), set.PhilHealth.Total.String())
	assert.True(t, decimal.NewFromInt(100).Equal(set.PagIBIG.EmployeeShare))
	assert.True(t, decimal.NewFromInt(100).Equal(set.PagIBIG.EmployerShare))
	assert.True(t, decimal.NewFromInt(10000).Equal(set.SSS.BasicSalary))
	assert.Equal(t, ratetable.DefaultVersion, set.SSS.TableVersion)
	assert.True(t, set.SSS.TotalEmployee.Add(set.PhilHealth.Total).Add(set.PagIBIG.EmployeeShare).Equal(set.EmployeeTotal()))
}

func TestService_HandleEarningsSaved(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	userID := uuid.New()
	repo := &memRepo{sets: map[uuid.UUID]Set{}}
	rate := decimal.NewFromInt(20000)
	reader := &fakeEarnings{findFn: func(context.Context, uuid.UUID) (*earnings.Earnings, error) {
		return &earnings.Earnings{UserID: userID, BasicRate: decimal.NewNullDecimal(rate)}, nil
	}}
	svc := NewService(db, repo, reader, loadTables(t), zap.NewNop())

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	event := events.EarningsSavedEvent{UserID: userID.String()}
	require.NoError(t, svc.HandleEarningsSaved(context.Background(), event))
	require.NoError(t, svc.HandleEarningsSaved(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Len(t, repo.sets, 1)
	assert.Equal(t, 2, repo.upserts)

	resp, err := svc.Get(context.Background(), userID.String())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(resp.PhilHealth.Total))
}

func TestService_HandleEarningsSaved_NoBasicRate(t *testing.T) {
	db, _ := testutil.NewMockGorm(t)
	repo := &memRepo{sets: map[uuid.UUID]Set{}}
	reader := &fakeEarnings{findFn: func(_ context.Context, userID uuid.UUID) (*earnings.Earnings, error) {
		return &earnings.Earnings{UserID: userID}, nil
	}}
	svc := NewService(db, repo, reader, loadTables(t), zap.NewNop())

	err := svc.HandleEarningsSaved(context.Background(), events.EarningsSavedEvent{UserID: uuid.NewString()})
	assert.True(t, pipeline.IsSkipped(err))
	assert.Zero(t, repo.upserts)

	err = svc.HandleEarningsSaved(context.Background(), events.EarningsSavedEvent{UserID: "x"})
	assert.True(t, pipeline.IsPermanent(err))
}
