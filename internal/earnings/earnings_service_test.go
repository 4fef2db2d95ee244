package earnings

import (
	"context"
	"testing"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/kafkatest"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	earnings   map[uuid.UUID]Earnings
	deductions map[uuid.UUID]Deductions
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{earnings: map[uuid.UUID]Earnings{}, deductions: map[uuid.UUID]Deductions{}}
}

func (f *fakeRepo) WithTx(*gorm.DB) Repository { return f }

func (f *fakeRepo) UpsertEarnings(_ context.Context, e *Earnings) error {
	if existing, ok := f.earnings[e.UserID]; ok {
		e.ID = existing.ID
	}
	f.earnings[e.UserID] = *e
	return nil
}

func (f *fakeRepo) FindEarningsByUser(_ context.Context, userID uuid.UUID) (*Earnings, error) {
	e, ok := f.earnings[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeRepo) UpsertDeductions(_ context.Context, d *Deductions) error {
	if existing, ok := f.deductions[d.UserID]; ok {
		d.ID = existing.ID
	}
	f.deductions[d.UserID] = *d
	return nil
}

func (f *fakeRepo) FindDeductionsByUser(_ context.Context, userID uuid.UUID) (*Deductions, error) {
	d, ok := f.deductions[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func TestService_UpsertEarnings_OneRowPerUser(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	outbox := &kafkatest.Outbox{}
	repo := newFakeRepo()
	svc := NewService(db, repo, outbox, zap.NewNop())
	userID := uuid.New()
	rate := decimal.NewFromInt(20000)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	first, err := svc.UpsertEarnings(context.Background(), UpsertEarningsRequest{UserID: userID.String(), Allowance: decimal.NewFromInt(500)})
	require.NoError(t, err)
	assert.Nil(t, first.BasicRate)

	second, err := svc.UpsertEarnings(context.Background(), UpsertEarningsRequest{UserID: userID.String(), BasicRate: &rate})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Len(t, repo.earnings, 1)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.BasicRate)
	assert.True(t, rate.Equal(*second.BasicRate))

	require.Equal(t, []string{events.EarningsSavedTopic, events.EarningsSavedTopic}, outbox.Topics())
	var evt events.EarningsSavedEvent
	require.NoError(t, outbox.Decode(1, &evt))
	assert.Equal(t, userID.String(), evt.UserID)
	assert.Equal(t, userID.String(), outbox.Events[1].Key())
}

func TestService_UpsertDeductions_Total(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	outbox := &kafkatest.Outbox{}
	svc := NewService(db, newFakeRepo(), outbox, zap.NewNop())
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.UpsertDeductions(context.Background(), UpsertDeductionsRequest{
		UserID:   userID.String(),
		Wtax:     decimal.RequireFromString("1250.75"),
		Loan:     decimal.NewFromInt(1000),
		Msfcloan: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2500.75").Equal(resp.Total))
	assert.Empty(t, outbox.Events)
}

func TestService_Validation(t *testing.T) {
	db, _ := testutil.NewMockGorm(t)
	svc := NewService(db, newFakeRepo(), &kafkatest.Outbox{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.UpsertEarnings(ctx, UpsertEarningsRequest{UserID: uuid.NewString(), Basic: decimal.NewFromInt(-5)})
	assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code)

	_, err = svc.GetEarnings(ctx, uuid.NewString())
	assert.Equal(t, apperror.CodeNotFound, apperror.ToHTTP(err).Code)

	_, err = svc.GetDeductions(ctx, "nope")
	assert.Equal(t, apperror.CodeNotFound, apperror.ToHTTP(err).Code)
}
