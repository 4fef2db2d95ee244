package payslip

import (
	"bytes"
	"context"
	"testing"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/datex"
	"go-payroll/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type memRepo struct {
	rows map[uuid.UUID]*Payslip
}

func (m *memRepo) WithTx(*gorm.DB) Repository { return m }

func (m *memRepo) CreateIfAbsent(_ context.Context, p *Payslip) (bool, error) {
	for _, r := range m.rows {
		if r.PayrollID == p.PayrollID {
			return false, nil
		}
	}
	row := *p
	m.rows[p.ID] = &row
	return true, nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*Payslip, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r
	return &out, nil
}

func (m *memRepo) List(_ context.Context, userID *uuid.UUID, approvedOnly bool) ([]Payslip, error) {
	var out []Payslip
	for _, r := range m.rows {
		if (userID == nil || r.UserID == *userID) && (!approvedOnly || r.Status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) Approve(_ context.Context, id uuid.UUID, at time.Time) error {
	if r := m.rows[id]; r != nil && !r.Status {
		r.Status, r.ApprovedAt = true, &at
	}
	return nil
}

func (m *memRepo) StampGenerated(_ context.Context, id uuid.UUID, at time.Time) error {
	m.rows[id].GeneratedAt = &at
	return nil
}

func (m *memRepo) StampEmployeeGenerated(_ context.Context, id uuid.UUID, at time.Time) error {
	if r := m.rows[id]; r.EmployeeGeneratedAt == nil {
		r.EmployeeGeneratedAt = &at
	}
	return nil
}

type fakePayrolls struct {
	rows map[uuid.UUID]payroll.Payroll
}

func (f *fakePayrolls) FindByID(_ context.Context, id uuid.UUID) (*payroll.Payroll, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

type fakeSalaries struct {
	rows map[uuid.UUID]salary.Salary
}

func (f *fakeSalaries) FindByID(_ context.Context, id uuid.UUID) (*salary.Salary, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

type fakeDirectory struct{}

func (fakeDirectory) ResolveUser(context.Context, int) (uuid.UUID, error) { return uuid.Nil, nil }
func (fakeDirectory) EmploymentInfo(context.Context, uuid.UUID) (*employee.EmploymentInfo, error) {
	return nil, employeeerrors.ErrEmploymentInfoNotFound
}
func (fakeDirectory) ListActiveUserIDs(context.Context) ([]uuid.UUID, error) { return nil, nil }

type fixture struct {
	svc     *service
	repo    *memRepo
	payroll payroll.Payroll
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, mock := testutil.NewMockGorm(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 8; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	userID := uuid.New()
	sal := salary.Salary{
		ID: uuid.New(), UserID: userID, PayDate: datex.Date(2025, 4, 15),
		Snapshot: datatypes.NewJSONType(salary.Snapshot{PeriodStart: "2025-04-01", PeriodEnd: "2025-04-14"}),
	}
	p := payroll.Payroll{
		ID: uuid.New(), SalaryID: sal.ID, UserID: userID, PayDate: sal.PayDate,
		GrossPay: decimal.NewFromInt(10000), NetPay: decimal.NewFromInt(9000), TotalDeductions: decimal.NewFromInt(1000),
	}
	repo := &memRepo{rows: map[uuid.UUID]*Payslip{}}
	svc := NewService(db, repo,
		&fakePayrolls{rows: map[uuid.UUID]payroll.Payroll{p.ID: p}},
		&fakeSalaries{rows: map[uuid.UUID]salary.Salary{sal.ID: sal}},
		fakeDirectory{}, zap.NewNop(),
	).(*service)
	return fixture{svc: svc, repo: repo, payroll: p}
}

func TestService_HandlePayrollComputed_CreatesOnce(t *testing.T) {
	f := newFixture(t)
	event := events.PayrollComputedEvent{PayrollID: f.payroll.ID.String()}

	require.NoError(t, f.svc.HandlePayrollComputed(context.Background(), event))
	require.NoError(t, f.svc.HandlePayrollComputed(context.Background(), event))

	require.Len(t, f.repo.rows, 1)
	for _, r := range f.repo.rows {
		assert.False(t, r.Status)
		assert.True(t, r.IsProtected)
		assert.Equal(t, f.payroll.UserID, r.UserID)
	}
}

func TestService_EmployeeDownload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return first }

	require.NoError(t, f.svc.HandlePayrollComputed(ctx, events.PayrollComputedEvent{PayrollID: f.payroll.ID.String()}))
	var slipID string
	for id := range f.repo.rows {
		slipID = id.String()
	}

	owner := Viewer{UserID: f.payroll.UserID.String()}
	_, _, err := f.svc.Download(ctx, owner, slipID)
	assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotApproved)

	list, err := f.svc.List(ctx, owner, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, _, err = f.svc.Download(ctx, Viewer{UserID: uuid.NewString()}, slipID)
	assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)

	approved, err := f.svc.Approve(ctx, slipID)
	require.NoError(t, err)
	assert.True(t, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	pdf, filename, err := f.svc.Download(ctx, owner, slipID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4")))
	assert.Contains(t, string(pdf), "9000.00")
	assert.Equal(t, "payslip-2025-04-15-"+slipID[:8]+".pdf", filename)

	f.svc.now = func() time.Time { return first.Add(time.Hour) }
	_, _, err = f.svc.Download(ctx, owner, slipID)
	require.NoError(t, err)

	list, err = f.svc.List(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EmployeeGeneratedAt)
	assert.Equal(t, first.Format(time.RFC3339), *list[0].EmployeeGeneratedAt)
	assert.Nil(t, list[0].GeneratedAt)
}
