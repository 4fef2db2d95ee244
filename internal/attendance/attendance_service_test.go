package attendance

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/kafkatest"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/shared/datex"
	"go-payroll/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memRepo applies the same check-out rule as the upsert statement.
type memRepo struct {
	rows map[string]*Attendance
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]*Attendance{}} }

func key(userID uuid.UUID, date time.Time) string { return userID.String() + datex.Format(date) }

func (m *memRepo) WithTx(*gorm.DB) Repository { return m }

func (m *memRepo) Upsert(_ context.Context, a *Attendance) (bool, error) {
	k := key(a.UserID, a.AttendanceDate)
	existing, ok := m.rows[k]
	if !ok {
		row := *a
		m.rows[k] = &row
		return true, nil
	}
	if a.CheckOut.After(existing.CheckOut) {
		existing.CheckOut = a.CheckOut
		return true, nil
	}
	return false, nil
}

func (m *memRepo) FindByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*Attendance, error) {
	row, ok := m.rows[key(userID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *row
	return &out, nil
}

func (m *memRepo) FindInRange(context.Context, uuid.UUID, time.Time, time.Time) ([]Attendance, error) {
	return nil, nil
}

func (m *memRepo) List(context.Context, *uuid.UUID, *time.Time, *time.Time) ([]Attendance, error) {
	out := make([]Attendance, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, *r)
	}
	return out, nil
}

type fakeDirectory struct {
	resolveUserFn func(ctx context.Context, employeeNumber int) (uuid.UUID, error)
}

func (f *fakeDirectory) ResolveUser(ctx context.Context, n int) (uuid.UUID, error) {
	return f.resolveUserFn(ctx, n)
}
func (f *fakeDirectory) EmploymentInfo(context.Context, uuid.UUID) (*employee.EmploymentInfo, error) {
	return nil, nil
}
func (f *fakeDirectory) ListActiveUserIDs(context.Context) ([]uuid.UUID, error) { return nil, nil }

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return loc
}

func punch(at time.Time) events.PunchRecordedEvent {
	return events.PunchRecordedEvent{PunchID: uuid.NewString(), EmpID: 101, PunchedAt: at}
}

func TestService_HandlePunch_MonotonicCheckOut(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	outbox := &kafkatest.Outbox{}
	repo := newMemRepo()
	userID := uuid.New()
	dir := &fakeDirectory{resolveUserFn: func(context.Context, int) (uuid.UUID, error) { return userID, nil }}
	loc := manila(t)
	svc := NewService(db, repo, dir, outbox, loc, zap.NewNop())
	ctx := context.Background()

	checkIn := time.Date(2025, 4, 7, 9, 0, 0, 0, loc)
	checkOut := time.Date(2025, 4, 7, 18, 0, 0, 0, loc)
	stale := time.Date(2025, 4, 7, 12, 0, 0, 0, loc)

	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	require.NoError(t, svc.HandlePunch(ctx, punch(checkIn)))
	require.NoError(t, svc.HandlePunch(ctx, punch(checkOut)))
	require.NoError(t, svc.HandlePunch(ctx, punch(stale)))
	assert.NoError(t, mock.ExpectationsWereMet())

	row, err := repo.FindByUserAndDate(ctx, userID, datex.Date(2025, 4, 7))
	require.NoError(t, err)
	assert.True(t, row.CheckIn.Equal(checkIn))
	assert.True(t, row.CheckOut.Equal(checkOut))
	assert.Equal(t, StatusPresent, row.Status)
	assert.Len(t, repo.rows, 1)

	// the stale punch wrote nothing and published nothing
	require.Equal(t, []string{events.AttendanceSavedTopic, events.AttendanceSavedTopic}, outbox.Topics())
	assert.Equal(t, userID.String(), outbox.Events[0].Key())

	var evt events.AttendanceSavedEvent
	require.NoError(t, outbox.Decode(1, &evt))
	assert.Equal(t, "2025-04-07", evt.AttendanceDate)
	assert.Equal(t, userID.String(), evt.UserID)
}

func TestService_HandlePunch_LocalDate(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	repo := newMemRepo()
	userID := uuid.New()
	dir := &fakeDirectory{resolveUserFn: func(context.Context, int) (uuid.UUID, error) { return userID, nil }}
	svc := NewService(db, repo, dir, &kafkatest.Outbox{}, manila(t), zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()
	// 16:30 UTC is 00:30 the next day in Manila
	require.NoError(t, svc.HandlePunch(context.Background(), punch(time.Date(2025, 4, 6, 16, 30, 0, 0, time.UTC))))

	_, err := repo.FindByUserAndDate(context.Background(), userID, datex.Date(2025, 4, 7))
	assert.NoError(t, err)
}

func TestService_HandlePunch_UnmappedIsPermanent(t *testing.T) {
	db, _ := testutil.NewMockGorm(t)
	outbox := &kafkatest.Outbox{}
	dir := &fakeDirectory{resolveUserFn: func(context.Context, int) (uuid.UUID, error) {
		return uuid.Nil, employeeerrors.ErrUserNotMapped
	}}
	svc := NewService(db, newMemRepo(), dir, outbox, time.UTC, zap.NewNop())

	err := svc.HandlePunch(context.Background(), punch(time.Now()))
	assert.True(t, pipeline.IsPermanent(err))
	assert.ErrorIs(t, err, employeeerrors.ErrUserNotMapped)
	assert.Empty(t, outbox.Events)

	err = svc.HandlePunch(context.Background(), events.PunchRecordedEvent{EmpID: 101})
	assert.True(t, pipeline.IsPermanent(err))
}
