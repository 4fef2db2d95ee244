package biometric

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	biometricerrors "go-payroll/internal/biometric/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/kafkatest"
	"go-payroll/internal/shared/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	insertIfAbsentFn func(ctx context.Context, p *Punch) (bool, error)
	deleteBetweenFn  func(ctx context.Context, from, to time.Time) (int64, error)
	deleteUnmappedFn func(ctx context.Context) (int64, error)
}

func (f *fakeRepo) WithTx(*gorm.DB) Repository { return f }
func (f *fakeRepo) InsertIfAbsent(ctx context.Context, p *Punch) (bool, error) {
	return f.insertIfAbsentFn(ctx, p)
}
func (f *fakeRepo) DeleteBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return f.deleteBetweenFn(ctx, from, to)
}
func (f *fakeRepo) DeleteUnmapped(ctx context.Context) (int64, error) { return f.deleteUnmappedFn(ctx) }

// dedupeRepo behaves like the unique (emp_id, punched_at) index.
func dedupeRepo(stored *[]Punch) *fakeRepo {
	seen := map[string]bool{}
	return &fakeRepo{
		insertIfAbsentFn: func(_ context.Context, p *Punch) (bool, error) {
			key := fmt.Sprintf("%d|%s", p.EmpID, p.PunchedAt.Format(time.RFC3339Nano))
			if seen[key] {
				return false, nil
			}
			seen[key] = true
			*stored = append(*stored, *p)
			return true, nil
		},
	}
}

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return loc
}

func TestService_Record_SkipsDuplicates(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	outbox := &kafkatest.Outbox{}
	var stored []Punch
	svc := NewService(db, dedupeRepo(&stored), outbox, time.UTC, zap.NewNop())

	at := time.Date(2025, 4, 7, 1, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.Record(context.Background(), []PunchRequest{
		{EmpID: 101, Time: at},
		{EmpID: 101, Time: at},
		{EmpID: 101, Time: at.Add(9 * time.Hour)},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, RecordResult{Received: 3, Inserted: 2, Duplicates: 1}, res)
	assert.Len(t, stored, 2)
	require.Equal(t, []string{events.PunchRecordedTopic, events.PunchRecordedTopic}, outbox.Topics())
	assert.Equal(t, "emp:101", outbox.Events[0].Key())

	var evt events.PunchRecordedEvent
	require.NoError(t, outbox.Decode(0, &evt))
	assert.Equal(t, 101, evt.EmpID)
	assert.True(t, evt.PunchedAt.Equal(at))
}

func TestService_Record_Empty(t *testing.T) {
	db, _ := testutil.NewMockGorm(t)
	svc := NewService(db, &fakeRepo{}, &kafkatest.Outbox{}, time.UTC, zap.NewNop())

	_, err := svc.Record(context.Background(), nil)
	assert.ErrorIs(t, err, biometricerrors.ErrEmptyImport)
}

func TestService_ImportCSV_ReadsLocalTime(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	var stored []Punch
	svc := NewService(db, dedupeRepo(&stored), &kafkatest.Outbox{}, manila(t), zap.NewNop())

	csv := "emp_id,name,time,work_code,work_state,terminal_name\n" +
		"101,Juan Dela Cruz,2025-04-07 09:00:00,0,Check-in,Lobby\n" +
		"101,Juan Dela Cruz,2025-04-07 18:00:00,0,Check-out,Lobby\n"

	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	require.Len(t, stored, 2)
	assert.Equal(t, time.Date(2025, 4, 7, 1, 0, 0, 0, time.UTC), stored[0].PunchedAt)
	assert.Equal(t, "Lobby", stored[0].TerminalName)
}

func TestService_ImportCSV_RejectsBadTime(t *testing.T) {
	db, _ := testutil.NewMockGorm(t)
	svc := NewService(db, &fakeRepo{}, &kafkatest.Outbox{}, time.UTC, zap.NewNop())

	csv := "emp_id,name,time,work_code,work_state,terminal_name\n101,Juan,yesterday,0,In,Lobby\n"
	_, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	assert.ErrorIs(t, err, biometricerrors.ErrInvalidCSV)
}

func TestService_PurgeByDate_UsesLocalDay(t *testing.T) {
	db, _ := testutil.NewMockGorm(t)
	loc := manila(t)

	var gotFrom, gotTo time.Time
	repo := &fakeRepo{
		deleteBetweenFn: func(_ context.Context, from, to time.Time) (int64, error) {
			gotFrom, gotTo = from, to
			return 4, nil
		},
	}
	svc := NewService(db, repo, &kafkatest.Outbox{}, loc, zap.NewNop())

	res, err := svc.PurgeByDate(context.Background(), "2025-04-07")
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Deleted)
	assert.True(t, gotFrom.Equal(time.Date(2025, 4, 6, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24*time.Hour, gotTo.Sub(gotFrom))

	_, err = svc.PurgeByDate(context.Background(), "07-04-2025")
	assert.ErrorIs(t, err, biometricerrors.ErrInvalidDate)
}
