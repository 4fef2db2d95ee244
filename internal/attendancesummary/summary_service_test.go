package attendancesummary

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/kafkatest"
	"go-payroll/internal/pipeline"
	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/datex"
	"go-payroll/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type memRepo struct {
	rows map[string]*AttendanceSummary
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]*AttendanceSummary{}} }

func (m *memRepo) WithTx(*gorm.DB) Repository { return m }

func (m *memRepo) Upsert(_ context.Context, s *AttendanceSummary) error {
	k := s.UserID.String() + datex.Format(s.BiweekStart)
	if existing, ok := m.rows[k]; ok {
		id := existing.ID
		*existing = *s
		existing.ID = id
		return nil
	}
	row := *s
	m.rows[k] = &row
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*AttendanceSummary, error) {
	for _, r := range m.rows {
		if r.ID == id {
			out := *r
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) FindByUserAndStart(_ context.Context, userID uuid.UUID, start time.Time) (*AttendanceSummary, error) {
	r, ok := m.rows[userID.String()+datex.Format(start)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r
	return &out, nil
}

func (m *memRepo) FindByUser(context.Context, uuid.UUID) ([]AttendanceSummary, error) { return nil, nil }
func (m *memRepo) List(context.Context, *uuid.UUID) ([]AttendanceSummary, error)      { return nil, nil }

type fakeAttendances struct {
	rows []attendance.Attendance
}

func (f *fakeAttendances) FindByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*attendance.Attendance, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].AttendanceDate.Equal(date) {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendances) FindInRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.rows {
		if r.UserID == userID && !r.AttendanceDate.Before(from) && r.AttendanceDate.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeResolver applies the real ownership rule over a fixed schedule set.
type fakeResolver struct {
	schedules []schedule.Schedule
}

func (f *fakeResolver) ResolveSchedule(_ context.Context, userID uuid.UUID, date time.Time) (*schedule.Schedule, bool, error) {
	var covering []schedule.Schedule
	for _, s := range f.schedules {
		if s.UserID == userID && s.Covers(date) {
			covering = append(covering, s)
		}
	}
	s, ok := schedule.Owner(covering)
	return s, ok, nil
}

func (f *fakeResolver) ResolveShift(ctx context.Context, userID uuid.UUID, date time.Time) (*schedule.Shift, bool, error) {
	s, ok, _ := f.ResolveSchedule(ctx, userID, date)
	if !ok {
		return nil, false, nil
	}
	shift, ok := s.ShiftOn(date)
	return shift, ok, nil
}

func (f *fakeResolver) ScheduleByWindow(context.Context, uuid.UUID, time.Time) (*schedule.Schedule, bool, error) {
	return nil, false, nil
}

func (f *fakeResolver) LatestEndingBefore(context.Context, uuid.UUID, time.Time) (*schedule.Schedule, bool, error) {
	return nil, false, nil
}

func (f *fakeResolver) ScheduleByID(_ context.Context, id uuid.UUID) (*schedule.Schedule, bool, error) {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			return &f.schedules[i], true, nil
		}
	}
	return nil, false, nil
}

func shiftsFor(t *testing.T, dates ...time.Time) []schedule.Shift {
	t.Helper()
	out := make([]schedule.Shift, 0, len(dates))
	for _, d := range dates {
		s, err := schedule.NewShift(d, "09:00", "18:00")
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func day(userID uuid.UUID, d, inH, inM, outH, outM int) attendance.Attendance {
	return attendance.Attendance{
		ID:             uuid.New(),
		UserID:         userID,
		AttendanceDate: datex.Date(2025, 4, d),
		CheckIn:        time.Date(2025, 4, d, inH, inM, 0, 0, time.UTC),
		CheckOut:       time.Date(2025, 4, d, outH, outM, 0, 0, time.UTC),
	}
}

func TestService_HandleAttendanceSaved_RecomputesWindow(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	outbox := &kafkatest.Outbox{}
	userID := uuid.New()

	sch := schedule.Schedule{
		ID:                 uuid.New(),
		UserID:             userID,
		PayrollPeriodStart: datex.Date(2025, 4, 1),
		PayrollPeriodEnd:   datex.Date(2025, 4, 15),
		Shifts:             shiftsFor(t, datex.Date(2025, 4, 7), datex.Date(2025, 4, 8)),
	}
	atts := &fakeAttendances{rows: []attendance.Attendance{
		day(userID, 7, 9, 0, 18, 0),
		day(userID, 8, 9, 30, 17, 0),
	}}
	repo := newMemRepo()
	svc := NewService(db, repo, atts, &fakeResolver{schedules: []schedule.Schedule{sch}}, outbox, time.UTC, zap.NewNop())

	event := events.AttendanceSavedEvent{UserID: userID.String(), AttendanceDate: "2025-04-08"}
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	require.NoError(t, svc.HandleAttendanceSaved(context.Background(), event))
	first, err := repo.FindByUserAndStart(context.Background(), userID, datex.Date(2025, 4, 1))
	require.NoError(t, err)

	require.NoError(t, svc.HandleAttendanceSaved(context.Background(), event))
	second, err := repo.FindByUserAndStart(context.Background(), userID, datex.Date(2025, 4, 1))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// 480 + 390 worked, 30 late, 90 undertime
	assert.Equal(t, 14, second.ActualHours)
	assert.Equal(t, 30, second.LateMinutes)
	assert.Equal(t, 1, second.UndertimeHours)
	assert.Equal(t, 0, second.OvertimeHours)
	assert.Len(t, repo.rows, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ActualHours, second.ActualHours)

	require.Equal(t, []string{events.AttendanceSummarySavedTopic, events.AttendanceSummarySavedTopic}, outbox.Topics())
	var evt events.AttendanceSummarySavedEvent
	require.NoError(t, outbox.Decode(0, &evt))
	assert.Equal(t, "2025-04-01", evt.BiweekStart)
	assert.Equal(t, second.ID.String(), evt.SummaryID)
}

func TestService_HandleAttendanceSaved_NineToFiveAgainstEightHourShift(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	userID := uuid.New()

	shift := schedule.Shift{ID: uuid.New(), ShiftDate: datex.Date(2025, 4, 7), StartTime: "09:00", EndTime: "17:00", ExpectedHours: 8}
	sch := schedule.Schedule{
		ID: uuid.New(), UserID: userID,
		PayrollPeriodStart: datex.Date(2025, 4, 1), PayrollPeriodEnd: datex.Date(2025, 4, 15),
		Shifts: []schedule.Shift{shift},
	}
	atts := &fakeAttendances{rows: []attendance.Attendance{day(userID, 7, 9, 0, 17, 0)}}
	repo := newMemRepo()
	svc := NewService(db, repo, atts, &fakeResolver{schedules: []schedule.Schedule{sch}}, &kafkatest.Outbox{}, time.UTC, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, svc.HandleAttendanceSaved(context.Background(), events.AttendanceSavedEvent{
		UserID: userID.String(), AttendanceDate: "2025-04-07",
	}))

	got, err := repo.FindByUserAndStart(context.Background(), userID, datex.Date(2025, 4, 1))
	require.NoError(t, err)
	// 480 - 60 break = 420 worked against 480 expected
	assert.Equal(t, 7, got.ActualHours)
	assert.Equal(t, 0, got.LateMinutes)
	assert.Equal(t, 0, got.OvertimeHours)
	assert.Equal(t, 1, got.UndertimeHours)
}

func TestService_RecomputeWindow_SkipsRowsOwnedElsewhere(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	userID := uuid.New()

	a := schedule.Schedule{
		ID: uuid.New(), UserID: userID,
		PayrollPeriodStart: datex.Date(2025, 4, 1), PayrollPeriodEnd: datex.Date(2025, 4, 15),
		Shifts: shiftsFor(t, datex.Date(2025, 4, 7), datex.Date(2025, 4, 12)),
	}
	b := schedule.Schedule{
		ID: uuid.New(), UserID: userID,
		PayrollPeriodStart: datex.Date(2025, 4, 10), PayrollPeriodEnd: datex.Date(2025, 4, 20),
		Shifts: shiftsFor(t, datex.Date(2025, 4, 12)),
	}
	atts := &fakeAttendances{rows: []attendance.Attendance{
		day(userID, 7, 9, 0, 18, 0),
		day(userID, 12, 9, 0, 18, 0),
	}}
	repo := newMemRepo()
	svc := NewService(db, repo, atts, &fakeResolver{schedules: []schedule.Schedule{a, b}}, &kafkatest.Outbox{}, time.UTC, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()
	got, err := svc.RecomputeWindow(context.Background(), a, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.ActualHours)
}

func TestService_RecomputeWindow_SixteenDayPeriodStopsAtFifteenDays(t *testing.T) {
	db, mock := testutil.NewMockGorm(t)
	userID := uuid.New()

	sch := schedule.Schedule{
		ID: uuid.New(), UserID: userID,
		PayrollPeriodStart: datex.Date(2025, 3, 16), PayrollPeriodEnd: datex.Date(2025, 3, 31),
		Shifts: shiftsFor(t, datex.Date(2025, 3, 30), datex.Date(2025, 3, 31)),
	}
	worked := func(d int) attendance.Attendance {
		return attendance.Attendance{
			ID: uuid.New(), UserID: userID,
			AttendanceDate: datex.Date(2025, 3, d),
			CheckIn:        time.Date(2025, 3, d, 9, 0, 0, 0, time.UTC),
			CheckOut:       time.Date(2025, 3, d, 18, 0, 0, 0, time.UTC),
		}
	}
	atts := &fakeAttendances{rows: []attendance.Attendance{worked(30), worked(31)}}
	svc := NewService(db, newMemRepo(), atts, &fakeResolver{schedules: []schedule.Schedule{sch}}, &kafkatest.Outbox{}, time.UTC, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()
	got, err := svc.RecomputeWindow(context.Background(), sch, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.ActualHours, "the 31st falls outside [16th, 31st)")
}

func TestService_HandleAttendanceSaved_Skips(t *testing.T) {
	db, _ := testutil.NewMockGorm(t)
	userID := uuid.New()
	openDay := day(userID, 7, 9, 0, 9, 0)
	atts := &fakeAttendances{rows: []attendance.Attendance{openDay, day(userID, 8, 9, 0, 18, 0)}}

	sch := schedule.Schedule{
		ID: uuid.New(), UserID: userID,
		PayrollPeriodStart: datex.Date(2025, 4, 1), PayrollPeriodEnd: datex.Date(2025, 4, 15),
	}
	outbox := &kafkatest.Outbox{}
	svc := NewService(db, newMemRepo(), atts, &fakeResolver{schedules: []schedule.Schedule{sch}}, outbox, time.UTC, zap.NewNop())
	ctx := context.Background()

	err := svc.HandleAttendanceSaved(ctx, events.AttendanceSavedEvent{UserID: userID.String(), AttendanceDate: "2025-04-07"})
	assert.True(t, pipeline.IsSkipped(err), "single punch day")

	err = svc.HandleAttendanceSaved(ctx, events.AttendanceSavedEvent{UserID: userID.String(), AttendanceDate: "2025-04-08"})
	assert.True(t, pipeline.IsSkipped(err), "no shift")

	err = svc.HandleAttendanceSaved(ctx, events.AttendanceSavedEvent{UserID: userID.String(), AttendanceDate: "2025-05-08"})
	assert.True(t, pipeline.IsSkipped(err), "no attendance")

	err = svc.HandleAttendanceSaved(ctx, events.AttendanceSavedEvent{UserID: "nope", AttendanceDate: "2025-04-08"})
	assert.True(t, pipeline.IsPermanent(err))

	assert.Empty(t, outbox.Events)
}
