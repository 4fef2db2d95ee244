package attendancesummary

import (
	"testing"
	"time"

	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/datex"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 4, day, hour, minute, 0, 0, time.UTC)
}

func TestWorkedMinutes(t *testing.T) {
	tests := []struct {
		name     string
		in, out  time.Time
		expected int
		ok       bool
	}{
		{name: "nine hour day", in: at(7, 9, 0), out: at(7, 18, 0), expected: 480, ok: true},
		{name: "break floors at zero", in: at(7, 9, 0), out: at(7, 9, 40), expected: 0, ok: true},
		{name: "seconds ignored", in: at(7, 9, 0).Add(59 * time.Second), out: at(7, 10, 30), expected: 30, ok: true},
		{name: "equal punches invalid", in: at(7, 9, 0), out: at(7, 9, 0), ok: false},
		{name: "missing check-out invalid", in: at(7, 9, 0), out: time.Time{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WorkedMinutes(tt.in, tt.out, time.UTC)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifyDay(t *testing.T) {
	shift, err := schedule.NewShift(datex.Date(2025, 4, 7), "09:00", "18:00")
	require.NoError(t, err)
	require.Equal(t, 8, shift.ExpectedHours)

	sch := schedule.Schedule{
		SpecialHolidays: pq.StringArray{"2025-04-08"},
		RegularHolidays: pq.StringArray{"2025-04-08", "2025-04-09"},
	}

	t.Run("ordinary day", func(t *testing.T) {
		day, ok := ClassifyDay(datex.Date(2025, 4, 7), at(7, 9, 0), at(7, 18, 0), shift, sch, time.UTC)
		require.True(t, ok)
		assert.Equal(t, DayTotals{Worked: 480}, day)
	})

	t.Run("late with undertime", func(t *testing.T) {
		day, ok := ClassifyDay(datex.Date(2025, 4, 7), at(7, 9, 25), at(7, 17, 0), shift, sch, time.UTC)
		require.True(t, ok)
		assert.Equal(t, DayTotals{Worked: 395, Late: 25, Undertime: 85}, day)
	})

	t.Run("overtime", func(t *testing.T) {
		day, ok := ClassifyDay(datex.Date(2025, 4, 7), at(7, 8, 30), at(7, 20, 0), shift, sch, time.UTC)
		require.True(t, ok)
		assert.Equal(t, DayTotals{Worked: 630, Overtime: 150}, day)
	})

	t.Run("special checked before regular", func(t *testing.T) {
		day, ok := ClassifyDay(datex.Date(2025, 4, 8), at(8, 10, 0), at(8, 18, 0), shift, sch, time.UTC)
		require.True(t, ok)
		assert.Equal(t, DayTotals{Special: 420}, day)
	})

	t.Run("regular holiday zeroes everything else", func(t *testing.T) {
		day, ok := ClassifyDay(datex.Date(2025, 4, 9), at(9, 11, 0), at(9, 15, 0), shift, sch, time.UTC)
		require.True(t, ok)
		assert.Equal(t, DayTotals{Regular: 180}, day)
	})
}

func TestTotals_Apply_FloorsHours(t *testing.T) {
	var totals Totals
	totals.Add(DayTotals{Worked: 420, Late: 25, Undertime: 60})
	totals.Add(DayTotals{Worked: 479, Overtime: 59, Special: 119})

	var s AttendanceSummary
	totals.Apply(&s)

	assert.Equal(t, 14, s.ActualHours)
	assert.Equal(t, 0, s.OvertimeHours)
	assert.Equal(t, 25, s.LateMinutes)
	assert.Equal(t, 1, s.UndertimeHours)
	assert.Equal(t, 1, s.SpecialHolidayHours)
	assert.Equal(t, 2, totals.Days)
}

func TestWindow(t *testing.T) {
	start, end := Window(schedule.Schedule{PayrollPeriodStart: datex.Date(2025, 4, 1), PayrollPeriodEnd: datex.Date(2025, 4, 15)})
	assert.Equal(t, datex.Date(2025, 4, 1), start)
	assert.Equal(t, datex.Date(2025, 4, 16), end)

	_, end = Window(schedule.Schedule{PayrollPeriodStart: datex.Date(2025, 3, 16), PayrollPeriodEnd: datex.Date(2025, 3, 31)})
	assert.Equal(t, datex.Date(2025, 3, 31), end)

	_, end = Window(schedule.Schedule{PayrollPeriodStart: datex.Date(2025, 2, 16), PayrollPeriodEnd: datex.Date(2025, 2, 28)})
	assert.Equal(t, datex.Date(2025, 3, 3), end)
}
