package attendancesummary

import (
	"time"

	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/datex"
)

const (
	breakMinutes = 60
	windowDays   = 15
)

// WorkedMinutes is the clock difference between check-in and check-out less
// the break, floored at zero. ok is false for a missing or zero-length day.
func WorkedMinutes(checkIn, checkOut time.Time, loc *time.Location) (minutes int, ok bool) {
	if checkIn.IsZero() || checkOut.IsZero() || checkIn.Equal(checkOut) {
		return 0, false
	}
	total := datex.MinuteOfDay(checkOut, loc) - datex.MinuteOfDay(checkIn, loc)
	return max(0, total-breakMinutes), true
}

// DayTotals are the minutes one attendance day contributes.
type DayTotals struct {
	Worked    int
	Late      int
	Overtime  int
	Undertime int
	Special   int
	Regular   int
}

// ClassifyDay splits a day's worked minutes. On a holiday of sch the whole
// day goes to the holiday bucket, special before regular, and nothing else
// accrues.
func ClassifyDay(
	date, checkIn, checkOut time.Time,
	shift schedule.Shift,
	sch schedule.Schedule,
	loc *time.Location,
) (DayTotals, bool) {
	worked, ok := WorkedMinutes(checkIn, checkOut, loc)
	if !ok {
		return DayTotals{}, false
	}

	switch {
	case sch.IsSpecialHoliday(date):
		return DayTotals{Special: worked}, true
	case sch.IsRegularHoliday(date):
		return DayTotals{Regular: worked}, true
	}

	expected := shift.ExpectedHours * 60
	return DayTotals{
		Worked:    worked,
		Late:      max(0, datex.MinuteOfDay(checkIn, loc)-shift.StartMinute()),
		Overtime:  max(0, worked-expected),
		Undertime: max(0, expected-worked),
	}, true
}

// Totals accumulates a window in minutes.
type Totals struct {
	DayTotals
	Days int
}

func (t *Totals) Add(d DayTotals) {
	t.Worked += d.Worked
	t.Late += d.Late
	t.Overtime += d.Overtime
	t.Undertime += d.Undertime
	t.Special += d.Special
	t.Regular += d.Regular
	t.Days++
}

// Apply writes t into s as whole hours; late stays in minutes.
func (t Totals) Apply(s *AttendanceSummary) {
	s.ActualHours = t.Worked / 60
	s.OvertimeHours = t.Overtime / 60
	s.LateMinutes = t.Late
	s.UndertimeHours = t.Undertime / 60
	s.SpecialHolidayHours = t.Special / 60
	s.RegularHolidayHours = t.Regular / 60
}

// Window is the half-open date range [start, start+15d) summarized for sch,
// whatever the length of its payroll period.
func Window(sch schedule.Schedule) (start, end time.Time) {
	start = datex.Normalize(sch.PayrollPeriodStart)
	return start, start.AddDate(0, 0, windowDays)
}
