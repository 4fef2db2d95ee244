package schedule

import (
	"fmt"
	"time"

	"go-payroll/internal/shared/datex"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Shift is the working time of one date. ExpectedHours is derived once at
// creation; a changed shift is a new row.
type Shift struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftDate     time.Time `gorm:"type:date;not null;index"`
	StartTime     string    `gorm:"type:varchar(5);not null"`
	EndTime       string    `gorm:"type:varchar(5);not null"`
	ExpectedHours int       `gorm:"not null"`
	CreatedAt     time.Time
}

// StartMinute is the shift start in minutes after midnight.
func (s Shift) StartMinute() int {
	m, _ := datex.ParseClock(s.StartTime)
	return m
}

// NewShift builds a shift for date from "HH:MM" times. The expected
// duration is the whole hours between start and end less a one hour break,
// never negative.
func NewShift(date time.Time, start, end string) (Shift, error) {
	startMin, err := datex.ParseClock(start)
	if err != nil {
		return Shift{}, err
	}
	endMin, err := datex.ParseClock(end)
	if err != nil {
		return Shift{}, err
	}
	if endMin <= startMin {
		return Shift{}, fmt.Errorf("shift end %s is not after start %s", end, start)
	}

	expected := (endMin-startMin)/60 - 1
	if expected < 0 {
		expected = 0
	}

	return Shift{
		ID:            uuid.New(),
		ShiftDate:     datex.Normalize(date),
		StartTime:     formatClock(startMin),
		EndTime:       formatClock(endMin),
		ExpectedHours: expected,
	}, nil
}

func formatClock(minutes int) string {
	return datex.Date(2000, time.January, 1).Add(time.Duration(minutes) * time.Minute).Format("15:04")
}

// Schedule is one user's payroll window. The holiday arrays cache the
// calendar entries inside the window and are only written by holiday sync.
type Schedule struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_user_period;index"`
	PayrollPeriodStart time.Time      `gorm:"type:date;not null;uniqueIndex:uq_schedule_user_period"`
	PayrollPeriodEnd   time.Time      `gorm:"type:date;not null;uniqueIndex:uq_schedule_user_period"`
	Days               pq.StringArray `gorm:"type:text[]"`
	RegularHolidays    pq.StringArray `gorm:"type:text[]"`
	SpecialHolidays    pq.StringArray `gorm:"type:text[]"`
	NightDiffDates     pq.StringArray `gorm:"type:text[]"`
	RestDay            *int
	Hours              int     `gorm:"not null;default:0"`
	Shifts             []Shift `gorm:"many2many:schedule_shifts"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (s Schedule) Covers(d time.Time) bool {
	return datex.Within(d, s.PayrollPeriodStart, s.PayrollPeriodEnd)
}

func (s Schedule) IsRegularHoliday(d time.Time) bool {
	return containsDate(s.RegularHolidays, d)
}

func (s Schedule) IsSpecialHoliday(d time.Time) bool {
	return containsDate(s.SpecialHolidays, d)
}

// ShiftOn returns the shift whose date equals d. When several are linked,
// the most recently created one wins.
func (s Schedule) ShiftOn(d time.Time) (*Shift, bool) {
	d = datex.Normalize(d)
	var found *Shift
	for i := range s.Shifts {
		if !datex.Normalize(s.Shifts[i].ShiftDate).Equal(d) {
			continue
		}
		if found == nil || !s.Shifts[i].CreatedAt.Before(found.CreatedAt) {
			found = &s.Shifts[i]
		}
	}
	return found, found != nil
}

// NightDiffHours credits eight hours per night differential date.
func (s Schedule) NightDiffHours() int {
	return 8 * len(s.NightDiffDates)
}

func (s Schedule) RestDayHours() int {
	if s.RestDay == nil {
		return 0
	}
	return *s.RestDay
}

func containsDate(dates pq.StringArray, d time.Time) bool {
	key := datex.Format(d)
	for _, v := range dates {
		if v == key {
			return true
		}
	}
	return false
}

// Owner picks the schedule owning a date among those covering it: the latest
// payroll_period_start wins, then the latest end, then the greater id.
func Owner(schedules []Schedule) (*Schedule, bool) {
	if len(schedules) == 0 {
		return nil, false
	}
	best := 0
	for i := 1; i < len(schedules); i++ {
		if ownsOver(schedules[i], schedules[best]) {
			best = i
		}
	}
	return &schedules[best], true
}

func ownsOver(a, b Schedule) bool {
	if !a.PayrollPeriodStart.Equal(b.PayrollPeriodStart) {
		return a.PayrollPeriodStart.After(b.PayrollPeriodStart)
	}
	if !a.PayrollPeriodEnd.Equal(b.PayrollPeriodEnd) {
		return a.PayrollPeriodEnd.After(b.PayrollPeriodEnd)
	}
	return a.ID.String() > b.ID.String()
}
