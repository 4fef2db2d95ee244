package events

import "time"

// Topics of the derivation pipeline. Message keys are the user id, except
// calendar changes which use CalendarPartitionKey.
const (
	PunchRecordedTopic          = "payroll.biometric.punch_recorded.v1"
	AttendanceSavedTopic        = "payroll.attendance.saved.v1"
	AttendanceSummarySavedTopic = "payroll.attendance_summary.saved.v1"
	ScheduleChangedTopic        = "payroll.schedule.changed.v1"
	CalendarChangedTopic        = "payroll.calendar.changed.v1"
	EarningsSavedTopic          = "payroll.earnings.saved.v1"
	SalaryCreatedTopic          = "payroll.salary.created.v1"
	PayrollComputedTopic        = "payroll.payroll.computed.v1"

	CalendarPartitionKey = "calendar"
)

const (
	CalendarKindHoliday       = "holiday"
	CalendarKindPayrollPeriod = "payroll_period"
)

type PunchRecordedEvent struct {
	EventType  string    `json:"event_type"`
	PunchID    string    `json:"punch_id"`
	EmpID      int       `json:"emp_id"`
	PunchedAt  time.Time `json:"punched_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AttendanceSavedEvent struct {
	EventType      string    `json:"event_type"`
	AttendanceID   string    `json:"attendance_id"`
	UserID         string    `json:"user_id"`
	AttendanceDate string    `json:"attendance_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type AttendanceSummarySavedEvent struct {
	EventType   string    `json:"event_type"`
	SummaryID   string    `json:"summary_id"`
	UserID      string    `json:"user_id"`
	BiweekStart string    `json:"biweek_start"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type ScheduleChangedEvent struct {
	EventType   string    `json:"event_type"`
	ScheduleID  string    `json:"schedule_id"`
	UserID      string    `json:"user_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type CalendarChangedEvent struct {
	EventType       string    `json:"event_type"`
	Kind            string    `json:"kind"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	PayrollPeriodID string    `json:"payroll_period_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type EarningsSavedEvent struct {
	EventType  string    `json:"event_type"`
	EarningsID string    `json:"earnings_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SalaryCreatedEvent struct {
	EventType  string    `json:"event_type"`
	SalaryID   string    `json:"salary_id"`
	UserID     string    `json:"user_id"`
	PayDate    string    `json:"pay_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PayrollComputedEvent struct {
	EventType  string    `json:"event_type"`
	PayrollID  string    `json:"payroll_id"`
	SalaryID   string    `json:"salary_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
