package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Salary freezes the inputs of one pay date. Nil references mean the input
// did not exist when the salary was generated; the snapshot then holds zeros.
type Salary struct {
	ID              uuid.UUID                    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:uq_salary_user_pay_date"`
	PayDate         time.Time                    `gorm:"type:date;not null;uniqueIndex:uq_salary_user_pay_date;index"`
	ScheduleID      uuid.UUID                    `gorm:"type:uuid;not null"`
	OvertimePayID   uuid.UUID                    `gorm:"type:uuid;not null"`
	OvertimeHoursID *uuid.UUID                   `gorm:"type:uuid"`
	EarningsID      *uuid.UUID                   `gorm:"type:uuid"`
	DeductionsID    *uuid.UUID                   `gorm:"type:uuid"`
	SSSID           *uuid.UUID                   `gorm:"column:sss_id;type:uuid"`
	PhilHealthID    *uuid.UUID                   `gorm:"column:philhealth_id;type:uuid"`
	PagIBIGID       *uuid.UUID                   `gorm:"column:pagibig_id;type:uuid"`
	Snapshot        datatypes.JSONType[Snapshot] `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time
}

func (Salary) TableName() string { return "salaries" }

type EarningsSnapshot struct {
	BasicRate     decimal.Decimal `json:"basic_rate"`
	Basic         decimal.Decimal `json:"basic"`
	Allowance     decimal.Decimal `json:"allowance"`
	Ntax          decimal.Decimal `json:"ntax"`
	VacationLeave decimal.Decimal `json:"vacation_leave"`
	SickLeave     decimal.Decimal `json:"sick_leave"`
}

type DeductionsSnapshot struct {
	Wtax     decimal.Decimal `json:"wtax"`
	Nowork   decimal.Decimal `json:"nowork"`
	Loan     decimal.Decimal `json:"loan"`
	Charges  decimal.Decimal `json:"charges"`
	Msfcloan decimal.Decimal `json:"msfcloan"`
}

type OvertimePaySnapshot struct {
	BiweekStart         string          `json:"biweek_start"`
	TotalRegularOT      decimal.Decimal `json:"total_regular_ot"`
	TotalRegularHoliday decimal.Decimal `json:"total_regular_holiday"`
	TotalSpecialHoliday decimal.Decimal `json:"total_special_holiday"`
	TotalRestDay        decimal.Decimal `json:"total_rest_day"`
	TotalNightDiff      decimal.Decimal `json:"total_night_diff"`
	TotalBackwage       decimal.Decimal `json:"total_backwage"`
	TotalOvertime       decimal.Decimal `json:"total_overtime"`
	TotalLate           decimal.Decimal `json:"total_late"`
	TotalUndertime      decimal.Decimal `json:"total_undertime"`
}

type OvertimeHoursSnapshot struct {
	ActualHours    int `json:"actual_hours"`
	RegularOT      int `json:"regular_ot"`
	RegularHoliday int `json:"regular_holiday"`
	SpecialHoliday int `json:"special_holiday"`
	RestDay        int `json:"rest_day"`
	NightDiff      int `json:"night_diff"`
	Late           int `json:"late"`
	Undertime      int `json:"undertime"`
}

type ContributionsSnapshot struct {
	TableVersion    string          `json:"table_version"`
	SSSEmployee     decimal.Decimal `json:"sss_employee"`
	SSSEmployer     decimal.Decimal `json:"sss_employer"`
	PhilHealthTotal decimal.Decimal `json:"philhealth_total"`
	PagIBIGEmployee decimal.Decimal `json:"pagibig_employee"`
	PagIBIGEmployer decimal.Decimal `json:"pagibig_employer"`
}

// Snapshot is the immutable copy of every input the payroll is computed from.
type Snapshot struct {
	PeriodStart   string                `json:"period_start"`
	PeriodEnd     string                `json:"period_end"`
	Earnings      EarningsSnapshot      `json:"earnings"`
	Deductions    DeductionsSnapshot    `json:"deductions"`
	OvertimePay   OvertimePaySnapshot   `json:"overtime_pay"`
	OvertimeHours OvertimeHoursSnapshot `json:"overtime_hours"`
	Contributions ContributionsSnapshot `json:"contributions"`
}
