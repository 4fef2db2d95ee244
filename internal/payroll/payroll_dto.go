package payroll

import "github.com/shopspring/decimal"

type ListPayrollsFilter struct {
	UserID string `form:"user_id"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type TotalsFilter struct {
	Date string `form:"date"`
}

type PayrollResponse struct {
	ID               string          `json:"id"`
	SalaryID         string          `json:"salary_id"`
	UserID           string          `json:"user_id"`
	PayDate          string          `json:"pay_date"`
	ScheduleID       *string         `json:"schedule_id"`
	EmploymentInfoID *string         `json:"employment_info_id"`
	GrossPay         decimal.Decimal `json:"gross_pay"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetPay           decimal.Decimal `json:"net_pay"`
}

// TotalsResponse leaves a side nil when no pay date exists on it.
type TotalsResponse struct {
	AsOf            string           `json:"as_of"`
	PreviousPayDate *string          `json:"previous_pay_date"`
	PreviousPayroll *decimal.Decimal `json:"previous_payroll"`
	UpcomingPayDate *string          `json:"upcoming_pay_date"`
	UpcomingPayroll *decimal.Decimal `json:"upcoming_payroll"`
}
