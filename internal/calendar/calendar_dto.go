package calendar

type CreateHolidayRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Date        string  `json:"date" binding:"required"`
	HolidayType string  `json:"holiday_type" binding:"required,oneof=regular special"`
	Description *string `json:"description"`
}

type ListHolidaysFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	HolidayType string  `json:"holiday_type"`
	Description *string `json:"description,omitempty"`
}

type CreatePayrollPeriodRequest struct {
	PeriodStart string `json:"payroll_period_start" binding:"required"`
	PeriodEnd   string `json:"payroll_period_end" binding:"required"`
}

type SeedPayrollPeriodsRequest struct {
	Year int `json:"year" binding:"required,min=2000,max=2100"`
}

type PayrollPeriodResponse struct {
	ID          string `json:"id"`
	PeriodStart string `json:"payroll_period_start"`
	PeriodEnd   string `json:"payroll_period_end"`
}
