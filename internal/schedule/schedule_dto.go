package schedule

type ListSchedulesFilter struct {
	UserID string `form:"user_id"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type AddShiftRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateFlagsRequest struct {
	NightDiffDates []string `json:"night_diff_dates"`
	RestDay        *int     `json:"rest_day" binding:"omitempty,min=0"`
	Days           []string `json:"days"`
	Hours          *int     `json:"hours" binding:"omitempty,min=0"`
}

type ShiftResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	ExpectedHours int    `json:"expected_hours"`
}

type ScheduleResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	PayrollPeriodStart string          `json:"payroll_period_start"`
	PayrollPeriodEnd   string          `json:"payroll_period_end"`
	Days               []string        `json:"days"`
	RegularHolidays    []string        `json:"regular_holidays"`
	SpecialHolidays    []string        `json:"special_holidays"`
	NightDiffDates     []string        `json:"night_diff_dates"`
	RestDay            *int            `json:"rest_day"`
	Hours              int             `json:"hours"`
	Shifts             []ShiftResponse `json:"shifts"`
}
