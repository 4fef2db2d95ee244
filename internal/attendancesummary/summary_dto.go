package attendancesummary

type ListSummariesFilter struct {
	UserID string `form:"user_id"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type SummaryResponse struct {
	ID                  string `json:"id"`
	UserID              string `json:"user_id"`
	BiweekStart         string `json:"biweek_start"`
	ActualHours         int    `json:"actual_hours"`
	OvertimeHours       int    `json:"overtime_hours"`
	LateMinutes         int    `json:"late_minutes"`
	UndertimeHours      int    `json:"undertime_hours"`
	SpecialHolidayHours int    `json:"special_holiday_hours"`
	RegularHolidayHours int    `json:"regular_holiday_hours"`
}
