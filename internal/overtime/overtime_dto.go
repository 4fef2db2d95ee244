package overtime

import "github.com/shopspring/decimal"

type ListFilter struct {
	UserID string `form:"user_id"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type UpsertPayRequest struct {
	UserID              string           `json:"user_id" binding:"required,uuid"`
	BiweekStart         string           `json:"biweek_start" binding:"required"`
	TotalRegularOT      decimal.Decimal  `json:"total_regular_ot"`
	TotalRegularHoliday decimal.Decimal  `json:"total_regular_holiday"`
	TotalSpecialHoliday decimal.Decimal  `json:"total_special_holiday"`
	TotalRestDay        decimal.Decimal  `json:"total_rest_day"`
	TotalNightDiff      decimal.Decimal  `json:"total_night_diff"`
	TotalBackwage       decimal.Decimal  `json:"total_backwage"`
	TotalOvertime       *decimal.Decimal `json:"total_overtime"`
	TotalLate           decimal.Decimal  `json:"total_late"`
	TotalUndertime      decimal.Decimal  `json:"total_undertime"`
}

type HoursResponse struct {
	ID                  string `json:"id"`
	AttendanceSummaryID string `json:"attendance_summary_id"`
	UserID              string `json:"user_id"`
	BiweekStart         string `json:"biweek_start"`
	ActualHours         int    `json:"actual_hours"`
	RegularOT           int    `json:"regular_ot"`
	RegularHoliday      int    `json:"regular_holiday"`
	SpecialHoliday      int    `json:"special_holiday"`
	RestDay             int    `json:"rest_day"`
	NightDiff           int    `json:"night_diff"`
	Backwage            int    `json:"backwage"`
	Late                int    `json:"late"`
	Undertime           int    `json:"undertime"`
}

type PayResponse struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
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
