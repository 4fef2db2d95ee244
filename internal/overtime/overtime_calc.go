package overtime

import (
	"go-payroll/internal/attendancesummary"
	"go-payroll/internal/schedule"

	"github.com/google/uuid"
)

// Consolidate derives the hours record of sum. A nil schedule contributes no
// night differential or rest day hours.
func Consolidate(sum attendancesummary.AttendanceSummary, sch *schedule.Schedule) OvertimeHours {
	oh := OvertimeHours{
		ID:                  uuid.New(),
		AttendanceSummaryID: sum.ID,
		UserID:              sum.UserID,
		BiweekStart:         sum.BiweekStart,
		ActualHours:         sum.ActualHours,
		RegularOT:           sum.OvertimeHours,
		RegularHoliday:      sum.RegularHolidayHours,
		SpecialHoliday:      sum.SpecialHolidayHours,
		Late:                sum.LateMinutes,
		Undertime:           sum.UndertimeHours,
	}
	if sch != nil {
		oh.NightDiff = sch.NightDiffHours()
		oh.RestDay = sch.RestDayHours()
	}
	return oh
}
