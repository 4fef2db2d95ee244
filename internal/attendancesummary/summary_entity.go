package attendancesummary

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceSummary totals one user's payroll window. It is recomputed in
// full from the attendance rows, never adjusted by delta.
type AttendanceSummary struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_summary_user_biweek"`
	BiweekStart         time.Time  `gorm:"type:date;not null;uniqueIndex:uq_summary_user_biweek"`
	AttendanceID        *uuid.UUID `gorm:"type:uuid"`
	ActualHours         int        `gorm:"not null;default:0"`
	OvertimeHours       int        `gorm:"not null;default:0"`
	LateMinutes         int        `gorm:"not null;default:0"`
	UndertimeHours      int        `gorm:"not null;default:0"`
	SpecialHolidayHours int        `gorm:"not null;default:0"`
	RegularHolidayHours int        `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (AttendanceSummary) TableName() string { return "attendance_summaries" }
