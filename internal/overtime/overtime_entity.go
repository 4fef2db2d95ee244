package overtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OvertimeHours is the canonical hours record of one attendance summary.
type OvertimeHours struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceSummaryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_overtime_hours_summary"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_overtime_hours_summary;index"`
	BiweekStart         time.Time `gorm:"type:date;not null;uniqueIndex:uq_overtime_hours_summary"`
	ActualHours         int       `gorm:"not null;default:0"`
	RegularOT           int       `gorm:"column:regular_ot;not null;default:0"`
	RegularHoliday      int       `gorm:"not null;default:0"`
	SpecialHoliday      int       `gorm:"not null;default:0"`
	RestDay             int       `gorm:"not null;default:0"`
	NightDiff           int       `gorm:"not null;default:0"`
	Backwage            int       `gorm:"not null;default:0"`
	Late                int       `gorm:"not null;default:0"`
	Undertime           int       `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (OvertimeHours) TableName() string { return "overtime_hours" }

// OvertimePay holds the money an administrator assigns to a closed window.
// Salary assembly reads the latest entries per user.
type OvertimePay struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_overtime_pay_user_biweek"`
	BiweekStart         time.Time       `gorm:"type:date;not null;uniqueIndex:uq_overtime_pay_user_biweek"`
	TotalRegularOT      decimal.Decimal `gorm:"column:total_regular_ot;type:numeric(12,2);not null;default:0"`
	TotalRegularHoliday decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalSpecialHoliday decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalRestDay        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalNightDiff      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalBackwage       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalOvertime       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalLate           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalUndertime      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (OvertimePay) TableName() string { return "overtime_pays" }

// EarningsTotal sums the components that add to pay.
func (p OvertimePay) EarningsTotal() decimal.Decimal {
	return p.TotalRegularOT.
		Add(p.TotalRegularHoliday).
		Add(p.TotalSpecialHoliday).
		Add(p.TotalRestDay).
		Add(p.TotalNightDiff).
		Add(p.TotalBackwage)
}
