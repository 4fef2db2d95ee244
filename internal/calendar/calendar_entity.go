package calendar

import (
	"time"

	"github.com/google/uuid"
)

const (
	HolidayTypeRegular = "regular"
	HolidayTypeSpecial = "special"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	HolidayDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_holiday_date_type"`
	HolidayType string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_holiday_date_type"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PayrollPeriod struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodStart time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_period_range"`
	PeriodEnd   time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_period_range"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
