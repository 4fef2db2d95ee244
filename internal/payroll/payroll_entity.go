package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payroll is the computed pay of one salary. It is recomputed in place when
// the salary is redelivered.
type Payroll struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalaryID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_salary"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayDate          time.Time       `gorm:"type:date;not null;index"`
	ScheduleID       *uuid.UUID      `gorm:"type:uuid"`
	EmploymentInfoID *uuid.UUID      `gorm:"type:uuid"`
	GrossPay         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalDeductions  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetPay           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Payroll) TableName() string { return "payrolls" }
