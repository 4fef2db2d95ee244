package payslip

import (
	"time"

	"github.com/google/uuid"
)

// Payslip is published once per payroll and never overwritten; only the
// approval and download stamps change.
type Payslip struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	PayrollID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_payslip_payroll"`
	Status              bool       `gorm:"not null;default:false"`
	ApprovedAt          *time.Time `gorm:"type:timestamptz"`
	GeneratedAt         *time.Time `gorm:"type:timestamptz"`
	EmployeeGeneratedAt *time.Time `gorm:"type:timestamptz"`
	IsProtected         bool       `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Payslip) TableName() string { return "payslips" }
