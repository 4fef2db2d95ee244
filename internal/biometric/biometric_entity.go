package biometric

import (
	"time"

	"github.com/google/uuid"
)

// Punch is one raw time-clock event as exported by the device.
type Punch struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpID        int       `gorm:"not null;uniqueIndex:uq_punch_emp_time"`
	EmployeeName string    `gorm:"type:varchar(255)"`
	PunchedAt    time.Time `gorm:"type:timestamptz;not null;uniqueIndex:uq_punch_emp_time;index"`
	WorkCode     string    `gorm:"type:varchar(50)"`
	WorkState    string    `gorm:"type:varchar(50)"`
	TerminalName string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
}

func (Punch) TableName() string { return "biometric_punches" }
