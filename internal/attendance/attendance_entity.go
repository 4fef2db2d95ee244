package attendance

import (
	"time"

	"github.com/google/uuid"
)

const StatusPresent = "present"

// Attendance is the single row of a user's working day. CheckOut only ever
// moves forward.
type Attendance struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_date"`
	AttendanceDate time.Time `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_user_date;index"`
	CheckIn        time.Time `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut       time.Time `gorm:"column:check_out;type:timestamptz;not null"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:present"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
