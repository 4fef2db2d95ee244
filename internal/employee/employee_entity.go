package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Role      string    `gorm:"type:varchar(20);not null;default:'employee'"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

// EmploymentInfo links the number a biometric device knows an employee by
// to the user account. UserID is null until the account is provisioned.
type EmploymentInfo struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber int        `gorm:"not null;uniqueIndex:uq_employment_employee_number"`
	UserID         *uuid.UUID `gorm:"type:uuid;index"`
	FirstName      string     `gorm:"type:varchar(120)"`
	LastName       string     `gorm:"type:varchar(120)"`
	Position       string     `gorm:"type:varchar(120)"`
	HireDate       *time.Time `gorm:"type:date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (EmploymentInfo) TableName() string { return "employment_infos" }

func (e EmploymentInfo) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
