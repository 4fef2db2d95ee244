package contribution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SSS, PhilHealth and PagIBIG hold one current row per user; every earnings
// save overwrites them.
type SSS struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_sss_user"`
	BasicSalary   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MSC           decimal.Decimal `gorm:"column:msc;type:numeric(12,2);not null"`
	EmployeeShare decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EmployerShare decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EC            decimal.Decimal `gorm:"column:ec;type:numeric(12,2);not null"`
	EmployerMPF   decimal.Decimal `gorm:"column:employer_mpf;type:numeric(12,2);not null"`
	EmployeeMPF   decimal.Decimal `gorm:"column:employee_mpf;type:numeric(12,2);not null"`
	TotalEmployer decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalEmployee decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TableVersion  string          `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SSS) TableName() string { return "sss_contributions" }

type PhilHealth struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_philhealth_user"`
	BasicSalary  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TableVersion string          `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PhilHealth) TableName() string { return "philhealth_contributions" }

type PagIBIG struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_pagibig_user"`
	EmployeeShare decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EmployerShare decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TableVersion  string          `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PagIBIG) TableName() string { return "pagibig_contributions" }

// Set is the current contributions of one user.
type Set struct {
	SSS        SSS
	PhilHealth PhilHealth
	PagIBIG    PagIBIG
}

// EmployeeTotal is what the user pays across all three funds.
func (s Set) EmployeeTotal() decimal.Decimal {
	return s.SSS.TotalEmployee.Add(s.PhilHealth.Total).Add(s.PagIBIG.EmployeeShare)
}
