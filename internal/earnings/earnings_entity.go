package earnings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Earnings is the current pay basis of a user. A null BasicRate means the
// rate has not been set and contributions cannot be derived yet.
type Earnings struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_earnings_user"`
	BasicRate     decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Basic         decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	Allowance     decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	Ntax          decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	VacationLeave decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	SickLeave     decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Earnings) TableName() string { return "earnings" }

type Deductions struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_deductions_user"`
	Wtax      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Nowork    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Loan      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Charges   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Msfcloan  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Deductions) TableName() string { return "deductions" }

// Total sums every deduction line.
func (d Deductions) Total() decimal.Decimal {
	return d.Wtax.Add(d.Nowork).Add(d.Loan).Add(d.Charges).Add(d.Msfcloan)
}
