package earnings

import "github.com/shopspring/decimal"

type UpsertEarningsRequest struct {
	UserID        string           `json:"user_id" binding:"required,uuid"`
	BasicRate     *decimal.Decimal `json:"basic_rate"`
	Basic         decimal.Decimal  `json:"basic"`
	Allowance     decimal.Decimal  `json:"allowance"`
	Ntax          decimal.Decimal  `json:"ntax"`
	VacationLeave decimal.Decimal  `json:"vacation_leave"`
	SickLeave     decimal.Decimal  `json:"sick_leave"`
}

type UpsertDeductionsRequest struct {
	UserID   string          `json:"user_id" binding:"required,uuid"`
	Wtax     decimal.Decimal `json:"wtax"`
	Nowork   decimal.Decimal `json:"nowork"`
	Loan     decimal.Decimal `json:"loan"`
	Charges  decimal.Decimal `json:"charges"`
	Msfcloan decimal.Decimal `json:"msfcloan"`
}

type EarningsResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	BasicRate     *decimal.Decimal `json:"basic_rate"`
	Basic         decimal.Decimal  `json:"basic"`
	Allowance     decimal.Decimal  `json:"allowance"`
	Ntax          decimal.Decimal  `json:"ntax"`
	VacationLeave decimal.Decimal  `json:"vacation_leave"`
	SickLeave     decimal.Decimal  `json:"sick_leave"`
}

type DeductionsResponse struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	Wtax     decimal.Decimal `json:"wtax"`
	Nowork   decimal.Decimal `json:"nowork"`
	Loan     decimal.Decimal `json:"loan"`
	Charges  decimal.Decimal `json:"charges"`
	Msfcloan decimal.Decimal `json:"msfcloan"`
	Total    decimal.Decimal `json:"total"`
}
