package payroll

import (
	"go-payroll/internal/salary"

	"github.com/shopspring/decimal"
)

type Amounts struct {
	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
}

// Compute applies the pay formulas to a salary snapshot. Missing inputs are
// zero in the snapshot and contribute nothing.
func Compute(snap salary.Snapshot) Amounts {
	e, d, ot, c := snap.Earnings, snap.Deductions, snap.OvertimePay, snap.Contributions

	gross := ot.TotalOvertime.
		Add(e.BasicRate).
		Add(e.Allowance).
		Add(e.Ntax)

	deductions := decimal.Sum(
		c.SSSEmployee,
		c.PhilHealthTotal,
		c.PagIBIGEmployee,
		d.Wtax,
		d.Nowork,
		d.Loan,
		d.Charges,
		d.Msfcloan,
		ot.TotalLate,
		ot.TotalUndertime,
	)

	return Amounts{
		Gross:      gross.Round(2),
		Deductions: deductions.Round(2),
		Net:        gross.Sub(deductions).Round(2),
	}
}
