package salary

import (
	"time"

	"go-payroll/internal/shared/datex"
)

// PayDate is the 15th of the period end month when the period ends before
// the 15th, else the last day of that month.
func PayDate(periodEnd time.Time) time.Time {
	end := datex.Normalize(periodEnd)
	if end.Day() < 15 {
		return datex.Date(end.Year(), end.Month(), 15)
	}
	return datex.EndOfMonth(end)
}
