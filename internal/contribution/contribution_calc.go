package contribution

import (
	"go-payroll/internal/contribution/ratetable"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compute derives the three contribution rows of userID from basicRate.
func Compute(t *ratetable.Tables, userID uuid.UUID, basicRate decimal.Decimal) Set {
	sss := t.SSS.Lookup(basicRate)
	ph := t.PhilHealth.Compute(basicRate)
	pi := t.PagIBIG.Compute()

	return Set{
		SSS: SSS{
			ID:            uuid.New(),
			UserID:        userID,
			BasicSalary:   sss.BasicSalary,
			MSC:           sss.MSC,
			EmployeeShare: sss.EmployeeShare,
			EmployerShare: sss.EmployerShare,
			EC:            sss.EC,
			EmployerMPF:   sss.EmployerMPF,
			EmployeeMPF:   sss.EmployeeMPF,
			TotalEmployer: sss.TotalEmployer,
			TotalEmployee: sss.TotalEmployee,
			Total:         sss.Total,
			TableVersion:  t.Version,
		},
		PhilHealth: PhilHealth{
			ID:           uuid.New(),
			UserID:       userID,
			BasicSalary:  ph.BasicSalary,
			Total:        ph.Total,
			TableVersion: t.Version,
		},
		PagIBIG: PagIBIG{
			ID:            uuid.New(),
			UserID:        userID,
			EmployeeShare: pi.EmployeeShare,
			EmployerShare: pi.EmployerShare,
			Total:         pi.Total,
			TableVersion:  t.Version,
		},
	}
}
