package salaryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var ErrSalaryNotFound = apperror.New(
	apperror.CodeNotFound,
	"Salary not found",
	http.StatusNotFound,
)
