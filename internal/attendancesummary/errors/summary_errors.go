package summaryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var ErrSummaryNotFound = apperror.New(
	apperror.CodeNotFound,
	"Attendance summary not found",
	http.StatusNotFound,
)
