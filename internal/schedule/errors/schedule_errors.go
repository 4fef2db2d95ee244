package scheduleerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Schedule not found",
		http.StatusNotFound,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidShiftTime = apperror.New(
		apperror.CodeInvalidInput,
		"Shift times must be formatted as HH:MM with start before end",
		http.StatusBadRequest,
	)

	ErrOutsideWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Date is outside the schedule payroll period",
		http.StatusBadRequest,
	)
)
