package calendarerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHolidayType = apperror.New(
		apperror.CodeInvalidInput,
		"holiday_type must be regular or special",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"payroll_period_start must be before or equal payroll_period_end",
		http.StatusBadRequest,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeValidationFailed,
		"a holiday of this type already exists on this date",
		http.StatusConflict,
	)
	ErrPayrollPeriodExists = apperror.New(
		apperror.CodeValidationFailed,
		"a payroll period with this range already exists",
		http.StatusConflict,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrPayrollPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll period not found",
		http.StatusNotFound,
	)
)
