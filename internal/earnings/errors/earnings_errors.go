package earningserrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEarningsNotFound = apperror.New(
		apperror.CodeNotFound,
		"Earnings not found",
		http.StatusNotFound,
	)

	ErrDeductionsNotFound = apperror.New(
		apperror.CodeNotFound,
		"Deductions not found",
		http.StatusNotFound,
	)

	ErrInvalidUser = apperror.New(
		apperror.CodeInvalidInput,
		"user_id must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amounts cannot be negative",
		http.StatusBadRequest,
	)
)
