package overtimeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidBiweekStart = apperror.New(
		apperror.CodeInvalidInput,
		"biweek_start must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidUser = apperror.New(
		apperror.CodeInvalidInput,
		"user_id must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Overtime pay amounts cannot be negative",
		http.StatusBadRequest,
	)
)
