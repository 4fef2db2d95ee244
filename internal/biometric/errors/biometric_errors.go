package biometricerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Query parameter date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidCSV = apperror.New(
		apperror.CodeInvalidInput,
		"CSV export could not be parsed",
		http.StatusBadRequest,
	)

	ErrEmptyImport = apperror.New(
		apperror.CodeInvalidInput,
		"Import contains no punches",
		http.StatusBadRequest,
	)
)
