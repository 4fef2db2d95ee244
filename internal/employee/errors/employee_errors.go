package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrUserNotMapped = apperror.New(
		apperror.CodeNotFound,
		"employee number is not linked to a user",
		http.StatusNotFound,
	)
	ErrEmploymentInfoNotFound = apperror.New(
		apperror.CodeNotFound,
		"employment info not found",
		http.StatusNotFound,
	)
)
