package paysliperrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payslip not found",
		http.StatusNotFound,
	)

	ErrPayslipNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"Payslip has not been approved yet",
		http.StatusConflict,
	)
)
