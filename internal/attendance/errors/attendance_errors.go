package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var ErrInvalidDateFilter = apperror.New(
	apperror.CodeInvalidInput,
	"from and to must be formatted as YYYY-MM-DD",
	http.StatusBadRequest,
)
