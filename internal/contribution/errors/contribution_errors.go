package contributionerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var ErrContributionsNotFound = apperror.New(
	apperror.CodeNotFound,
	"Contributions not found",
	http.StatusNotFound,
)
