package middleware

import (
	"net/http"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	actionRead    = "read"
	actionReadAll = "read_all"
	hasReadAllKey = "has_read_all"
)

// RBACService is any role policy enforcer.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize requires the caller's role to hold action on resource. For
// read actions it also records whether the role may read every user's rows;
// handlers consult that through CanReadAll.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{Role: role, Resource: resource, Action: action})
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message)
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, apperror.ErrForbidden.Message, gin.H{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}

		if action == actionRead {
			readAll, err := service.Enforce(domain.EnforceRequest{Role: role, Resource: resource, Action: actionReadAll})
			c.Set(hasReadAllKey, err == nil && readAll)
		}

		c.Next()
	}
}

// CanReadAll reports whether the caller may see other users' rows.
func CanReadAll(c *gin.Context) bool {
	return c.GetBool(hasReadAllKey)
}

// ScopeUserID returns the user whose rows the caller may read: the caller
// itself, or requested when the caller can read all rows. An empty result
// means every user.
func ScopeUserID(c *gin.Context, requested string) string {
	if CanReadAll(c) {
		return requested
	}
	return c.GetString("user_id")
}
