package rbac

import (
	"net/http"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MyPermissions lists what the caller's role may do.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	response.Success(c, http.StatusOK, domain.RolePermissionsResponse{
		Role:        role,
		Permissions: h.service.Permissions(role),
	}, nil)
}
