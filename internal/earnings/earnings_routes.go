package earnings

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	earnings := r.Group("/earnings")
	earnings.Use(middleware.AuthMiddleware())
	{
		earnings.PUT("", middleware.RBACAuthorize(rbacService, "earnings", "write"), handler.UpsertEarnings)
		earnings.GET("/:user_id", middleware.RBACAuthorize(rbacService, "earnings", "read"), handler.GetEarnings)
	}

	deductions := r.Group("/deductions")
	deductions.Use(middleware.AuthMiddleware())
	{
		deductions.PUT("", middleware.RBACAuthorize(rbacService, "earnings", "write"), handler.UpsertDeductions)
		deductions.GET("/:user_id", middleware.RBACAuthorize(rbacService, "earnings", "read"), handler.GetDeductions)
	}
}
