package overtime

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	hours := r.Group("/overtime-hours")
	hours.Use(middleware.AuthMiddleware())
	{
		hours.GET("", middleware.RBACAuthorize(rbacService, "overtime", "read"), handler.GetHours)
	}

	pay := r.Group("/overtime-pay")
	pay.Use(middleware.AuthMiddleware())
	{
		pay.GET("", middleware.RBACAuthorize(rbacService, "overtime", "read"), handler.GetPay)
		pay.PUT("", middleware.RBACAuthorize(rbacService, "overtime", "write"), handler.UpsertPay)
	}
}
