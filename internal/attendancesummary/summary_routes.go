package attendancesummary

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	summaries := r.Group("/attendance-summaries")
	summaries.Use(middleware.AuthMiddleware())
	{
		summaries.GET("", middleware.RBACAuthorize(rbacService, "attendance_summary", "read"), handler.GetAll)
		summaries.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance_summary", "read"), handler.GetByID)
	}
}
