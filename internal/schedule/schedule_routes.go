package schedule

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.GET("", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.List)
		schedules.GET("/:id", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetByID)
		schedules.POST("/:id/shifts", middleware.RBACAuthorize(rbacService, "schedule", "write"), handler.AddShift)
		schedules.PUT("/:id/flags", middleware.RBACAuthorize(rbacService, "schedule", "write"), handler.UpdateFlags)
		schedules.POST("/resync", middleware.RBACAuthorize(rbacService, "schedule", "write"), handler.Resync)
	}
}
