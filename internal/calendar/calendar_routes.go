package calendar

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "calendar", "read"), handler.ListHolidays)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "calendar", "write"), handler.CreateHoliday)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "calendar", "delete"), handler.DeleteHoliday)
	}

	periods := r.Group("/payroll-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.GET("", middleware.RBACAuthorize(rbacService, "calendar", "read"), handler.ListPayrollPeriods)
		periods.POST("", middleware.RBACAuthorize(rbacService, "calendar", "write"), handler.CreatePayrollPeriod)
		periods.POST("/seed", middleware.RBACAuthorize(rbacService, "calendar", "write"), handler.SeedPayrollPeriods)
	}
}
