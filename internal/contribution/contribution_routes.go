package contribution

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	contributions := r.Group("/contributions")
	contributions.Use(middleware.AuthMiddleware())
	{
		contributions.GET("/:user_id", middleware.RBACAuthorize(rbacService, "contribution", "read"), handler.Get)
	}
}
