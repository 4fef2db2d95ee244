package biometric

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Device pushes arrive in bursts when a terminal reconnects.
const (
	ingestRate  = rate.Limit(20)
	ingestBurst = 100
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	biometrics := r.Group("/biometrics")
	biometrics.Use(middleware.AuthMiddleware())
	{
		ingest := middleware.RateLimitByIP(ingestRate, ingestBurst)

		biometrics.POST("",
			ingest,
			middleware.RBACAuthorize(rbacService, "biometric", "write"),
			middleware.Idempotency(rdb),
			handler.Record,
		)
		biometrics.POST("/import",
			ingest,
			middleware.RBACAuthorize(rbacService, "biometric", "write"),
			middleware.Idempotency(rdb),
			handler.Import,
		)
		biometrics.DELETE("", middleware.RBACAuthorize(rbacService, "biometric", "delete"), handler.PurgeByDate)
		biometrics.DELETE("/invalid-users", middleware.RBACAuthorize(rbacService, "biometric", "delete"), handler.PurgeUnmapped)
	}
}
