package app

import (
	"net/http"

	"go-payroll/internal/attendance"
	"go-payroll/internal/attendancesummary"
	"go-payroll/internal/biometric"
	"go-payroll/internal/calendar"
	"go-payroll/internal/config"
	"go-payroll/internal/contribution"
	"go-payroll/internal/earnings"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/overtime"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salary"
	"go-payroll/internal/schedule"
	"go-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine, cfg *config.Config) error {
	logger := zap.L().Named("app.api")

	// 1. Setup Infrastructure
	db, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.MaxRetries)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		if err := migrate(db); err != nil {
			return err
		}
		logger.Info("database schema migrated")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.MaxRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	// 2. Register Modules & Routes
	m, err := newModules(db, rdb, cfg)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))
	router.GET("/healthz", healthz(db, rdb))

	return registerRoutes(router, m, rdb)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&kafka.OutboxEvent{},
		&employee.User{},
		&employee.EmploymentInfo{},
		&calendar.Holiday{},
		&calendar.PayrollPeriod{},
		&schedule.Schedule{},
		&schedule.Shift{},
		&biometric.Punch{},
		&attendance.Attendance{},
		&attendancesummary.AttendanceSummary{},
		&overtime.OvertimeHours{},
		&overtime.OvertimePay{},
		&earnings.Earnings{},
		&earnings.Deductions{},
		&contribution.SSS{},
		&contribution.PhilHealth{},
		&contribution.PagIBIG{},
		&salary.Salary{},
		&payroll.Payroll{},
		&payslip.Payslip{},
	)
}

func healthz(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"database": "ok", "redis": "ok"}
		code := http.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "down"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
