package app

import (
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/attendancesummary"
	"go-payroll/internal/biometric"
	"go-payroll/internal/calendar"
	"go-payroll/internal/config"
	"go-payroll/internal/contribution"
	"go-payroll/internal/contribution/ratetable"
	"go-payroll/internal/earnings"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/overtime"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rbac"
	"go-payroll/internal/salary"
	"go-payroll/internal/schedule"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// modules holds every stage service. The API, the consumer and the
// scheduler build the same graph and use the parts they need.
type modules struct {
	loc *time.Location

	biometric    biometric.Service
	attendance   attendance.Service
	summary      attendancesummary.Service
	calendar     calendar.Service
	schedule     schedule.Service
	overtime     overtime.Service
	earnings     earnings.Service
	contribution contribution.Service
	salary       salary.Service
	payroll      payroll.Service
	payslip      payslip.Service
}

func newModules(db *gorm.DB, rdb *redis.Client, cfg *config.Config) (*modules, error) {
	tables, err := ratetable.Load(cfg.RateTableVersion)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	outboxRepo := kafka.NewOutboxRepository(db)
	employeeRepo := employee.NewRepository(db)
	biometricRepo := biometric.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	summaryRepo := attendancesummary.NewRepository(db)
	calendarRepo := calendar.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	overtimeRepo := overtime.NewRepository(db)
	earningsRepo := earnings.NewRepository(db)
	contributionRepo := contribution.NewRepository(db)
	salaryRepo := salary.NewRepository(db)
	payrollRepo := payroll.NewRepository(db)
	payslipRepo := payslip.NewRepository(db)

	directory := employee.NewDirectory(employeeRepo)
	resolver := schedule.NewResolver(scheduleRepo)

	// --- Services ---
	return &modules{
		loc:          cfg.Location,
		biometric:    biometric.NewService(db, biometricRepo, outboxRepo, cfg.Location),
		attendance:   attendance.NewService(db, attendanceRepo, directory, outboxRepo, cfg.Location),
		summary:      attendancesummary.NewService(db, summaryRepo, attendanceRepo, resolver, outboxRepo, cfg.Location),
		calendar:     calendar.NewService(db, calendarRepo, outboxRepo),
		schedule:     schedule.NewService(db, scheduleRepo, calendarRepo, directory, outboxRepo),
		overtime:     overtime.NewService(db, overtimeRepo, summaryRepo, resolver, cfg.OvertimePolicy),
		earnings:     earnings.NewService(db, earningsRepo, outboxRepo),
		contribution: contribution.NewService(db, contributionRepo, earningsRepo, tables),
		salary:       salary.NewService(db, salaryRepo, directory, resolver, overtimeRepo, earningsRepo, contributionRepo, outboxRepo),
		payroll:      payroll.NewService(db, payrollRepo, salaryRepo, resolver, directory, outboxRepo, rdb),
		payslip:      payslip.NewService(db, payslipRepo, payrollRepo, salaryRepo, directory),
	}, nil
}

func registerRoutes(router *gin.Engine, m *modules, rdb *redis.Client) error {
	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		biometric.RegisterRoutes(api, biometric.NewHandler(m.biometric), rbacService, rdb)
		attendance.RegisterRoutes(api, attendance.NewHandler(m.attendance), rbacService)
		attendancesummary.RegisterRoutes(api, attendancesummary.NewHandler(m.summary), rbacService)
		calendar.RegisterRoutes(api, calendar.NewHandler(m.calendar), rbacService)
		schedule.RegisterRoutes(api, schedule.NewHandler(m.schedule), rbacService)
		overtime.RegisterRoutes(api, overtime.NewHandler(m.overtime), rbacService)
		earnings.RegisterRoutes(api, earnings.NewHandler(m.earnings), rbacService)
		contribution.RegisterRoutes(api, contribution.NewHandler(m.contribution), rbacService)
		salary.RegisterRoutes(api, salary.NewHandler(m.salary), rbacService, rdb)
		payroll.RegisterRoutes(api, payroll.NewHandler(m.payroll, m.loc), rbacService)
		payslip.RegisterRoutes(api, payslip.NewHandler(m.payslip), rbacService)
		rbac.RegisterRoutes(api, rbac.NewHandler(rbacService))
	}

	return nil
}
