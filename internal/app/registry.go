package app

import (
	"go-hris-console/internal/audit"
	"go-hris-console/internal/datamanagement"
	"go-hris-console/internal/middleware"
	"go-hris-console/internal/payroll"
	"go-hris-console/internal/rbac"
	"go-hris-console/internal/upstream"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type modules struct {
	cfg      Config
	rdb      *redis.Client
	upstream *upstream.Client
	enforcer *casbin.Enforcer
	recorder audit.Recorder
}

func registerModules(router *gin.Engine, m modules) {
	// --- Global middleware ---
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L().Named("http")),
		middleware.RateLimitByIP(20, 40),
	)

	// --- Repositories ---
	payrollRepo := payroll.NewRepository(m.upstream)
	dataRepo := datamanagement.NewRepository(m.upstream)

	// --- RBAC Core ---
	rbacService := rbac.NewService(m.enforcer)

	// --- Services ---
	salaryCache := payroll.NewSalaryStructureCache(payrollRepo)
	sessionStore := payroll.NewRedisSessionStore(m.rdb, m.cfg.EditingSessionTTL)
	payrollService := payroll.NewService(payrollRepo, salaryCache, sessionStore, m.recorder)
	runService := payroll.NewRunService(payrollRepo, m.recorder)
	salaryService := payroll.NewSalaryStructureService(payrollRepo, salaryCache, m.recorder)
	dataService := datamanagement.NewService(dataRepo, m.rdb, m.recorder)

	// --- Handlers ---
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, m.rdb)
	runHandler := payroll.NewRunHandler(runService)
	salaryHandler := payroll.NewSalaryStructureHandler(salaryService)
	dataHandler := datamanagement.NewHandler(dataService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	console := router.Group("/console/v1")
	{
		payroll.RegisterRoutes(console, payrollHandler, rbacService, m.rdb)
		payroll.RegisterAdminRoutes(console, runHandler, salaryHandler, rbacService)
		datamanagement.RegisterRoutes(console, dataHandler, rbacService)
		rbac.RegisterRoutes(console, rbacHandler, rbacService)
	}
}
