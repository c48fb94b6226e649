package payroll

import (
	"go-hris-console/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	mutationLimit := middleware.RateLimitByUser(rate.Limit(5), 10)

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/payroll-entries", middleware.RBACAuthorize(rbacService, "payroll_entry", "read"), handler.ListEntries)
		payroll.POST("/payroll-entries/reload", middleware.RBACAuthorize(rbacService, "payroll_entry", "read"), handler.Reload)
		payroll.POST("/payroll-entries/:id/editing-sessions", middleware.RBACAuthorize(rbacService, "payroll_entry", "update"), handler.OpenEntry)
		payroll.DELETE("/payroll-entries/:id", mutationLimit, middleware.RBACAuthorize(rbacService, "payroll_entry", "delete"), handler.DeleteEntry)

		if redisClient != nil {
			payroll.POST(
				"/payroll-entries/calculate",
				mutationLimit,
				middleware.RBACAuthorize(rbacService, "payroll_entry", "calculate"),
				middleware.ExtractUserID(),
				middleware.Idempotency(redisClient),
				handler.CalculateEntry,
			)
		} else {
			payroll.POST("/payroll-entries/calculate", mutationLimit, middleware.RBACAuthorize(rbacService, "payroll_entry", "calculate"), handler.CalculateEntry)
		}

		payroll.GET("/editing-sessions/:session_id", middleware.RBACAuthorize(rbacService, "payroll_entry", "update"), handler.GetEditingSession)
		payroll.PUT("/editing-sessions/:session_id", mutationLimit, middleware.RBACAuthorize(rbacService, "payroll_entry", "update"), handler.SaveEditingSession)
		payroll.DELETE("/editing-sessions/:session_id", middleware.RBACAuthorize(rbacService, "payroll_entry", "update"), handler.CloseEditingSession)

		payroll.GET("/reference-options", middleware.RBACAuthorize(rbacService, "payroll_entry", "read"), handler.ReferenceOptions)
		payroll.GET("/reports/monthly", middleware.RBACAuthorize(rbacService, "payroll_report", "read"), handler.MonthlyReport)
		payroll.GET("/reports/monthly.csv", middleware.RBACAuthorize(rbacService, "payroll_report", "export"), handler.MonthlyReportCSV)
	}
}

// RegisterAdminRoutes mounts the payroll run and salary structure screens.
func RegisterAdminRoutes(
	r *gin.RouterGroup,
	runHandler *RunHandler,
	salaryHandler *SalaryStructureHandler,
	rbacService middleware.RBACService,
) {
	mutationLimit := middleware.RateLimitByUser(rate.Limit(5), 10)

	admin := r.Group("/payroll")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/payroll-runs", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), runHandler.ListRuns)
		admin.GET("/payroll-runs/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), runHandler.GetRun)
		admin.POST("/payroll-runs", mutationLimit, middleware.RBACAuthorize(rbacService, "payroll_run", "create"), runHandler.CreateRun)
		admin.PUT("/payroll-runs/:id", mutationLimit, middleware.RBACAuthorize(rbacService, "payroll_run", "update"), runHandler.UpdateRun)
		admin.DELETE("/payroll-runs/:id", mutationLimit, middleware.RBACAuthorize(rbacService, "payroll_run", "delete"), runHandler.DeleteRun)

		admin.GET("/salary-structures", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), salaryHandler.ListSalaryStructures)
		admin.GET("/salary-structures/:id", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), salaryHandler.GetSalaryStructure)
		admin.POST("/salary-structures", mutationLimit, middleware.RBACAuthorize(rbacService, "salary_structure", "create"), salaryHandler.CreateSalaryStructure)
		admin.PUT("/salary-structures/:id", mutationLimit, middleware.RBACAuthorize(rbacService, "salary_structure", "update"), salaryHandler.UpdateSalaryStructure)
		admin.DELETE("/salary-structures/:id", mutationLimit, middleware.RBACAuthorize(rbacService, "salary_structure", "delete"), salaryHandler.DeleteSalaryStructure)
	}
}
