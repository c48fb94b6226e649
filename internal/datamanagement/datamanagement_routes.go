package datamanagement

import (
	"go-hris-console/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	dm := r.Group("/data-management")
	dm.Use(middleware.AuthMiddleware())
	{
		dm.GET("/employees",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.ListEmployees,
		)

		dm.GET("/employees/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetEmployee,
		)

		dm.POST("/employees",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			handler.CreateEmployee,
		)

		dm.PUT("/employees/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.UpdateEmployee,
		)

		dm.DELETE("/employees/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "employee", "delete"),
			handler.DeleteEmployee,
		)

		dm.GET("/departments",
			middleware.RateLimitByUser(5, 20), // ringan, dari cache
			middleware.RBACAuthorize(rbacService, "reference_data", "read"),
			handler.ListDepartments,
		)

		dm.GET("/positions",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "reference_data", "read"),
			handler.ListPositions,
		)

		refWrite := middleware.RateLimitByUser(0.5, 2)
		dm.POST("/departments", refWrite, middleware.RBACAuthorize(rbacService, "reference_data", "create"), handler.CreateDepartment)
		dm.PUT("/departments/:id", refWrite, middleware.RBACAuthorize(rbacService, "reference_data", "update"), handler.UpdateDepartment)
		dm.DELETE("/departments/:id", refWrite, middleware.RBACAuthorize(rbacService, "reference_data", "delete"), handler.DeleteDepartment)
		dm.POST("/positions", refWrite, middleware.RBACAuthorize(rbacService, "reference_data", "create"), handler.CreatePosition)
		dm.PUT("/positions/:id", refWrite, middleware.RBACAuthorize(rbacService, "reference_data", "update"), handler.UpdatePosition)
		dm.DELETE("/positions/:id", refWrite, middleware.RBACAuthorize(rbacService, "reference_data", "delete"), handler.DeletePosition)
	}
}
