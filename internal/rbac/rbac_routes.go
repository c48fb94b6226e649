package rbac

import (
	"go-hris-console/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/me/permissions", handler.MyPermissions)
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac_permission", "read"), handler.Enforce)
	}
}
