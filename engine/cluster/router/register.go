package router

import (
	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/cluster/uc"
)

// RegisterRoutes registers all cluster registry routes
func RegisterRoutes(apiBase *gin.RouterGroup, factory *uc.Factory) {
	handler := NewHandler(factory)
	clusters := apiBase.Group("/clusters")
	{
		clusters.POST("/register", handler.RegisterCluster)
		clusters.POST("", handler.ListClusters)
	}
}
