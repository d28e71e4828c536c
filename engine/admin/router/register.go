package router

import (
	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/admin/uc"
)

// RegisterRoutes registers the listing routes plus their /admin counterparts
func RegisterRoutes(apiBase *gin.RouterGroup, factory *uc.Factory) {
	handler := NewHandler(factory)
	apiBase.GET("/databases", handler.ListDatabases)
	apiBase.POST("/databases", handler.ListDatabases)
	apiBase.GET("/collections", handler.ListCollections)
	apiBase.POST("/collections", handler.ListCollections)
	admin := apiBase.Group("/admin")
	{
		admin.GET("/databases", handler.ListDatabases)
		admin.DELETE("/databases/:database", handler.DropDatabase)
		admin.GET("/databases/:database/collections", handler.ListCollections)
		admin.DELETE("/databases/:database/collections/:collection", handler.DropCollection)
	}
}
