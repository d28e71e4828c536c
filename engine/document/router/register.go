package router

import (
	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/document/uc"
)

// RegisterRoutes registers all item CRUD and import routes
func RegisterRoutes(apiBase *gin.RouterGroup, factory *uc.Factory) {
	handler := NewHandler(factory)
	items := apiBase.Group("/items")
	{
		items.POST("", handler.CreateItem)
		items.GET("", handler.ListItems)
		items.POST("/all", handler.ListItems)
		items.POST("/query", handler.QueryItem)
		items.POST("/bulk", handler.BulkInsertItems)
		items.PUT("/:id", handler.UpdateItem)
		items.DELETE("/:id", handler.DeleteItem)
		items.POST("/reset-and-import", handler.ResetAndImport)
	}
}
