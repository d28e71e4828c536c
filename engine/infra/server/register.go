package server

import (
	"context"

	"github.com/gin-gonic/gin"

	adminrouter "github.com/docbridge/docbridge/engine/admin/router"
	clusterrouter "github.com/docbridge/docbridge/engine/cluster/router"
	documentrouter "github.com/docbridge/docbridge/engine/document/router"
	"github.com/docbridge/docbridge/engine/infra/server/routes"
	"github.com/docbridge/docbridge/pkg/logger"
)

// RegisterRoutes mounts every domain router under the versioned API base.
func RegisterRoutes(ctx context.Context, r *gin.Engine, deps *Deps) {
	apiBase := r.Group(routes.Base())
	clusterrouter.RegisterRoutes(apiBase, deps.Clusters)
	documentrouter.RegisterRoutes(apiBase, deps.Documents)
	adminrouter.RegisterRoutes(apiBase, deps.Admin)
	apiBase.GET("/health", CreateHealthHandler(deps.DefaultConn))

	log := logger.FromContext(ctx)
	log.Debug("Completed route registration", "total_routes", len(r.Routes()))
}
