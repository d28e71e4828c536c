package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/admin/uc"
	"github.com/docbridge/docbridge/engine/cluster"
	clusteruc "github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Handler handles administrative HTTP requests
type Handler struct {
	factory *uc.Factory
}

// NewHandler creates a new admin handler
func NewHandler(factory *uc.Factory) *Handler {
	return &Handler{
		factory: factory,
	}
}

// bindSelector reads routing fields from the query string on GET and DELETE
// and from the JSON body otherwise. Path parameters, when present, override
// the bound database and collection.
func bindSelector(c *gin.Context) (cluster.Selector, bool) {
	var sel cluster.Selector
	var err error
	switch c.Request.Method {
	case http.MethodGet, http.MethodDelete:
		err = c.ShouldBindQuery(&sel)
	default:
		err = c.ShouldBindJSON(&sel)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return sel, false
	}
	if db := c.Param("database"); db != "" {
		sel.Database = db
	}
	if coll := c.Param("collection"); coll != "" {
		sel.Collection = coll
	}
	return sel, true
}

// handleAdminError centralizes admin error logging and responses.
func (h *Handler) handleAdminError(ctx context.Context, c *gin.Context, action string, err error) {
	log := logger.FromContext(ctx)
	log.Error("Admin operation failed", "action", action, "error", err)
	switch {
	case errors.Is(err, clusteruc.ErrClusterNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Cluster not found",
			"details": "No cluster is registered under the selected name",
		})
	default:
		var coreErr *core.Error
		if errors.As(err, &coreErr) && coreErr.Code == core.ErrCodeValidation {
			c.JSON(http.StatusBadRequest, gin.H{"error": coreErr.Message, "details": coreErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action, "details": err.Error()})
	}
}

// ListDatabases godoc
// @Summary List databases
// @Description List every database visible on the selected connection
// @Tags admin
// @Accept json
// @Produce json
// @Param cluster query string false "Cluster name, raw URI, or 'default'"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /admin/databases [get]
func (h *Handler) ListDatabases(c *gin.Context) {
	ctx := c.Request.Context()
	sel, ok := bindSelector(c)
	if !ok {
		return
	}
	names, err := h.factory.ListDatabases(&uc.ListDatabasesInput{Selector: sel}).Execute(ctx)
	if err != nil {
		h.handleAdminError(ctx, c, "list databases", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"databases": names,
		},
		"message": "Success",
	})
}

// ListCollections godoc
// @Summary List collections
// @Description List the collections of the selected database
// @Tags admin
// @Accept json
// @Produce json
// @Param database path string false "Database name; defaults to the configured database"
// @Param cluster query string false "Cluster name, raw URI, or 'default'"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /admin/databases/{database}/collections [get]
func (h *Handler) ListCollections(c *gin.Context) {
	ctx := c.Request.Context()
	sel, ok := bindSelector(c)
	if !ok {
		return
	}
	names, err := h.factory.ListCollections(&uc.ListCollectionsInput{Selector: sel}).Execute(ctx)
	if err != nil {
		h.handleAdminError(ctx, c, "list collections", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"collections": names,
		},
		"message": "Success",
	})
}

// DropDatabase godoc
// @Summary Drop a database
// @Description Remove an entire database; dropping a missing database succeeds
// @Tags admin
// @Produce json
// @Param database path string true "Database name"
// @Param cluster query string false "Cluster name, raw URI, or 'default'"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /admin/databases/{database} [delete]
func (h *Handler) DropDatabase(c *gin.Context) {
	ctx := c.Request.Context()
	sel, ok := bindSelector(c)
	if !ok {
		return
	}
	err := h.factory.DropDatabase(&uc.DropDatabaseInput{
		Selector: sel,
		Database: c.Param("database"),
	}).Execute(ctx)
	if err != nil {
		h.handleAdminError(ctx, c, "drop database", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"status": "database dropped",
		},
		"message": "Database dropped successfully",
	})
}

// DropCollection godoc
// @Summary Drop a collection
// @Description Remove a single collection; dropping a missing collection succeeds
// @Tags admin
// @Produce json
// @Param database path string true "Database name"
// @Param collection path string true "Collection name"
// @Param cluster query string false "Cluster name, raw URI, or 'default'"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /admin/databases/{database}/collections/{collection} [delete]
func (h *Handler) DropCollection(c *gin.Context) {
	ctx := c.Request.Context()
	sel, ok := bindSelector(c)
	if !ok {
		return
	}
	err := h.factory.DropCollection(&uc.DropCollectionInput{
		Selector:   sel,
		Database:   c.Param("database"),
		Collection: c.Param("collection"),
	}).Execute(ctx)
	if err != nil {
		h.handleAdminError(ctx, c, "drop collection", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"status": "collection dropped",
		},
		"message": "Collection dropped successfully",
	})
}
