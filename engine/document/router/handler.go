package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/cluster"
	clusteruc "github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/engine/document/uc"
	"github.com/docbridge/docbridge/pkg/logger"
)

// CreateItemRequest carries a selector plus the document to store. The
// selector fields ride flat alongside the payload key.
type CreateItemRequest struct {
	cluster.Selector
	Document core.Document `json:"document"`
}

// ListItemsRequest carries a selector plus an optional limit.
type ListItemsRequest struct {
	cluster.Selector
	Limit int64 `json:"limit" form:"limit"`
}

// QueryItemRequest carries a selector plus an opaque backend filter.
type QueryItemRequest struct {
	cluster.Selector
	Filter core.Document `json:"filter"`
}

// BulkInsertRequest carries a selector plus an ordered batch of documents.
type BulkInsertRequest struct {
	cluster.Selector
	Documents []core.Document `json:"documents"`
}

// ResetImportRequest carries a selector plus the dataset link to import.
type ResetImportRequest struct {
	cluster.Selector
	Link string `json:"link"`
}

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Handler handles item HTTP requests
type Handler struct {
	factory *uc.Factory
}

// NewHandler creates a new item handler
func NewHandler(factory *uc.Factory) *Handler {
	return &Handler{
		factory: factory,
	}
}

// bindQuerySelector reads routing fields from the query string.
func bindQuerySelector(c *gin.Context) (cluster.Selector, bool) {
	var sel cluster.Selector
	if err := c.ShouldBindQuery(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selector", "details": err.Error()})
		return sel, false
	}
	return sel, true
}

// handleItemError centralizes item error logging and responses.
func (h *Handler) handleItemError(ctx context.Context, c *gin.Context, action string, err error) {
	log := logger.FromContext(ctx)
	log.Error("Item operation failed", "action", action, "error", err)
	switch {
	case errors.Is(err, uc.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Item not found",
			"details": "No item matches the given id or filter",
		})
	case errors.Is(err, clusteruc.ErrClusterNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Cluster not found",
			"details": "No cluster is registered under the selected name",
		})
	case errors.Is(err, uc.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Empty batch",
			"details": "At least one document is required",
		})
	case errors.Is(err, uc.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No fields to update",
			"details": "The patch contains no non-null fields",
		})
	case errors.Is(err, uc.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unsupported dataset format",
			"details": "The link must point to a .csv or .xlsx file",
		})
	case errors.Is(err, uc.ErrEmptyImport):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dataset has no rows",
			"details": "The fetched dataset decoded to zero documents",
		})
	default:
		var coreErr *core.Error
		if errors.As(err, &coreErr) {
			switch coreErr.Code {
			case core.ErrCodeValidation, core.ErrCodeImport:
				c.JSON(http.StatusBadRequest, gin.H{"error": coreErr.Message, "details": coreErr.Error()})
				return
			case core.ErrCodeNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": coreErr.Message, "details": coreErr.Error()})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action, "details": err.Error()})
	}
}

// CreateItem godoc
// @Summary Create an item
// @Description Store a single document and return it with its assigned id
// @Tags items
// @Accept json
// @Produce json
// @Param item body CreateItemRequest true "Selector and document"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "invalid request body"
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /items [post]
func (h *Handler) CreateItem(c *gin.Context) {
	ctx := c.Request.Context()
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	createUC := h.factory.InsertOne(&uc.InsertOneInput{
		Selector: req.Selector,
		Document: req.Document,
	})
	doc, err := createUC.Execute(ctx)
	if err != nil {
		h.handleItemError(ctx, c, "create item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data":    doc,
		"message": "Item created successfully",
	})
}

// buildListInput binds the selector and limit from the query string on GET
// and from the JSON body on POST.
func (h *Handler) buildListInput(c *gin.Context) (*uc.ListDocumentsInput, bool) {
	var req ListItemsRequest
	if c.Request.Method == http.MethodGet {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selector", "details": err.Error()})
			return nil, false
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return nil, false
	}
	return &uc.ListDocumentsInput{Selector: req.Selector, Limit: req.Limit}, true
}

// ListItems godoc
// @Summary List items
// @Description List documents in storage-native order, capped at 100
// @Tags items
// @Accept json
// @Produce json
// @Param cluster query string false "Cluster name, raw URI, or 'default'"
// @Param database query string false "Database name"
// @Param collection query string false "Collection name"
// @Param limit query int false "Maximum documents to return"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /items [get]
func (h *Handler) ListItems(c *gin.Context) {
	ctx := c.Request.Context()
	input, ok := h.buildListInput(c)
	if !ok {
		return
	}
	docs, err := h.factory.ListDocuments(input).Execute(ctx)
	if err != nil {
		h.handleItemError(ctx, c, "list items", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": docs,
			"count": len(docs),
		},
		"message": "Success",
	})
}

// QueryItem godoc
// @Summary Find one item by filter
// @Description Return the first document matching an opaque backend filter
// @Tags items
// @Accept json
// @Produce json
// @Param query body QueryItemRequest true "Selector and filter"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "invalid request body"
// @Failure 404 {object} ErrorResponse "no match"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /items/query [post]
func (h *Handler) QueryItem(c *gin.Context) {
	ctx := c.Request.Context()
	var req QueryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	doc, err := h.factory.QueryOne(&uc.QueryOneInput{
		Selector: req.Selector,
		Filter:   req.Filter,
	}).Execute(ctx)
	if err != nil {
		h.handleItemError(ctx, c, "query item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    doc,
		"message": "Success",
	})
}

// BulkInsertItems godoc
// @Summary Create items in bulk
// @Description Store an ordered batch of documents and return their stored forms
// @Tags items
// @Accept json
// @Produce json
// @Param batch body BulkInsertRequest true "Selector and documents"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "invalid or empty batch"
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /items/bulk [post]
func (h *Handler) BulkInsertItems(c *gin.Context) {
	ctx := c.Request.Context()
	var req BulkInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	docs, err := h.factory.InsertMany(&uc.InsertManyInput{
		Selector:  req.Selector,
		Documents: req.Documents,
	}).Execute(ctx)
	if err != nil {
		h.handleItemError(ctx, c, "bulk insert items", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"items": docs,
			"count": len(docs),
		},
		"message": "Items created successfully",
	})
}

// UpdateItem godoc
// @Summary Update an item
// @Description Merge the body's non-null fields into the addressed document
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param cluster query string false "Cluster name, raw URI, or 'default'"
// @Param database query string false "Database name"
// @Param collection query string false "Collection name"
// @Param patch body map[string]interface{} true "Merge patch"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "invalid id or empty patch"
// @Failure 404 {object} ErrorResponse "item not found"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /items/{id} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	ctx := c.Request.Context()
	sel, ok := bindQuerySelector(c)
	if !ok {
		return
	}
	var patch core.Document
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	doc, err := h.factory.UpdateOne(&uc.UpdateOneInput{
		Selector: sel,
		ID:       c.Param("id"),
		Patch:    patch,
	}).Execute(ctx)
	if err != nil {
		h.handleItemError(ctx, c, "update item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    doc,
		"message": "Item updated successfully",
	})
}

// DeleteItem godoc
// @Summary Delete an item
// @Description Remove the addressed document
// @Tags items
// @Produce json
// @Param id path string true "Item id"
// @Param cluster query string false "Cluster name, raw URI, or 'default'"
// @Param database query string false "Database name"
// @Param collection query string false "Collection name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "invalid id"
// @Failure 404 {object} ErrorResponse "item not found"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /items/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	ctx := c.Request.Context()
	sel, ok := bindQuerySelector(c)
	if !ok {
		return
	}
	err := h.factory.DeleteOne(&uc.DeleteOneInput{
		Selector: sel,
		ID:       c.Param("id"),
	}).Execute(ctx)
	if err != nil {
		h.handleItemError(ctx, c, "delete item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"status": "deleted",
		},
		"message": "Item deleted successfully",
	})
}

// ResetAndImport godoc
// @Summary Reset a collection from a dataset
// @Description Drop the target collection, then fetch and import a csv or xlsx dataset
// @Tags items
// @Accept json
// @Produce json
// @Param import body ResetImportRequest true "Selector and dataset link"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "unsupported format or failed import"
// @Failure 404 {object} ErrorResponse "unknown cluster"
// @Failure 500 {object} ErrorResponse "backend failure"
// @Router /items/reset-and-import [post]
func (h *Handler) ResetAndImport(c *gin.Context) {
	ctx := c.Request.Context()
	var req ResetImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	out, err := h.factory.ResetImport(&uc.ResetImportInput{
		Selector: req.Selector,
		Link:     req.Link,
	}).Execute(ctx)
	if err != nil {
		h.handleItemError(ctx, c, "import dataset", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    out,
		"message": "Dataset imported successfully",
	})
}
