package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/cluster/uc"
	"github.com/docbridge/docbridge/engine/core"
	"github.com/docbridge/docbridge/pkg/logger"
)

// RegisterClusterRequest is the payload for registering a cluster connection.
type RegisterClusterRequest struct {
	Name       string `json:"name"`
	URI        string `json:"uri"`
	Owner      string `json:"owner"`
	Credential string `json:"credential"`
}

// ListClustersRequest scopes a listing to a plaintext owner pair.
type ListClustersRequest struct {
	Owner      string `json:"owner"`
	Credential string `json:"credential"`
}

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Handler handles cluster registry HTTP requests
type Handler struct {
	factory *uc.Factory
}

// NewHandler creates a new cluster registry handler
func NewHandler(factory *uc.Factory) *Handler {
	return &Handler{
		factory: factory,
	}
}

// buildRegisterClusterInput validates the incoming registration payload.
func (h *Handler) buildRegisterClusterInput(c *gin.Context) (*uc.RegisterClusterInput, bool) {
	var req RegisterClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return nil, false
	}
	return &uc.RegisterClusterInput{
		Name:       req.Name,
		URI:        req.URI,
		Owner:      req.Owner,
		Credential: req.Credential,
	}, true
}

// handleRegisterClusterError centralizes registration error logging and responses.
func (h *Handler) handleRegisterClusterError(ctx context.Context, c *gin.Context, err error) {
	log := logger.FromContext(ctx)
	log.Error("Failed to register cluster", "error", err)
	switch {
	case errors.Is(err, uc.ErrClusterNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Cluster name already registered",
			"details": "A cluster with this name already exists",
		})
	case errors.Is(err, uc.ErrClusterURITaken):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Cluster uri already registered",
			"details": "A cluster with this connection uri already exists",
		})
	default:
		var coreErr *core.Error
		if errors.As(err, &coreErr) && coreErr.Code == core.ErrCodeValidation {
			c.JSON(http.StatusBadRequest, gin.H{"error": coreErr.Message, "details": coreErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register cluster", "details": err.Error()})
	}
}

// RegisterCluster godoc
// @Summary Register a cluster
// @Description Register a named cluster connection with optional owner/credential
// @Tags clusters
// @Accept json
// @Produce json
// @Param cluster body RegisterClusterRequest true "Cluster registration"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "invalid or duplicate registration"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /clusters/register [post]
func (h *Handler) RegisterCluster(c *gin.Context) {
	ctx := c.Request.Context()
	input, ok := h.buildRegisterClusterInput(c)
	if !ok {
		return
	}
	registerUC := h.factory.RegisterCluster(input)
	cluster, err := registerUC.Execute(ctx)
	if err != nil {
		h.handleRegisterClusterError(ctx, c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data":    cluster,
		"message": "Cluster registered successfully",
	})
}

// ListClusters godoc
// @Summary List clusters for an owner
// @Description List every cluster registered under the exact owner/credential pair
// @Tags clusters
// @Accept json
// @Produce json
// @Param owner body ListClustersRequest true "Owner pair"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "invalid request body"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /clusters [post]
func (h *Handler) ListClusters(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	var req ListClustersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	listUC := h.factory.ListClusters(&uc.ListClustersInput{
		Owner:      req.Owner,
		Credential: req.Credential,
	})
	clusters, err := listUC.Execute(ctx)
	if err != nil {
		log.Error("Failed to list clusters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clusters", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"clusters": clusters,
		},
		"message": "Success",
	})
}
