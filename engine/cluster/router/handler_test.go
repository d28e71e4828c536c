package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/cluster/store"
	"github.com/docbridge/docbridge/engine/cluster/uc"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := backend.NewMemoryConn()
	repo := store.NewRepository(conn.Database("docbridge").Collection("clusters"))
	r := gin.New()
	api := r.Group("/api/v0")
	RegisterRoutes(api, uc.NewFactory(repo))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterClusterHandler(t *testing.T) {
	t.Run("Should register a cluster and never echo the credential", func(t *testing.T) {
		r := setupRouter(t)
		w := postJSON(t, r, "/api/v0/clusters/register",
			`{"name":"west","uri":"mongodb://west.example.com:27017","owner":"ops","credential":"hunter2"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Cluster registered successfully")
		assert.Contains(t, w.Body.String(), `"id"`)
		assert.NotContains(t, w.Body.String(), "hunter2")
	})
	t.Run("Should reject a duplicate name with 400", func(t *testing.T) {
		r := setupRouter(t)
		w := postJSON(t, r, "/api/v0/clusters/register",
			`{"name":"west","uri":"mongodb://a.example.com:27017"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		w = postJSON(t, r, "/api/v0/clusters/register",
			`{"name":"west","uri":"mongodb://b.example.com:27017"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already")
	})
	t.Run("Should reject a blank name with 400", func(t *testing.T) {
		r := setupRouter(t)
		w := postJSON(t, r, "/api/v0/clusters/register", `{"uri":"mongodb://a.example.com:27017"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cluster name is required")
	})
	t.Run("Should reject a malformed body with 400", func(t *testing.T) {
		r := setupRouter(t)
		w := postJSON(t, r, "/api/v0/clusters/register", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	})
}

func TestListClustersHandler(t *testing.T) {
	t.Run("Should list clusters for a matching owner pair", func(t *testing.T) {
		r := setupRouter(t)
		w := postJSON(t, r, "/api/v0/clusters/register",
			`{"name":"west","uri":"mongodb://a.example.com:27017","owner":"ops","credential":"hunter2"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		w = postJSON(t, r, "/api/v0/clusters", `{"owner":"ops","credential":"hunter2"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "west")
		assert.NotContains(t, w.Body.String(), "hunter2")
	})
	t.Run("Should return an empty list for a mismatching pair", func(t *testing.T) {
		r := setupRouter(t)
		w := postJSON(t, r, "/api/v0/clusters/register",
			`{"name":"west","uri":"mongodb://a.example.com:27017","owner":"ops","credential":"hunter2"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		w = postJSON(t, r, "/api/v0/clusters", `{"owner":"ops","credential":"wrong"}`)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				Clusters []map[string]any `json:"clusters"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data.Clusters)
	})
}
