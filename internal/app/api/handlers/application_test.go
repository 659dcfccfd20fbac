package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appsvc "github.com/kurniadi/rcdash/internal/app/service/application"
	"github.com/kurniadi/rcdash/internal/storage/memstore"
)

func newApplicationRouter(db *memstore.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterApplicationRoutes(r.Group("/api/v1"), appsvc.NewService(db, zap.NewNop().Sugar()))
	return r
}

func TestApiCreateApplication_DuplicateName(t *testing.T) {
	db := memstore.New()
	db.SeedApplication("QRIS")
	r := newApplicationRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewBufferString(`{"appName":"QRIS"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "already exists")
}

func TestApiCreateAndListApplications(t *testing.T) {
	db := memstore.New()
	r := newApplicationRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewBufferString(`{"appName":"EDC Agent"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "EDC Agent")
}

func TestApiDeleteApplication_NotFound(t *testing.T) {
	db := memstore.New()
	r := newApplicationRouter(db)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/applications/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
