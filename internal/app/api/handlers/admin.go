package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kurniadi/rcdash/internal/storage/gormstore"
	"github.com/kurniadi/rcdash/pkg/response"
)

// @Summary      Database status
// @Tags         Admin
// @Produce      json
// @Success      200 {object} response.APIResponse[map[string]string]
// @Router       /api/v1/admin/db-status [get]
func ApiDBStatus(db *gormstore.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, response.FailT("Database connection failed", map[string]string{"status": "disconnected"}))
			return
		}
		c.JSON(http.StatusOK, response.OK("Database connection successful", map[string]string{"status": "connected"}))
	}
}

// @Summary      Reset database
// @Description  Drops and recreates every table, then reseeds the default applications. All uploaded data is lost.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} response.APIResponse[any]
// @Router       /api/v1/admin/reset-db [post]
func ApiResetDB(db *gormstore.DB, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Reset(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
			return
		}
		log.Warnw("database reset", "client_ip", c.ClientIP())
		c.JSON(http.StatusOK, response.OK[any]("Database reset successfully", nil))
	}
}

func RegisterAdminRoutes(r gin.IRouter, db *gormstore.DB, log *zap.SugaredLogger) {
	r.GET("/db-status", ApiDBStatus(db))
	r.POST("/reset-db", ApiResetDB(db, log))
}
