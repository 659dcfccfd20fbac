package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kurniadi/rcdash/internal/app/service/reconcile"
	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/response"
)

type resolveUnmappedBatchReq struct {
	Mappings []reconcile.UnmappedResolution `json:"mappings" binding:"required"`
}

// @Summary      List unmapped response codes
// @Tags         Unmapped
// @Produce      json
// @Param        application_id query int false "Filter by application"
// @Success      200 {object} response.APIResponse[[]models.UnmappedCode]
// @Router       /api/v1/unmapped-rc [get]
func ApiListUnmapped(db storage.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var appID *int64
		if raw := c.Query("application_id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				appID = &id
			}
		}
		rows, err := db.Unmapped().List(c.Request.Context(), appID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
			return
		}
		if rows == nil {
			rows = []*models.UnmappedCode{}
		}
		c.JSON(http.StatusOK, response.OK("", rows))
	}
}

// @Summary      Resolve an unmapped response code
// @Description  Adds the dictionary mapping, patches matching unclassified fact rows and removes the parked code.
// @Tags         Unmapped
// @Accept       json
// @Produce      json
// @Param        request body reconcile.UnmappedResolution true "Parked code ID and error class"
// @Success      200 {object} response.APIResponse[any]
// @Router       /api/v1/unmapped-rc/submit [post]
func ApiResolveUnmapped(svc *reconcile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reconcile.UnmappedResolution
		if err := c.ShouldBindJSON(&req); err != nil || req.ID <= 0 {
			c.JSON(http.StatusBadRequest, response.Fail("Valid id and error_type are required"))
			return
		}
		if err := svc.ResolveUnmapped(c.Request.Context(), req.ID, req.ErrorClass); err != nil {
			writeReconcileError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OK[any]("RC mapping added successfully", nil))
	}
}

// @Summary      Resolve unmapped response codes in bulk
// @Description  Items resolve independently; one failure does not roll back the rest.
// @Tags         Unmapped
// @Accept       json
// @Produce      json
// @Param        request body handlers.resolveUnmappedBatchReq true "Parked code resolutions"
// @Success      200 {object} response.APIResponse[reconcile.BatchReport]
// @Router       /api/v1/unmapped-rc/submit-batch [post]
func ApiResolveUnmappedBatch(svc *reconcile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resolveUnmappedBatchReq
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Mappings) == 0 {
			c.JSON(http.StatusBadRequest, response.Fail("At least one mapping is required"))
			return
		}
		report := svc.ResolveUnmappedBatch(c.Request.Context(), req.Mappings)
		c.JSON(http.StatusOK, response.OK("Mappings processed", report))
	}
}

func RegisterUnmappedRoutes(r gin.IRouter, db storage.DB, svc *reconcile.Service) {
	r.GET("/unmapped-rc", ApiListUnmapped(db))
	r.POST("/unmapped-rc/submit", ApiResolveUnmapped(svc))
	r.POST("/unmapped-rc/submit-batch", ApiResolveUnmappedBatch(svc))
}
