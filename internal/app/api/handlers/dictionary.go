package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kurniadi/rcdash/internal/app/service/reconcile"
	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/response"
	"github.com/kurniadi/rcdash/pkg/types"
)

type dictionaryListResp struct {
	Entries []*models.DictionaryEntry `json:"entries"`
	Total   int64                     `json:"total"`
}

type updateDictionaryClassReq struct {
	ID         int64            `json:"id" binding:"required"`
	ErrorClass types.ErrorClass `json:"error_type" binding:"required"`
}

type updateDictionaryDescriptionReq struct {
	ID          int64   `json:"id" binding:"required"`
	Description *string `json:"rc_description"`
}

type updateDictionaryDescriptionBatchReq struct {
	Updates []reconcile.DescriptionUpdate `json:"updates" binding:"required"`
}

// @Summary      List dictionary entries
// @Tags         Dictionary
// @Produce      json
// @Param        application_id query int false "Filter by application"
// @Param        offset         query int false "Pagination offset"
// @Param        limit          query int false "Pagination limit"
// @Success      200 {object} response.APIResponse[handlers.dictionaryListResp]
// @Router       /api/v1/dictionary [get]
func ApiListDictionary(db storage.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, total, err := db.Dictionary().List(c.Request.Context(), listParamsFromQuery(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OK("", dictionaryListResp{Entries: entries, Total: total}))
	}
}

// @Summary      Update a dictionary entry's error class
// @Description  Changes the classification and patches every still-unclassified fact row sharing the entry's key.
// @Tags         Dictionary
// @Accept       json
// @Produce      json
// @Param        request body handlers.updateDictionaryClassReq true "Entry ID and new class"
// @Success      200 {object} response.APIResponse[any]
// @Router       /api/v1/dictionary [patch]
func ApiUpdateDictionaryClass(svc *reconcile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateDictionaryClassReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Fail("Valid dictionary entry ID and error_type are required"))
			return
		}
		if err := svc.UpdateDictionaryClass(c.Request.Context(), req.ID, req.ErrorClass); err != nil {
			writeReconcileError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OK[any]("Dictionary entry updated successfully", nil))
	}
}

// @Summary      Update a dictionary entry's description
// @Description  Edits the description and propagates it onto every fact row sharing the entry's key.
// @Tags         Dictionary
// @Accept       json
// @Produce      json
// @Param        request body handlers.updateDictionaryDescriptionReq true "Entry ID and new description"
// @Success      200 {object} response.APIResponse[any]
// @Router       /api/v1/dictionary/description [patch]
func ApiUpdateDictionaryDescription(svc *reconcile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateDictionaryDescriptionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Fail("Valid dictionary entry ID is required"))
			return
		}
		if err := svc.UpdateDictionaryDescription(c.Request.Context(), req.ID, req.Description); err != nil {
			writeReconcileError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OK[any]("Description updated successfully", nil))
	}
}

// @Summary      Update descriptions in bulk
// @Tags         Dictionary
// @Accept       json
// @Produce      json
// @Param        request body handlers.updateDictionaryDescriptionBatchReq true "Description updates"
// @Success      200 {object} response.APIResponse[reconcile.BatchReport]
// @Router       /api/v1/dictionary/description-batch [post]
func ApiUpdateDictionaryDescriptionBatch(svc *reconcile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateDictionaryDescriptionBatchReq
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Updates) == 0 {
			c.JSON(http.StatusBadRequest, response.Fail("At least one update is required"))
			return
		}
		report := svc.UpdateDictionaryDescriptionBatch(c.Request.Context(), req.Updates)
		c.JSON(http.StatusOK, response.OK("Descriptions updated", report))
	}
}

func writeReconcileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reconcile.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Fail(err.Error()))
	case errors.Is(err, reconcile.ErrInvalidErrorClass), errors.Is(err, reconcile.ErrBlankRC):
		c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
	}
}

func RegisterDictionaryRoutes(r gin.IRouter, db storage.DB, svc *reconcile.Service) {
	r.GET("/dictionary", ApiListDictionary(db))
	r.PATCH("/dictionary", ApiUpdateDictionaryClass(svc))
	r.PATCH("/dictionary/description", ApiUpdateDictionaryDescription(svc))
	r.POST("/dictionary/description-batch", ApiUpdateDictionaryDescriptionBatch(svc))
}
