package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kurniadi/rcdash/internal/app/service/reconcile"
	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/response"
)

type noRCListResp struct {
	Transactions []*models.SuccessRateFact `json:"transactions"`
	Total        int64                     `json:"total"`
}

type assignRCReq struct {
	ID          int64   `json:"id" binding:"required"`
	RC          string  `json:"rc" binding:"required"`
	Description *string `json:"rc_description"`
}

// @Summary      List transactions without a response code
// @Description  The operator queue: fact rows with no RC whose status is not a success alias.
// @Tags         NoRC
// @Produce      json
// @Param        application_id query int false "Filter by application"
// @Param        offset         query int false "Pagination offset"
// @Param        limit          query int false "Pagination limit"
// @Success      200 {object} response.APIResponse[handlers.noRCListResp]
// @Router       /api/v1/no-rc-transaction [get]
func ApiListNoRC(db storage.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, total, err := db.Facts().ListNoRC(c.Request.Context(), listParamsFromQuery(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
			return
		}
		if rows == nil {
			rows = []*models.SuccessRateFact{}
		}
		c.JSON(http.StatusOK, response.OK("", noRCListResp{Transactions: rows, Total: total}))
	}
}

// @Summary      Assign a response code to a fact row
// @Description  Writes the code onto the row and classifies it immediately; a dictionary miss parks the code for mapping.
// @Tags         NoRC
// @Accept       json
// @Produce      json
// @Param        request body handlers.assignRCReq true "Fact row ID, RC and optional description"
// @Success      200 {object} response.APIResponse[any]
// @Router       /api/v1/no-rc-transaction/submit [post]
func ApiAssignRC(svc *reconcile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignRCReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Fail("ID and RC are required"))
			return
		}
		if err := svc.AssignRC(c.Request.Context(), req.ID, req.RC, req.Description); err != nil {
			writeReconcileError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OK[any]("RC has been assigned successfully", nil))
	}
}

func RegisterNoRCRoutes(r gin.IRouter, db storage.DB, svc *reconcile.Service) {
	r.GET("/no-rc-transaction", ApiListNoRC(db))
	r.POST("/no-rc-transaction/submit", ApiAssignRC(svc))
}
