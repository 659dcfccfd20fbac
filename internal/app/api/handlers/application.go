package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appsvc "github.com/kurniadi/rcdash/internal/app/service/application"
	"github.com/kurniadi/rcdash/pkg/response"
)

type createApplicationReq struct {
	AppName string `json:"appName" binding:"required"`
}

// @Summary      List applications
// @Tags         Application
// @Produce      json
// @Success      200 {object} response.APIResponse[[]models.Application]
// @Router       /api/v1/applications [get]
func ApiListApplications(svc *appsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		apps, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OK("", apps))
	}
}

// @Summary      Add application
// @Tags         Application
// @Accept       json
// @Produce      json
// @Param        request body handlers.createApplicationReq true "Application name"
// @Success      200 {object} response.APIResponse[models.Application]
// @Router       /api/v1/applications [post]
func ApiCreateApplication(svc *appsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createApplicationReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Fail("Application name is required"))
			return
		}
		app, err := svc.Create(c.Request.Context(), req.AppName)
		if err != nil {
			switch {
			case errors.Is(err, appsvc.ErrBlankName):
				c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
			case errors.Is(err, appsvc.ErrDuplicateName):
				c.JSON(http.StatusConflict, response.Fail("Application name already exists"))
			default:
				c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
			}
			return
		}
		c.JSON(http.StatusOK, response.OK("Application added successfully", app))
	}
}

// @Summary      Delete application
// @Description  Removes an application and, via cascade, its dictionary entries, fact rows and parked codes.
// @Tags         Application
// @Produce      json
// @Param        id path int true "Application ID"
// @Success      200 {object} response.APIResponse[any]
// @Router       /api/v1/applications/{id} [delete]
func ApiDeleteApplication(svc *appsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, response.Fail("Valid application ID is required"))
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, appsvc.ErrNotFound) {
				c.JSON(http.StatusNotFound, response.Fail(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OK[any]("Application deleted successfully", nil))
	}
}

func RegisterApplicationRoutes(r gin.IRouter, svc *appsvc.Service) {
	r.GET("/applications", ApiListApplications(svc))
	r.POST("/applications", ApiCreateApplication(svc))
	r.DELETE("/applications/:id", ApiDeleteApplication(svc))
}
