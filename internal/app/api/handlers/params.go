package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kurniadi/rcdash/internal/storage"
)

const defaultPageLimit = 100

func listParamsFromQuery(c *gin.Context) storage.ListParams {
	p := storage.ListParams{Limit: defaultPageLimit}
	if raw := c.Query("application_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			p.ApplicationID = &id
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Offset = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Limit = v
		}
	}
	return p
}
