package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a positive path parameter that fits the INTEGER id columns.
func ParseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}

// ParsePagination reads limit/offset query params, falling back on bad input.
// Upper bounds are enforced by the services.
func ParsePagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
