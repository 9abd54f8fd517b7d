package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses the :id path parameter as an item identifier
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseYearMonth parses year and month query parameters
func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
