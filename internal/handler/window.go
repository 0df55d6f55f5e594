package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
)

// queryWindow reads the optional start_date/end_date pair shared by every
// report endpoint. Values pass through raw; bare-date widening happens at
// the repository boundary.
func queryWindow(c *gin.Context) models.TimeRange {
	return models.TimeRange{
		Start: strings.TrimSpace(c.Query("start_date")),
		End:   strings.TrimSpace(c.Query("end_date")),
	}
}
