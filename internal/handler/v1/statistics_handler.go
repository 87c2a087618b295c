package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/service"
)

type StatisticsHandler struct {
	stats *service.StatisticsService
}

func NewStatisticsHandler(stats *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

// Summary serves ?from=YYYY-MM-DD&to=YYYY-MM-DD; both bounds optional.
func (h *StatisticsHandler) Summary(c *gin.Context) {
	claims := currentClaims(c)

	summary, err := h.stats.Summary(c.Request.Context(), claims.UserID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, summary)
}

func (h *StatisticsHandler) DailyReport(c *gin.Context) {
	claims := currentClaims(c)

	report, err := h.stats.DailyReport(c.Request.Context(), claims.UserID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, report)
}
