package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
)

// reportingHandler handles operator-facing reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/fund-done-counts", h.fundDoneCounts)
	}
}

func (h *reportingHandler) fundDoneCounts(c *gin.Context) {
	rows, err := h.reportingService.FundDoneCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
