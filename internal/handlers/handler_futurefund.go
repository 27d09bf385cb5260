package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
)

// futureFundHandler handles fund ledger queries, manual repayments and draw
// requests.
type futureFundHandler struct {
	fundService  portssvc.FutureFundSvcFacade
	applyService portssvc.ApplySvcFacade
}

func newFutureFundHandler(fs portssvc.FutureFundSvcFacade, as portssvc.ApplySvcFacade) *futureFundHandler {
	return &futureFundHandler{
		fundService:  fs,
		applyService: as,
	}
}

// registerFutureFundRoutes registers fund ledger and draw request routes.
func registerFutureFundRoutes(rg *gin.RouterGroup, fundService portssvc.FutureFundSvcFacade, applyService portssvc.ApplySvcFacade) {
	h := newFutureFundHandler(fundService, applyService)

	fund := rg.Group("/future-fund")
	{
		fund.GET("/summary", h.fundSummary)
		fund.GET("/daily", h.dailySummary)
		fund.POST("/repayments", h.manualRepayment)

		applies := fund.Group("/applies")
		{
			applies.POST("", h.createApply)
			applies.GET("", h.listApplies)
			applies.POST("/approve", h.approveApplies)
			applies.POST("/cancel", h.cancelApplies)
		}
	}
}

func (h *futureFundHandler) fundSummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.fundService.GetFundSummary(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *futureFundHandler) dailySummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := time.Parse(domain.DateLayout, params.From)
	to, _ := time.Parse(domain.DateLayout, params.To)

	sums, err := h.fundService.GetDailySummary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFundDaySumResponses(sums))
}

func (h *futureFundHandler) manualRepayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ManualRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.fundService.RecordManualRepayment(c.Request.Context(), userID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *futureFundHandler) createApply(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	apply, err := h.applyService.CreateApply(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToApplyResponse(apply))
}

func (h *futureFundHandler) listApplies(c *gin.Context) {
	var params dto.ListAppliesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	date := time.Now().UTC()
	if params.Date != "" {
		date, _ = time.Parse(domain.DateLayout, params.Date)
	}

	applies, err := h.applyService.ListApplies(c.Request.Context(), domain.ApplyStatus(params.Status), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListApplyResponse(applies))
}

func (h *futureFundHandler) approveApplies(c *gin.Context) {
	h.updateApplies(c, h.applyService.ApproveApplies)
}

func (h *futureFundHandler) cancelApplies(c *gin.Context) {
	h.updateApplies(c, h.applyService.CancelApplies)
}

func (h *futureFundHandler) updateApplies(c *gin.Context, update func(ctx context.Context, applyIDs []string, updatedBy string) error) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ApplyIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := update(c.Request.Context(), req.ApplyIDs, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
