package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
)

// settlementHandler handles settlement batch queries and lifecycle changes.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
	driverService     portssvc.SettlementDriverSvc
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade, ds portssvc.SettlementDriverSvc) *settlementHandler {
	return &settlementHandler{
		settlementService: ss,
		driverService:     ds,
	}
}

// registerSettlementRoutes registers settlement routes.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade, driverService portssvc.SettlementDriverSvc) {
	h := newSettlementHandler(settlementService, driverService)

	settlements := rg.Group("/settlements")
	{
		settlements.POST("/run", h.runAll)
		settlements.GET("/batches", h.listBatches)
		settlements.GET("/batches/today", h.todayBatches)
		settlements.PATCH("/batches/status", h.updateBatchStatus)
		settlements.GET("/summary", h.dailySummary)
	}
}

// runAll triggers the daily run for every enrolled user. The scheduled batch
// binary calls the same driver; this endpoint exists for operator reruns.
func (h *settlementHandler) runAll(c *gin.Context) {
	report, err := h.driverService.RunAll(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// todayBatches returns the caller's batches posted today, or on the optional
// date query parameter.
func (h *settlementHandler) todayBatches(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.BatchDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	batchDate := time.Now().UTC()
	if params.Date != "" {
		batchDate, _ = time.Parse(domain.DateLayout, params.Date)
	}

	batches, err := h.settlementService.GetBatchesForDate(c.Request.Context(), userID, batchDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBatchResponse(batches))
}

func (h *settlementHandler) listBatches(c *gin.Context) {
	var params dto.ListBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := time.Parse(domain.DateLayout, params.From)
	to, _ := time.Parse(domain.DateLayout, params.To)

	batches, err := h.settlementService.ListBatchesByStatus(c.Request.Context(), domain.SettlementStatus(params.Status), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBatchResponse(batches))
}

func (h *settlementHandler) updateBatchStatus(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateBatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.settlementService.UpdateBatchStatus(c.Request.Context(), req.BatchIDs, domain.SettlementStatus(req.Status), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *settlementHandler) dailySummary(c *gin.Context) {
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

	sums, err := h.settlementService.GetDailySummary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchDaySumResponses(sums))
}
