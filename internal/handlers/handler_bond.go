package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
)

// bondHandler handles card-transaction ingestion.
type bondHandler struct {
	bondService portssvc.BondSvcFacade
}

func newBondHandler(bs portssvc.BondSvcFacade) *bondHandler {
	return &bondHandler{bondService: bs}
}

// registerBondRoutes registers ingestion routes.
func registerBondRoutes(rg *gin.RouterGroup, bondService portssvc.BondSvcFacade) {
	h := newBondHandler(bondService)

	bonds := rg.Group("/bonds")
	{
		bonds.POST("", h.ingestBonds)
	}
}

func (h *bondHandler) ingestBonds(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.IngestBondsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	saved, err := h.bondService.IngestBonds(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IngestBondsResponse{Received: len(req.Bonds), Saved: saved})
}
