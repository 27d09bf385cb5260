package dto

import (
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// BondPayload is one card transaction as delivered by a scraping source.
type BondPayload struct {
	TransactionAt  time.Time          `json:"transactionAt" binding:"required"`
	CardNetwork    domain.CardNetwork `json:"cardNetwork" binding:"required,cardnetwork"`
	CardKind       domain.CardKind    `json:"cardKind" binding:"required,oneof=CHECK CREDIT"`
	ApprovalKind   domain.ApprovalKind `json:"approvalKind" binding:"required,oneof=APPROVED CANCEL"`
	ApprovalNumber string             `json:"approvalNumber" binding:"required"`
	ApprovalAmount int64              `json:"approvalAmount" binding:"required"`
	Commission     int64              `json:"commission"`
}

// IngestBondsRequest defines the data needed to ingest card transactions.
type IngestBondsRequest struct {
	Bonds []BondPayload `json:"bonds" binding:"required,min=1,dive"`
}

// IngestBondsResponse reports how many of the submitted rows were new.
type IngestBondsResponse struct {
	Received int `json:"received"`
	Saved    int `json:"saved"`
}
