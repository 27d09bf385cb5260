package dto

import (
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// ListBatchesParams defines query parameters for listing settlement batches.
type ListBatchesParams struct {
	Status string `form:"status" binding:"required,oneof=READY SETOFF DEPOSIT_DONE DONE"`
	From   string `form:"from" binding:"required,datetime=2006-01-02"`
	To     string `form:"to" binding:"required,datetime=2006-01-02"`
}

// UpdateBatchStatusRequest defines the data needed to move batches along
// their lifecycle.
type UpdateBatchStatusRequest struct {
	BatchIDs []string `json:"batchIDs" binding:"required,min=1"`
	Status   string   `json:"status" binding:"required,oneof=DEPOSIT_DONE DONE"`
}

// BatchResponse defines the data returned for a settlement batch.
type BatchResponse struct {
	BatchID           string     `json:"batchID"`
	UserID            string     `json:"userID"`
	BatchDate         time.Time  `json:"batchDate"`
	SalesDate         time.Time  `json:"salesDate"`
	SettlementDueDate time.Time  `json:"settlementDueDate"`
	Status            string     `json:"status"`
	CardNetwork       string     `json:"cardNetwork"`
	SalesPrice        int64      `json:"salesPrice"`
	CardCommission    int64      `json:"cardCommission"`
	ServiceCommission int64      `json:"serviceCommission"`
	Setoff            int64      `json:"setoff"`
	NetDeposit        int64      `json:"netDeposit"`
	AdvancedAt        *time.Time `json:"advancedAt,omitempty"`
	CollectedAt       *time.Time `json:"collectedAt,omitempty"`
}

// ToBatchResponse converts a domain.SettlementBatch to BatchResponse DTO.
func ToBatchResponse(b *domain.SettlementBatch) BatchResponse {
	return BatchResponse{
		BatchID:           b.BatchID,
		UserID:            b.UserID,
		BatchDate:         b.BatchDate,
		SalesDate:         b.SalesDate,
		SettlementDueDate: b.SettlementDueDate,
		Status:            string(b.Status),
		CardNetwork:       string(b.CardNetwork),
		SalesPrice:        b.SalesPrice,
		CardCommission:    b.CardCommission,
		ServiceCommission: b.ServiceCommission,
		Setoff:            b.Setoff,
		NetDeposit:        b.NetDeposit(),
		AdvancedAt:        b.AdvancedAt,
		CollectedAt:       b.CollectedAt,
	}
}

// ToListBatchResponse converts a slice of domain.SettlementBatch to DTOs.
func ToListBatchResponse(batches []domain.SettlementBatch) []BatchResponse {
	res := make([]BatchResponse, len(batches))
	for i, b := range batches {
		res[i] = ToBatchResponse(&b)
	}
	return res
}

// BatchDaySumResponse defines the per-day settlement aggregate.
type BatchDaySumResponse struct {
	BatchDate         time.Time `json:"batchDate"`
	SalesPrice        int64     `json:"salesPrice"`
	CardCommission    int64     `json:"cardCommission"`
	ServiceCommission int64     `json:"serviceCommission"`
	Setoff            int64     `json:"setoff"`
	NetAdvance        int64     `json:"netAdvance"`
}

// ToBatchDaySumResponses converts domain day sums to DTOs.
func ToBatchDaySumResponses(sums []domain.BatchDaySum) []BatchDaySumResponse {
	res := make([]BatchDaySumResponse, len(sums))
	for i, s := range sums {
		res[i] = BatchDaySumResponse{
			BatchDate:         s.BatchDate,
			SalesPrice:        s.SalesPrice,
			CardCommission:    s.CardCommission,
			ServiceCommission: s.ServiceCommission,
			Setoff:            s.Setoff,
			NetAdvance:        s.NetAdvance(),
		}
	}
	return res
}

// BatchDateParams defines the optional batch date for today-style queries.
type BatchDateParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// DateRangeParams defines a from/to query pair shared by summary endpoints.
type DateRangeParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}
