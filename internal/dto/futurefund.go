package dto

import (
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// ManualRepaymentRequest defines an out-of-band repayment posted by an
// operator.
type ManualRepaymentRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Memo   string `json:"memo"`
}

// FundSummaryResponse is the user's settled fund position on a date.
type FundSummaryResponse struct {
	FundDate       time.Time `json:"fundDate"`
	Price          int64     `json:"price"`
	ApplyPrice     int64     `json:"applyPrice"`
	AccrualFee     int64     `json:"accrualFee"`
	AccumulatedFee int64     `json:"accumulatedFee"`
	RepaymentFee   int64     `json:"repaymentFee"`
	RepaymentPrice int64     `json:"repaymentPrice"`
	Outstanding    int64     `json:"outstanding"`
}

// FundDaySumResponse defines the per-day fund ledger aggregate.
type FundDaySumResponse struct {
	FundDate       time.Time `json:"fundDate"`
	Price          int64     `json:"price"`
	ApplyPrice     int64     `json:"applyPrice"`
	AccrualFee     int64     `json:"accrualFee"`
	AccumulatedFee int64     `json:"accumulatedFee"`
	RepaymentFee   int64     `json:"repaymentFee"`
	RepaymentPrice int64     `json:"repaymentPrice"`
}

// ToFundDaySumResponses converts domain day sums to DTOs.
func ToFundDaySumResponses(sums []domain.FundDaySum) []FundDaySumResponse {
	res := make([]FundDaySumResponse, len(sums))
	for i, s := range sums {
		res[i] = FundDaySumResponse{
			FundDate:       s.FundDate,
			Price:          s.Price,
			ApplyPrice:     s.ApplyPrice,
			AccrualFee:     s.AccrualFee,
			AccumulatedFee: s.AccumulatedFee,
			RepaymentFee:   s.RepaymentFee,
			RepaymentPrice: s.RepaymentPrice,
		}
	}
	return res
}

// CreateApplyRequest defines the data needed to request a fund draw.
type CreateApplyRequest struct {
	ApplyPrice int64 `json:"applyPrice" binding:"required,gt=0"`
}

// ApplyIDsRequest carries the apply IDs for approve and cancel operations.
type ApplyIDsRequest struct {
	ApplyIDs []string `json:"applyIDs" binding:"required,min=1"`
}

// ListAppliesParams defines query parameters for listing fund draw requests.
type ListAppliesParams struct {
	Status string `form:"status" binding:"required,oneof=READY DONE CANCEL"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ApplyResponse defines the data returned for a fund draw request.
type ApplyResponse struct {
	ApplyID           string    `json:"applyID"`
	UserID            string    `json:"userID"`
	ApplyDate         time.Time `json:"applyDate"`
	ApplyPrice        int64     `json:"applyPrice"`
	Status            string    `json:"status"`
	Limit             int64     `json:"limit"`
	FundInUse         int64     `json:"fundInUse"`
	AvgSalesPrice     int64     `json:"avgSalesPrice"`
	AvgSalesPriceRate float64   `json:"avgSalesPriceRate"`
	DoneCount         int       `json:"doneCount"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToApplyResponse converts a domain.FutureFundApply to ApplyResponse DTO.
func ToApplyResponse(a *domain.FutureFundApply) ApplyResponse {
	return ApplyResponse{
		ApplyID:           a.ApplyID,
		UserID:            a.UserID,
		ApplyDate:         a.ApplyDate,
		ApplyPrice:        a.ApplyPrice,
		Status:            string(a.Status),
		Limit:             a.Limit,
		FundInUse:         a.FundInUse,
		AvgSalesPrice:     a.AvgSalesPrice,
		AvgSalesPriceRate: a.AvgSalesPriceRate,
		DoneCount:         a.DoneCount,
		CreatedAt:         a.CreatedAt,
	}
}

// ToListApplyResponse converts a slice of domain.FutureFundApply to DTOs.
func ToListApplyResponse(applies []domain.FutureFundApply) []ApplyResponse {
	res := make([]ApplyResponse, len(applies))
	for i, a := range applies {
		res[i] = ToApplyResponse(&a)
	}
	return res
}
