package domain

import "time"

// FundEntryKind is the journal row type in the future-fund ledger.
//
// APPLY           a new advance drawn against the facility
// DAILY           the daily roll-forward of principal and accrued fee
// REPAYMENT_READY a waterfall repayment computed but not yet funded
// REPAYMENT       a settled repayment (funding batch was paid out)
type FundEntryKind string

const (
	FundApply          FundEntryKind = "APPLY"
	FundDaily          FundEntryKind = "DAILY"
	FundRepaymentReady FundEntryKind = "REPAYMENT_READY"
	FundRepayment      FundEntryKind = "REPAYMENT"
)

// FutureFundEntry is one append-only journal row in the revolving cash
// advance ledger. RepaymentFee and RepaymentPrice are never positive.
type FutureFundEntry struct {
	EntryID          string        `json:"entryID"`
	FundDate         time.Time     `json:"fundDate"`
	Kind             FundEntryKind `json:"kind"`
	UserID           string        `json:"userID"`
	Price            int64         `json:"price"`          // principal balance (DAILY)
	ApplyPrice       int64         `json:"applyPrice"`     // new advance (APPLY)
	AccrualFee       int64         `json:"accrualFee"`     // fee accrued today, >= 0 (DAILY)
	AccumulatedFee   int64         `json:"accumulatedFee"` // running unpaid fee, >= 0 (DAILY)
	RepaymentFee     int64         `json:"repaymentFee"`   // <= 0 (REPAYMENT*)
	RepaymentPrice   int64         `json:"repaymentPrice"` // <= 0 (REPAYMENT*)
	FundedByBatchID  *string       `json:"fundedByBatchID,omitempty"`
	AuditFields
}

// FundSums aggregates the ledger rows of one (user, date).
type FundSums struct {
	Price          int64
	ApplyPrice     int64
	AccrualFee     int64
	AccumulatedFee int64
	RepaymentFee   int64
	RepaymentPrice int64
}

// Outstanding is the principal in use after applying draws and repayments.
func (s FundSums) Outstanding() int64 {
	return s.Price + s.ApplyPrice + s.RepaymentPrice
}

// RepaymentTotal is the combined (non-positive) repayment computed by one
// waterfall pass.
type RepaymentTotal struct {
	RepaymentFee   int64 `json:"repaymentFee"`
	RepaymentPrice int64 `json:"repaymentPrice"`
}

// ApplyStatus tracks the lifecycle of an advance request.
type ApplyStatus string

const (
	ApplyReady  ApplyStatus = "READY"
	ApplyDone   ApplyStatus = "DONE"
	ApplyCancel ApplyStatus = "CANCEL"
)

// FutureFundApply is a merchant's request to draw on the facility, recorded
// with the risk metrics observed at request time.
type FutureFundApply struct {
	ApplyID           string      `json:"applyID"`
	ApplyDate         time.Time   `json:"applyDate"`
	ApplyPrice        int64       `json:"applyPrice"`
	Status            ApplyStatus `json:"status"`
	Limit             int64       `json:"limit"`             // facility limit at request time
	FundInUse         int64       `json:"fundInUse"`         // outstanding balance at request time
	AvgSalesPrice     int64       `json:"avgSalesPrice"`     // trailing 7-day daily average
	AvgSalesPriceRate float64     `json:"avgSalesPriceRate"` // change vs the 7 days before, percent
	DoneCount         int         `json:"doneCount"`         // previously completed draws
	UserID            string      `json:"userID"`
	AuditFields
}
