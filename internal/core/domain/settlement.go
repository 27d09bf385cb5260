package domain

import "time"

// SettlementStatus is the lifecycle state of a settlement record or batch.
//
// READY        advance computed, not yet paid out
// SETOFF       reversal offsetting a previously collected advance
// DEPOSIT_DONE advance paid out to the merchant
// DONE         card-network money received, batch closed
type SettlementStatus string

const (
	StatusReady       SettlementStatus = "READY"
	StatusSetoff      SettlementStatus = "SETOFF"
	StatusDepositDone SettlementStatus = "DEPOSIT_DONE"
	StatusDone        SettlementStatus = "DONE"
)

// allowed transitions; SETOFF is assigned at build time and terminal.
var settlementTransitions = map[SettlementStatus][]SettlementStatus{
	StatusReady:       {StatusDepositDone},
	StatusDepositDone: {StatusDone},
}

// CanTransitionTo reports whether moving from s to next is a legal status
// change.
func (s SettlementStatus) CanTransitionTo(next SettlementStatus) bool {
	for _, allowed := range settlementTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsPaid reports whether money has already moved for this status; paid
// batches are never deleted and rebuilt.
func (s SettlementStatus) IsPaid() bool {
	return s == StatusDepositDone || s == StatusDone
}

// SettlementRecord is one processed bond: the per-transaction advance or
// reversal posted on a batch date.
type SettlementRecord struct {
	RecordID          string           `json:"recordID"`
	BondID            string           `json:"bondID"`
	TransactionID     string           `json:"transactionID"`
	BatchDate         time.Time        `json:"batchDate"` // day the advance/reversal is posted
	Status            SettlementStatus `json:"status"`
	SalesPrice        int64            `json:"salesPrice"`
	CardCommission    int64            `json:"cardCommission"`
	ServiceCommission int64            `json:"serviceCommission"`
	AdvanceDays       int              `json:"advanceDays"`
	CardNetwork       CardNetwork      `json:"cardNetwork"`
	ApprovalKind      ApprovalKind     `json:"approvalKind"`
	ApprovalNumber    string           `json:"approvalNumber"`
	TransactionAt     time.Time        `json:"transactionAt"`
	UserID            string           `json:"userID"`
	BatchID           string           `json:"batchID"`
}

// SettlementBatch aggregates one user's records for one card network and one
// sales date. Sums cover READY records only; setoff carries the net reversal
// amount of SETOFF records.
type SettlementBatch struct {
	BatchID           string           `json:"batchID"`
	BatchDate         time.Time        `json:"batchDate"`
	SalesDate         time.Time        `json:"salesDate"`
	SettlementDueDate time.Time        `json:"settlementDueDate"` // day the network actually pays
	Status            SettlementStatus `json:"status"`
	CardNetwork       CardNetwork      `json:"cardNetwork"`
	SalesPrice        int64            `json:"salesPrice"`
	CardCommission    int64            `json:"cardCommission"`
	ServiceCommission int64            `json:"serviceCommission"`
	Setoff            int64            `json:"setoff"`
	UserID            string           `json:"userID"`
	AdvancedAt        *time.Time       `json:"advancedAt,omitempty"`
	CollectedAt       *time.Time       `json:"collectedAt,omitempty"`
}

// NetDeposit is the cash that actually moves for the batch: gross sales net
// of both commissions and any setoff.
func (b SettlementBatch) NetDeposit() int64 {
	return b.SalesPrice + b.CardCommission + b.ServiceCommission + b.Setoff
}

// CollectibleAmount is what the card network will pay for the batch (the
// service commission is the house's margin, not the network's).
func (b SettlementBatch) CollectibleAmount() int64 {
	return b.SalesPrice + b.CardCommission + b.Setoff
}
