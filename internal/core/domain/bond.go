package domain

import (
	"fmt"
	"strings"
	"time"
)

// CardNetwork identifies the card company that owes the settlement.
type CardNetwork string

const (
	NetworkBC      CardNetwork = "BC_CARD"
	NetworkKB      CardNetwork = "KB_CARD"
	NetworkNH      CardNetwork = "NH_CARD"
	NetworkHana    CardNetwork = "HANA_CARD"
	NetworkLotte   CardNetwork = "LOTTE_CARD"
	NetworkSamsung CardNetwork = "SAMSUNG_CARD"
	NetworkShinhan CardNetwork = "SHINHAN_CARD"
	NetworkHyundae CardNetwork = "HYUNDAE_CARD"
	NetworkWoori   CardNetwork = "WOORI_CARD"
	NetworkHDO     CardNetwork = "HDO_CARD"
	NetworkCredit  CardNetwork = "CREDIT_CARD"
)

// KnownNetworks lists every card network the engine can settle against.
var KnownNetworks = []CardNetwork{
	NetworkBC, NetworkKB, NetworkNH, NetworkHana, NetworkLotte,
	NetworkSamsung, NetworkShinhan, NetworkHyundae, NetworkWoori,
	NetworkHDO, NetworkCredit,
}

// IsValid reports whether the network is one the engine knows about.
func (n CardNetwork) IsValid() bool {
	for _, known := range KnownNetworks {
		if n == known {
			return true
		}
	}
	return false
}

// CardKind distinguishes check (debit) from credit cards for rate lookup.
type CardKind string

const (
	CardKindCheck  CardKind = "CHECK"
	CardKindCredit CardKind = "CREDIT"
)

// ApprovalKind is the direction of a card event.
type ApprovalKind string

const (
	ApprovalApproved ApprovalKind = "APPROVED"
	ApprovalCancel   ApprovalKind = "CANCEL"
)

// Bond is a raw card-transaction event (a receivable against the card
// network). Bonds are supplied by ingestion and never mutated by the engine.
type Bond struct {
	BondID         string       `json:"bondID"`
	TransactionID  string       `json:"transactionID"` // dedup key, unique per user
	TransactionAt  time.Time    `json:"transactionAt"`
	CardNetwork    CardNetwork  `json:"cardNetwork"`
	CardKind       CardKind     `json:"cardKind"`
	ApprovalKind   ApprovalKind `json:"approvalKind"`
	ApprovalNumber string       `json:"approvalNumber"` // groups an approval with its cancellations
	ApprovalAmount int64        `json:"approvalAmount"` // signed; negative for cancellations
	Commission     int64        `json:"commission"`     // signed; 0 when not yet observed
	UserID         string       `json:"userID"`
	AuditFields
}

// NewTransactionID derives the deterministic dedup key for a bond.
// Cancellations omit the date so a cancellation of yesterday's approval
// collides with the same cancellation seen again today.
func NewTransactionID(transactionAt time.Time, kind ApprovalKind, approvalNumber string, amount int64) string {
	if kind == ApprovalCancel {
		return strings.Join([]string{string(kind), approvalNumber, fmt.Sprintf("%d", amount)}, "-")
	}
	return strings.Join([]string{
		transactionAt.Format(DateLayout),
		string(kind),
		approvalNumber,
		fmt.Sprintf("%d", amount),
	}, "-")
}
