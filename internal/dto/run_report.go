package dto

import "time"

// UserRunResult is the outcome of one user's daily settlement run.
type UserRunResult struct {
	UserID         string `json:"userID"`
	BatchCount     int    `json:"batchCount"`
	RecordCount    int    `json:"recordCount"`
	AdvanceAmount  int64  `json:"advanceAmount"`
	RepaymentFee   int64  `json:"repaymentFee"`
	RepaymentPrice int64  `json:"repaymentPrice"`
	Error          string `json:"error,omitempty"`
}

// SettlementRunReport summarises one full daily run across users.
type SettlementRunReport struct {
	BatchDate time.Time       `json:"batchDate"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []UserRunResult `json:"results"`
}

// TotalAdvance sums the cash advanced across successful users.
func (r *SettlementRunReport) TotalAdvance() int64 {
	var total int64
	for _, res := range r.Results {
		if res.Error == "" {
			total += res.AdvanceAmount
		}
	}
	return total
}
