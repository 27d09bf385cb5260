package domain

import "time"

// BatchDaySum is the per-batch-date aggregate of one user's settlement
// batches.
type BatchDaySum struct {
	BatchDate         time.Time `json:"batchDate"`
	SalesPrice        int64     `json:"salesPrice"`
	CardCommission    int64     `json:"cardCommission"`
	ServiceCommission int64     `json:"serviceCommission"`
	Setoff            int64     `json:"setoff"`
}

// NetAdvance is the cash advanced for the day.
func (s BatchDaySum) NetAdvance() int64 {
	return s.SalesPrice + s.CardCommission + s.ServiceCommission + s.Setoff
}

// FundDaySum is the per-fund-date aggregate of one user's settled ledger
// rows.
type FundDaySum struct {
	FundDate       time.Time `json:"fundDate"`
	Price          int64     `json:"price"`
	ApplyPrice     int64     `json:"applyPrice"`
	AccrualFee     int64     `json:"accrualFee"`
	AccumulatedFee int64     `json:"accumulatedFee"`
	RepaymentFee   int64     `json:"repaymentFee"`
	RepaymentPrice int64     `json:"repaymentPrice"`
}

// FundFlow is the (user, date) apply/repayment pair used by the done-count
// metric.
type FundFlow struct {
	UserID         string
	FundDate       time.Time
	ApplyPrice     int64
	RepaymentPrice int64
}

// FundDoneCount pairs draw amounts against repayment amounts in date order
// and counts how many draws have been fully repaid. Each list is consumed
// front to back; a draw completes when its remaining amount reaches zero.
func FundDoneCount(applyPrices, repaymentPrices []int64) int {
	applies := append([]int64(nil), applyPrices...)
	repayments := append([]int64(nil), repaymentPrices...)

	next := func(list *[]int64) int64 {
		if len(*list) == 0 {
			return 0
		}
		head := (*list)[0]
		*list = (*list)[1:]
		return head
	}

	apply := next(&applies)
	repayment := next(&repayments)
	done := 0

	for len(repayments) > 0 {
		switch remaining := apply + repayment; {
		case remaining > 0:
			apply += repayment
			repayment = next(&repayments)
		case remaining == 0:
			apply = next(&applies)
			repayment = next(&repayments)
			done++
		default:
			repayment += apply
			apply = next(&applies)
			done++
		}
	}

	return done
}
