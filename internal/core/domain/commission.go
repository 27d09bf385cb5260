package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceFeeRatePerDay is the time-value fee charged per outstanding day
// (0.1%).
var ServiceFeeRatePerDay = decimal.NewFromFloat(0.001)

// CardCommission returns the (non-positive) card-network fee for a sale.
// When the source data already carries an observed commission it is returned
// unchanged; otherwise the fee is floor(salesPrice * rate) * -1 using the
// check or credit rate for the network.
func CardCommission(salesPrice int64, knownCommission int64, kind CardKind, rate CardRate) int64 {
	if knownCommission != 0 {
		return knownCommission
	}

	r := rate.Credit
	if kind == CardKindCheck {
		r = rate.Check
	}
	return decimal.NewFromInt(salesPrice).Mul(r).Floor().IntPart() * -1
}

// ServiceCommissionResult carries the outstanding-day count alongside the
// computed fee. OutstandingDays of 0 means the sale has no time value to
// sell and must not be advanced.
type ServiceCommissionResult struct {
	OutstandingDays int
	Fee             int64
}

// OutstandingDays measures how many whole days an advance requested at
// requestAt stays outstanding before the network pays: the settlement due
// date is transactionAt plus the walked settlement offset (end of day), and
// the count runs from requestAt's date up to that date exclusive.
func OutstandingDays(transactionAt, requestAt time.Time, cfg NetworkConfig, holidays HolidaySet) int {
	offset := SettlementDayOffset(transactionAt, cfg.RequiredSettlementDays, holidays, cfg.Mode)
	dueDate := transactionAt.AddDate(0, 0, offset)
	return DaysBetweenExclusiveEnd(requestAt, dueDate)
}

// ServiceCommission computes the time-value fee for advancing one sale:
// floor((salesPrice + cardCommission) * rate * outstandingDays) * -1.
// cardCommission must be non-positive.
func ServiceCommission(transactionAt, requestAt time.Time, salesPrice, cardCommission int64, cfg NetworkConfig, holidays HolidaySet) ServiceCommissionResult {
	days := OutstandingDays(transactionAt, requestAt, cfg, holidays)

	rate := ServiceFeeRatePerDay.Mul(decimal.NewFromInt(int64(days)))
	fee := decimal.NewFromInt(salesPrice + cardCommission).Mul(rate).Floor().IntPart() * -1

	return ServiceCommissionResult{OutstandingDays: days, Fee: fee}
}
