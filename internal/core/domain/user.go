package domain

import "github.com/shopspring/decimal"

// User is a merchant on the platform.
type User struct {
	UserID          string          `json:"userID"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	PasswordHash    string          `json:"-"`
	FundFeeRate     decimal.Decimal `json:"fundFeeRate"`     // daily future-fund fee rate
	FundLimit       int64           `json:"fundLimit"`       // facility limit
	SettlementsOn   bool            `json:"settlementsOn"`   // included in the daily batch run
	AuditFields
}
