package dto

import (
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines the data needed to register a merchant.
type CreateUserRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Name        string          `json:"name" binding:"required"`
	Password    string          `json:"password" binding:"required,min=8"`
	FundFeeRate decimal.Decimal `json:"fundFeeRate"`
	FundLimit   int64           `json:"fundLimit" binding:"gte=0"`
}

// LoginRequest defines the credentials for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserResponse defines the data returned for a merchant.
type UserResponse struct {
	UserID        string          `json:"userID"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	FundFeeRate   decimal.Decimal `json:"fundFeeRate"`
	FundLimit     int64           `json:"fundLimit"`
	SettlementsOn bool            `json:"settlementsOn"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		FundFeeRate:   u.FundFeeRate,
		FundLimit:     u.FundLimit,
		SettlementsOn: u.SettlementsOn,
		CreatedAt:     u.CreatedAt,
	}
}
