package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/apperrors"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/utils"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	defaultRate := decimal.NewFromFloat(0.001)

	t.Run("stores a hashed password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewUserService(userRepo, defaultRate)

		var saved domain.User
		userRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
			Return(nil)

		user, err := svc.CreateUser(ctx, dto.CreateUserRequest{
			Email:       "owner@store.kr",
			Name:        "Store Owner",
			Password:    "plaintext-secret",
			FundFeeRate: decimal.NewFromFloat(0.002),
			FundLimit:   1000000,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.Equal(t, "owner@store.kr", saved.Email)
		assert.NotEqual(t, "plaintext-secret", saved.PasswordHash)
		assert.True(t, utils.CheckPasswordHash("plaintext-secret", saved.PasswordHash))
		assert.True(t, saved.FundFeeRate.Equal(decimal.NewFromFloat(0.002)))
	})

	t.Run("applies the default fee rate when none is given", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewUserService(userRepo, defaultRate)

		var saved domain.User
		userRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
			Return(nil)

		_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
			Email:    "owner@store.kr",
			Name:     "Store Owner",
			Password: "plaintext-secret",
		})

		require.NoError(t, err)
		assert.True(t, saved.FundFeeRate.Equal(defaultRate))
	})
}

func TestUserService_AuthenticateUser(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	t.Run("valid credentials return the user", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewUserService(userRepo, decimal.NewFromFloat(0.001))

		userRepo.On("FindUserByEmail", ctx, "owner@store.kr").Return(&domain.User{
			UserID:       "user-1",
			Email:        "owner@store.kr",
			PasswordHash: hash,
		}, nil)

		user, err := svc.AuthenticateUser(ctx, "owner@store.kr", "correct-password")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UserID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewUserService(userRepo, decimal.NewFromFloat(0.001))

		userRepo.On("FindUserByEmail", ctx, "owner@store.kr").Return(&domain.User{
			UserID:       "user-1",
			PasswordHash: hash,
		}, nil)

		_, err := svc.AuthenticateUser(ctx, "owner@store.kr", "wrong-password")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("unknown email reports the same error as a bad password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewUserService(userRepo, decimal.NewFromFloat(0.001))

		userRepo.On("FindUserByEmail", ctx, "nobody@store.kr").
			Return(nil, fmt.Errorf("%w: user", apperrors.ErrNotFound))

		_, err := svc.AuthenticateUser(ctx, "nobody@store.kr", "whatever")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
