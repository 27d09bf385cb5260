package repositories

import (
	"context"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// UserReader defines read operations for merchant data.
type UserReader interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email (login).
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListSettlementUsers returns the users included in the daily batch
	// run.
	ListSettlementUsers(ctx context.Context) ([]domain.User, error)

	// ListUsers returns every merchant. The daily accrual covers all of
	// them, enrolled in settlements or not.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for merchant data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
