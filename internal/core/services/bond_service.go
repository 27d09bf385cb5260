package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/apperrors"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
)

// bondService ingests card transactions.
type bondService struct {
	bondRepo portsrepo.BondRepositoryFacade
}

// NewBondService creates a new bond service.
func NewBondService(bondRepo portsrepo.BondRepositoryFacade) portssvc.BondSvcFacade {
	return &bondService{bondRepo: bondRepo}
}

var _ portssvc.BondSvcFacade = (*bondService)(nil)

// IngestBonds saves the submitted transactions for the user. Each row gets a
// deterministic transaction ID, so a row delivered twice (scrapers routinely
// resend overlapping windows) is silently skipped. Returns the number of rows
// actually saved.
func (s *bondService) IngestBonds(ctx context.Context, userID string, req dto.IngestBondsRequest) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	saved := 0
	for _, payload := range req.Bonds {
		if !payload.CardNetwork.IsValid() {
			return saved, fmt.Errorf("%w: unknown card network %q", apperrors.ErrValidation, payload.CardNetwork)
		}

		bond := domain.Bond{
			BondID:         uuid.NewString(),
			TransactionID:  domain.NewTransactionID(payload.TransactionAt, payload.ApprovalKind, payload.ApprovalNumber, payload.ApprovalAmount),
			TransactionAt:  payload.TransactionAt,
			CardNetwork:    payload.CardNetwork,
			CardKind:       payload.CardKind,
			ApprovalKind:   payload.ApprovalKind,
			ApprovalNumber: payload.ApprovalNumber,
			ApprovalAmount: payload.ApprovalAmount,
			Commission:     payload.Commission,
			UserID:         userID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.bondRepo.SaveBond(ctx, bond); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return saved, fmt.Errorf("failed to save bond %s: %w", bond.TransactionID, err)
		}
		saved++
	}

	logger.Info("bonds ingested",
		slog.String("user_id", userID),
		slog.Int("received", len(req.Bonds)),
		slog.Int("saved", saved))
	return saved, nil
}
