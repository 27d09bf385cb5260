package services

import (
	"context"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

// BondSvcFacade ingests card transactions for later settlement.
type BondSvcFacade interface {
	// IngestBonds saves the given transactions for the user, skipping rows
	// whose transaction ID was already seen. Returns the number saved.
	IngestBonds(ctx context.Context, userID string, req dto.IngestBondsRequest) (int, error)
}
