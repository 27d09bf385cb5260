package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	cardInfoRepo := NewPgxCardInfoRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BondRepo:       NewPgxBondRepository(dbPool),
		SettlementRepo: NewPgxSettlementRepository(dbPool),
		FutureFundRepo: NewPgxFutureFundRepository(dbPool),
		ApplyRepo:      NewPgxApplyRepository(dbPool),
		CardInfoRepo:   cardInfoRepo,
		HolidayRepo:    cardInfoRepo,
		UserRepo:       NewPgxUserRepository(dbPool),
	}
}
