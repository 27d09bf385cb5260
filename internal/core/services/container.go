package services

import (
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/platform/config"
)

// NewServiceContainer wires every service over the given repositories. The
// notifier may be nil, in which case run reports are only logged.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	fundSvc := NewFutureFundService(repos.FutureFundRepo, repos.UserRepo)
	settlementSvc := NewSettlementService(
		repos.BondRepo,
		repos.SettlementRepo,
		repos.CardInfoRepo,
		repos.HolidayRepo,
		repos.FutureFundRepo,
		fundSvc,
		cfg.SettlementRunTimeout,
	)

	return &portssvc.ServiceContainer{
		Bond:       NewBondService(repos.BondRepo),
		Settlement: settlementSvc,
		Driver:     NewSettlementDriver(repos.UserRepo, settlementSvc, notifier),
		FutureFund: fundSvc,
		Apply:      NewApplyService(repos.ApplyRepo, repos.FutureFundRepo, repos.BondRepo, repos.UserRepo),
		Reporting:  NewReportingService(repos.FutureFundRepo),
		User:       NewUserService(repos.UserRepo, cfg.FundFeeRateDefault),
		Token:      NewTokenService(cfg),
	}
}
