package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	BondRepo       BondRepositoryFacade
	SettlementRepo SettlementRepositoryWithTx
	FutureFundRepo FutureFundRepositoryFacade
	ApplyRepo      ApplyRepositoryFacade
	CardInfoRepo   CardInfoReader
	HolidayRepo    HolidayReader
	UserRepo       UserRepositoryFacade
}
