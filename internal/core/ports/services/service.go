package services

// ServiceContainer holds instances of all the application services. It is the
// entry point handlers use to reach business logic.
type ServiceContainer struct {
	User       UserSvcFacade
	Profile    ProfileSvcFacade
	Family     FamilySvcFacade
	Household  HouseholdSvcFacade
	Category   CategorySvcFacade
	Order      OrderSvcFacade
	Debt       DebtSvcFacade
	History    HistorySvcFacade
	Reporting  ReportingSvcFacade
	Token      TokenSvcFacade
	GoogleAuth GoogleAuthSvcFacade
	ChangeFeed ChangeFeedSvc
}
