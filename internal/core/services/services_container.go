package services

import (
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
)

// NewServiceContainer wires all application services together.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	historySvc := NewHistoryService(repos.HistoryRepo)
	familySvc := NewFamilyService(repos.FamilyRepo, repos.UserRepo)

	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.UserRepo),
		Profile:    NewProfileService(repos.UserRepo, familySvc, cfg),
		Family:     familySvc,
		Household:  NewHouseholdService(repos.HouseholdRepo, repos.CategoryRepo, historySvc),
		Category:   NewCategoryService(repos.CategoryRepo),
		Order:      NewOrderService(repos.OrderRepo, historySvc),
		Debt:       NewDebtService(repos.DebtRepo, historySvc),
		History:    historySvc,
		Reporting:  NewReportingService(repos.ReportingRepo),
		Token:      NewTokenService(repos.UserRepo, cfg),
		GoogleAuth: NewGoogleAuthService(cfg),
		ChangeFeed: NewChangeFeedService(cfg.ChangeFeedDebounce),
	}
}
