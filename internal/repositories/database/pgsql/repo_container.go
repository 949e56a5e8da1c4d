package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		FamilyRepo:    newPgxFamilyRepository(dbPool),
		HouseholdRepo: newPgxHouseholdRepository(dbPool),
		CategoryRepo:  newPgxCategoryRepository(dbPool),
		OrderRepo:     newPgxOrderRepository(dbPool),
		DebtRepo:      newPgxDebtRepository(dbPool),
		HistoryRepo:   newPgxHistoryRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
