package repositories

// Scope selects the visibility mode for ledger queries: family-wide when the
// acting user belongs to a family, otherwise only the user's own rows.
type Scope struct {
	UserID   string
	FamilyID *string
}

// FamilyWide reports whether the scope covers a whole family.
func (s Scope) FamilyWide() bool {
	return s.FamilyID != nil && *s.FamilyID != ""
}

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo      UserRepository
	FamilyRepo    FamilyRepository
	HouseholdRepo HouseholdRepository
	CategoryRepo  CategoryRepository
	OrderRepo     OrderRepository
	DebtRepo      DebtRepository
	HistoryRepo   HistoryRepository
	ReportingRepo ReportingRepository
}
