package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider string, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsersByFamilyID(ctx context.Context, familyID string) ([]domain.User, error) {
	args := m.Called(ctx, familyID)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetFamilyID(ctx context.Context, userID string, familyID *string, updatedBy string) error {
	args := m.Called(ctx, userID, familyID, updatedBy)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock FamilyRepository ---

type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockFamilyRepository) FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error) {
	args := m.Called(ctx, familyID)
	var family *domain.Family
	if args.Get(0) != nil {
		family = args.Get(0).(*domain.Family)
	}
	return family, args.Error(1)
}

func (m *MockFamilyRepository) FindFamilyWithMembers(ctx context.Context, familyID string) (*domain.FamilyWithMembers, error) {
	args := m.Called(ctx, familyID)
	var family *domain.FamilyWithMembers
	if args.Get(0) != nil {
		family = args.Get(0).(*domain.FamilyWithMembers)
	}
	return family, args.Error(1)
}

func (m *MockFamilyRepository) DeleteFamily(ctx context.Context, familyID string) error {
	args := m.Called(ctx, familyID)
	return args.Error(0)
}

// --- Mock HouseholdRepository ---

type MockHouseholdRepository struct {
	mock.Mock
}

func (m *MockHouseholdRepository) SaveTransaction(ctx context.Context, txn domain.HouseholdTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockHouseholdRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.HouseholdTransaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.HouseholdTransaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.HouseholdTransaction)
	}
	return txn, args.Error(1)
}

func (m *MockHouseholdRepository) ListTransactions(ctx context.Context, scope portsrepo.Scope) ([]domain.HouseholdTransaction, error) {
	args := m.Called(ctx, scope)
	var txns []domain.HouseholdTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.HouseholdTransaction)
	}
	return txns, args.Error(1)
}

func (m *MockHouseholdRepository) UpdateTransaction(ctx context.Context, txn domain.HouseholdTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockHouseholdRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.HouseholdCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.HouseholdCategory, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.HouseholdCategory
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.HouseholdCategory)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesForUser(ctx context.Context, userID string) ([]domain.HouseholdCategory, error) {
	args := m.Called(ctx, userID)
	var categories []domain.HouseholdCategory
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.HouseholdCategory)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock OrderRepository ---

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, scope portsrepo.Scope) ([]domain.Order, error) {
	args := m.Called(ctx, scope)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveOrderExpense(ctx context.Context, expense domain.OrderExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderExpenseByID(ctx context.Context, expenseID string) (*domain.OrderExpense, error) {
	args := m.Called(ctx, expenseID)
	var expense *domain.OrderExpense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.OrderExpense)
	}
	return expense, args.Error(1)
}

func (m *MockOrderRepository) DeleteOrderExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- Mock DebtRepository ---

type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	var debt *domain.Debt
	if args.Get(0) != nil {
		debt = args.Get(0).(*domain.Debt)
	}
	return debt, args.Error(1)
}

func (m *MockDebtRepository) ListDebts(ctx context.Context, scope portsrepo.Scope) ([]domain.Debt, error) {
	args := m.Called(ctx, scope)
	var debts []domain.Debt
	if args.Get(0) != nil {
		debts = args.Get(0).([]domain.Debt)
	}
	return debts, args.Error(1)
}

func (m *MockDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	args := m.Called(ctx, debtID)
	return args.Error(0)
}

func (m *MockDebtRepository) SaveDebtPayment(ctx context.Context, payment domain.DebtPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockDebtRepository) FindDebtPaymentByID(ctx context.Context, paymentID string) (*domain.DebtPayment, error) {
	args := m.Called(ctx, paymentID)
	var payment *domain.DebtPayment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.DebtPayment)
	}
	return payment, args.Error(1)
}

func (m *MockDebtRepository) DeleteDebtPayment(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// --- Mock HistoryRepository ---

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) SaveEntry(ctx context.Context, entry domain.EditHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByRecord(ctx context.Context, collection, recordID string) ([]domain.EditHistory, error) {
	args := m.Called(ctx, collection, recordID)
	var entries []domain.EditHistory
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.EditHistory)
	}
	return entries, args.Error(1)
}

func (m *MockHistoryRepository) ListByScope(ctx context.Context, scope portsrepo.Scope, limit int) ([]domain.EditHistory, error) {
	args := m.Called(ctx, scope, limit)
	var entries []domain.EditHistory
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.EditHistory)
	}
	return entries, args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) HouseholdMonthlySummary(ctx context.Context, scope portsrepo.Scope, from, to time.Time) ([]domain.MonthlySummaryRow, error) {
	args := m.Called(ctx, scope, from, to)
	var rows []domain.MonthlySummaryRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.MonthlySummaryRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) OrderMonthlySummary(ctx context.Context, scope portsrepo.Scope, from, to time.Time) ([]domain.OrderSummaryRow, error) {
	args := m.Called(ctx, scope, from, to)
	var rows []domain.OrderSummaryRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.OrderSummaryRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) DebtSummary(ctx context.Context, scope portsrepo.Scope) (*domain.DebtSummary, error) {
	args := m.Called(ctx, scope)
	var summary *domain.DebtSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.DebtSummary)
	}
	return summary, args.Error(1)
}

// --- Mock HistorySvcFacade ---

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Record(ctx context.Context, actor *domain.User, collection, recordID string, action domain.HistoryAction, detail string) error {
	args := m.Called(ctx, actor, collection, recordID, action, detail)
	return args.Error(0)
}

func (m *MockHistoryService) ListForRecord(ctx context.Context, actor *domain.User, collection, recordID string) ([]domain.EditHistory, error) {
	args := m.Called(ctx, actor, collection, recordID)
	var entries []domain.EditHistory
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.EditHistory)
	}
	return entries, args.Error(1)
}

func (m *MockHistoryService) ListRecent(ctx context.Context, actor *domain.User, limit int) ([]domain.EditHistory, error) {
	args := m.Called(ctx, actor, limit)
	var entries []domain.EditHistory
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.EditHistory)
	}
	return entries, args.Error(1)
}

// --- Mock FamilySvcFacade ---

type MockFamilyService struct {
	mock.Mock
}

func (m *MockFamilyService) CreateFamily(ctx context.Context, name, creatorUserID string) (*domain.FamilyWithMembers, error) {
	args := m.Called(ctx, name, creatorUserID)
	var family *domain.FamilyWithMembers
	if args.Get(0) != nil {
		family = args.Get(0).(*domain.FamilyWithMembers)
	}
	return family, args.Error(1)
}

func (m *MockFamilyService) JoinFamily(ctx context.Context, userID, familyID string) error {
	args := m.Called(ctx, userID, familyID)
	return args.Error(0)
}

func (m *MockFamilyService) LeaveFamily(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockFamilyService) GetFamilyByID(ctx context.Context, familyID string) (*domain.FamilyWithMembers, error) {
	args := m.Called(ctx, familyID)
	var family *domain.FamilyWithMembers
	if args.Get(0) != nil {
		family = args.Get(0).(*domain.FamilyWithMembers)
	}
	return family, args.Error(1)
}

// --- Shared fixtures ---

func ayahInFamily(familyID string) *domain.User {
	return &domain.User{
		UserID:   "ayah-user-id",
		Email:    "ayah@example.com",
		Name:     "Ayah",
		Role:     domain.RoleAyah,
		FamilyID: &familyID,
	}
}

func ibuInFamily(familyID string) *domain.User {
	return &domain.User{
		UserID:   "ibu-user-id",
		Email:    "ibu@example.com",
		Name:     "Ibu",
		Role:     domain.RoleIbu,
		FamilyID: &familyID,
	}
}

func soloUser(role domain.FamilyRole) *domain.User {
	return &domain.User{
		UserID: "solo-user-id",
		Email:  "solo@example.com",
		Name:   "Solo",
		Role:   role,
	}
}
