package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindOrCreateAccount(ctx context.Context, userID string, now time.Time) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockLedgerRepository) AppendTransaction(ctx context.Context, txn domain.Transaction, enforceBalance bool) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, txn, enforceBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockLedgerRepository) AppendTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, enforceBalance bool) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, tx, txn, enforceBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SummarizeByKind(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionKind]decimal.Decimal), args.Error(1)
}

// --- Mock CompletionRepository ---

type MockCompletionRepository struct {
	mock.Mock
}

var _ portsrepo.CompletionRepository = (*MockCompletionRepository)(nil)

func (m *MockCompletionRepository) SaveCompletion(ctx context.Context, completion domain.Completion, credit *domain.Transaction) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, completion, credit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockCompletionRepository) DeleteCompletion(ctx context.Context, completionID string, reversal *domain.Transaction) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, completionID, reversal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockCompletionRepository) FindCompletionByID(ctx context.Context, completionID string) (*domain.Completion, error) {
	args := m.Called(ctx, completionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepository) FindCompletionsForUserOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Completion, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Completion), args.Error(1)
}

func (m *MockCompletionRepository) FindCompletionDatesForRoutine(ctx context.Context, userID, routineID string) ([]time.Time, error) {
	args := m.Called(ctx, userID, routineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockCompletionRepository) ListTrackedPairs(ctx context.Context) ([]domain.StreakKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreakKey), args.Error(1)
}

// --- Mock StreakRepository ---

type MockStreakRepository struct {
	mock.Mock
}

var _ portsrepo.StreakRepository = (*MockStreakRepository)(nil)

func (m *MockStreakRepository) FindStreak(ctx context.Context, userID, routineID string) (*domain.Streak, error) {
	args := m.Called(ctx, userID, routineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

func (m *MockStreakRepository) UpsertStreak(ctx context.Context, streak domain.Streak) error {
	args := m.Called(ctx, streak)
	return args.Error(0)
}

func (m *MockStreakRepository) ListStreaksByUser(ctx context.Context, userID string) ([]domain.Streak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Streak), args.Error(1)
}

func (m *MockStreakRepository) ListTrackedPairs(ctx context.Context) ([]domain.StreakKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreakKey), args.Error(1)
}

// --- Mock MilestoneRepository ---

type MockMilestoneRepository struct {
	mock.Mock
}

var _ portsrepo.MilestoneRepository = (*MockMilestoneRepository)(nil)

func (m *MockMilestoneRepository) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Milestone), args.Error(1)
}

// --- Mock TaskSvcFacade ---

type MockTaskService struct {
	mock.Mock
}

var _ portssvc.TaskSvcFacade = (*MockTaskService)(nil)

func (m *MockTaskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.Task, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, limit, offset int) ([]domain.Task, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskService) TaskValue(ctx context.Context, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) RoutineTasksFor(ctx context.Context, routineID string) ([]domain.Task, error) {
	args := m.Called(ctx, routineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

// --- Mock LedgerSvcFacade ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetBalance(ctx context.Context, userID string) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, userID string, amount decimal.Decimal, kind domain.TransactionKind, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, amount, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, userID string, amount decimal.Decimal, kind domain.TransactionKind, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, amount, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Reverse(ctx context.Context, userID string, originalAmount decimal.Decimal, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, originalAmount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetMonthlyTotal(ctx context.Context, userID string, month time.Month, year int) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, userID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockLedgerService) GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

// --- Mock StreakSvcFacade ---

type MockStreakService struct {
	mock.Mock
}

var _ portssvc.StreakSvcFacade = (*MockStreakService)(nil)

func (m *MockStreakService) GetStreak(ctx context.Context, userID, routineID string) (*domain.Streak, error) {
	args := m.Called(ctx, userID, routineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

func (m *MockStreakService) AdviseRoutineCompleted(ctx context.Context, userID, routineID string, date time.Time) (*domain.Streak, error) {
	args := m.Called(ctx, userID, routineID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

func (m *MockStreakService) TotalStreakAcrossRoutines(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Recording NotificationSink ---

// recordingSink captures emitted events for assertions. Emit is
// synchronous here; the production sink is the buffered notifier.
type recordingSink struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	UserID  string
	Kind    string
	Message string
}

var _ portssvc.NotificationSink = (*recordingSink)(nil)

func (r *recordingSink) Emit(userID, kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{UserID: userID, Kind: kind, Message: message})
}

func (r *recordingSink) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}
