package services

import (
	"context"
	"fmt"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/apperrors"
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/choretrack/chore_tracker_app/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService is the source of truth for money. Every mutation goes
// through the repository's single-transaction append path.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepository
	loc        *time.Location
}

// NewLedgerService creates the ledger facade.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, loc *time.Location) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, loc: loc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetBalance(ctx context.Context, userID string) (*domain.BalanceAccount, error) {
	acc, err := s.ledgerRepo.FindOrCreateAccount(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %s: %w", userID, err)
	}
	return acc, nil
}

// Credit appends a positive transaction.
func (s *ledgerService) Credit(ctx context.Context, userID string, amount decimal.Decimal, kind domain.TransactionKind, description string) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if !kind.IsCreditKind() {
		return nil, fmt.Errorf("%w: kind %s cannot credit a balance", apperrors.ErrValidation, kind)
	}
	return s.append(ctx, userID, amount, kind, description, false)
}

// Debit appends a negative transaction. The balance check runs against the
// locked account row inside the repository transaction.
func (s *ledgerService) Debit(ctx context.Context, userID string, amount decimal.Decimal, kind domain.TransactionKind, description string) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: debit amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if !kind.IsDebitKind() {
		return nil, fmt.Errorf("%w: kind %s cannot debit a balance", apperrors.ErrValidation, kind)
	}
	return s.append(ctx, userID, amount.Neg(), kind, description, true)
}

// Reverse posts a compensating adjustment of the opposite sign. It is
// append-only and skips the insufficient-balance check: undoing an earning
// that was already spent may drive the balance negative.
func (s *ledgerService) Reverse(ctx context.Context, userID string, originalAmount decimal.Decimal, description string) (*domain.Transaction, error) {
	if originalAmount.IsZero() {
		return nil, fmt.Errorf("%w: nothing to reverse", apperrors.ErrValidation)
	}
	return s.append(ctx, userID, originalAmount.Neg(), domain.KindAdjustment, description, false)
}

func (s *ledgerService) append(ctx context.Context, userID string, signedAmount decimal.Decimal, kind domain.TransactionKind, description string, enforceBalance bool) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Amount:        signedAmount,
		Kind:          kind,
		Description:   description,
		CreatedAt:     time.Now(),
	}

	if _, err := s.ledgerRepo.AppendTransaction(ctx, txn, enforceBalance); err != nil {
		return nil, fmt.Errorf("failed to append %s transaction for user %s: %w", kind, userID, err)
	}

	logger.Info("transaction appended",
		"transactionID", txn.TransactionID,
		"userID", userID,
		"kind", string(kind),
		"amount", signedAmount.StringFixed(2),
	)
	return &txn, nil
}

func (s *ledgerService) GetTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	txns, err := s.ledgerRepo.FindTransactions(ctx, userID, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	return txns, nil
}

func (s *ledgerService) GetMonthlyTotal(ctx context.Context, userID string, month time.Month, year int) (*domain.LedgerSummary, error) {
	from, to := dates.MonthRange(year, month, s.loc)
	return s.GetSummary(ctx, userID, from, to)
}

func (s *ledgerService) GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.LedgerSummary, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: summary range end must be after start", apperrors.ErrValidation)
	}

	totals, err := s.ledgerRepo.SummarizeByKind(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ledger for user %s: %w", userID, err)
	}

	net := decimal.Zero
	for _, total := range totals {
		net = net.Add(total)
	}

	return &domain.LedgerSummary{
		UserID:      userID,
		From:        from,
		To:          to,
		TotalByKind: totals,
		NetTotal:    net,
	}, nil
}
