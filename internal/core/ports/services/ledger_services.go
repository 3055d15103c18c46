package services

import (
	"context"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the source of truth for money.
type LedgerSvcFacade interface {
	// GetBalance is idempotent and lazily creates a zero account.
	GetBalance(ctx context.Context, userID string) (*domain.BalanceAccount, error)

	// Credit appends a positive transaction. Kind must be EARNED,
	// ADJUSTMENT or BONUS; amount must be > 0.
	Credit(ctx context.Context, userID string, amount decimal.Decimal, kind domain.TransactionKind, description string) (*domain.Transaction, error)

	// Debit appends a negative transaction. Kind must be SPENT, PAYOUT or
	// ADJUSTMENT; fails with ErrInsufficientBalance when the balance does
	// not cover the amount.
	Debit(ctx context.Context, userID string, amount decimal.Decimal, kind domain.TransactionKind, description string) (*domain.Transaction, error)

	// Reverse posts a compensating adjustment of the opposite sign of
	// originalAmount. Append-only; used by Undo.
	Reverse(ctx context.Context, userID string, originalAmount decimal.Decimal, description string) (*domain.Transaction, error)

	// GetTransactions pages the user's history newest first. limit is
	// capped at 100.
	GetTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error)

	GetMonthlyTotal(ctx context.Context, userID string, month time.Month, year int) (*domain.LedgerSummary, error)
	GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.LedgerSummary, error)
}
