package repositories

import (
	"context"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerRepository persists balance accounts and the append-only
// transaction log. All mutating methods keep the account invariant
// (balance == sum of transaction amounts) inside a single DB transaction.
type LedgerRepository interface {
	// FindOrCreateAccount returns the account for userID, creating a
	// zero-initialized row if none exists yet.
	FindOrCreateAccount(ctx context.Context, userID string, now time.Time) (*domain.BalanceAccount, error)

	// AppendTransaction locks the account row, optionally enforces that the
	// balance covers a debit (ErrInsufficientBalance), inserts the
	// transaction and applies its amount to the balance atomically.
	// It returns the account as committed.
	AppendTransaction(ctx context.Context, txn domain.Transaction, enforceBalance bool) (*domain.BalanceAccount, error)

	// AppendTransactionInTx is AppendTransaction running inside a caller
	// managed transaction. Used by the completion repository so a
	// completion insert and its earnings commit or roll back together.
	AppendTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, enforceBalance bool) (*domain.BalanceAccount, error)

	// FindTransactions returns a newest-first page of the user's ledger.
	FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error)

	// SummarizeByKind aggregates signed amounts by kind over [from, to).
	SummarizeByKind(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error)
}
