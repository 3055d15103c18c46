package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/apperrors"
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portsrepo "github.com/choretrack/chore_tracker_app/internal/core/ports/repositories"
	"github.com/choretrack/chore_tracker_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for balances and the
// transaction log.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Kind:          domain.TransactionKind(m.Kind),
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}

// FindOrCreateAccount returns the account for userID, lazily creating a
// zero-initialized row on first access.
func (r *PgxLedgerRepository) FindOrCreateAccount(ctx context.Context, userID string, now time.Time) (*domain.BalanceAccount, error) {
	insert := `
		INSERT INTO balance_accounts (user_id, current_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, 0, $2, $1, $2, $1)
		ON CONFLICT (user_id) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, insert, userID, now); err != nil {
		return nil, fmt.Errorf("failed to ensure balance account for user %s: %w", userID, err)
	}

	query := `
		SELECT user_id, current_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM balance_accounts
		WHERE user_id = $1;
	`
	var acc domain.BalanceAccount
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&acc.UserID,
		&acc.CurrentBalance,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find balance account for user %s: %w", userID, err)
	}
	return &acc, nil
}

// lockAccountInTx ensures the account row exists and locks it for the
// duration of the transaction. Every balance mutation goes through this,
// which serializes writers per user.
func (r *PgxLedgerRepository) lockAccountInTx(ctx context.Context, tx pgx.Tx, userID string, now time.Time) (*domain.BalanceAccount, error) {
	insert := `
		INSERT INTO balance_accounts (user_id, current_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, 0, $2, $1, $2, $1)
		ON CONFLICT (user_id) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insert, userID, now); err != nil {
		return nil, fmt.Errorf("failed to ensure balance account for user %s: %w", userID, err)
	}

	query := `
		SELECT user_id, current_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM balance_accounts
		WHERE user_id = $1
		FOR UPDATE;
	`
	var acc domain.BalanceAccount
	err := tx.QueryRow(ctx, query, userID).Scan(
		&acc.UserID,
		&acc.CurrentBalance,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock balance account for user %s: %w", userID, err)
	}
	return &acc, nil
}

// AppendTransactionInTx inserts the transaction row and applies its signed
// amount to the locked balance. The insufficient-balance check runs against
// the locked row, never against data read outside the transaction.
func (r *PgxLedgerRepository) AppendTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, enforceBalance bool) (*domain.BalanceAccount, error) {
	acc, err := r.lockAccountInTx(ctx, tx, txn.UserID, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	newBalance := acc.CurrentBalance.Add(txn.Amount)
	if enforceBalance && newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientBalance,
			acc.CurrentBalance.StringFixed(2), txn.Amount.Neg().StringFixed(2))
	}

	insertTxn := `
		INSERT INTO transactions (transaction_id, user_id, amount, kind, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertTxn,
		txn.TransactionID,
		txn.UserID,
		txn.Amount,
		string(txn.Kind),
		txn.Description,
		txn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	updateBalance := `
		UPDATE balance_accounts
		SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	if _, err := tx.Exec(ctx, updateBalance, txn.UserID, newBalance, txn.CreatedAt, txn.UserID); err != nil {
		return nil, fmt.Errorf("failed to update balance for user %s: %w", txn.UserID, err)
	}

	acc.CurrentBalance = newBalance
	acc.LastUpdatedAt = txn.CreatedAt
	acc.LastUpdatedBy = txn.UserID
	return acc, nil
}

// AppendTransaction runs AppendTransactionInTx in its own transaction.
func (r *PgxLedgerRepository) AppendTransaction(ctx context.Context, txn domain.Transaction, enforceBalance bool) (*domain.BalanceAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	acc, err := r.AppendTransactionInTx(ctx, tx, txn, enforceBalance)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return acc, nil
}

// FindTransactions returns a newest-first page of the user's ledger,
// optionally narrowed by kind and date range.
func (r *PgxLedgerRepository) FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT transaction_id, user_id, amount, kind, description, created_at
		FROM transactions
		WHERE user_id = $1`
	args := []any{userID}

	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		query += " AND kind = $" + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += " AND created_at >= $" + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += " AND created_at < $" + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += " ORDER BY created_at DESC, transaction_id DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.UserID, &m.Amount, &m.Kind, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

// SummarizeByKind aggregates signed amounts by kind over [from, to).
func (r *PgxLedgerRepository) SummarizeByKind(ctx context.Context, userID string, from, to time.Time) (map[domain.TransactionKind]decimal.Decimal, error) {
	query := `
		SELECT kind, SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY kind;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger summary for user %s: %w", userID, err)
	}
	defer rows.Close()

	totals := make(map[domain.TransactionKind]decimal.Decimal)
	for rows.Next() {
		var kind string
		var total decimal.Decimal
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		totals[domain.TransactionKind(kind)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return totals, nil
}
