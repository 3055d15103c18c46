package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit columns shared by persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// BalanceAccount mirrors the balance_accounts table.
type BalanceAccount struct {
	UserID         string          `db:"user_id"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	AuditFields
}

// Transaction mirrors the transactions table. Amount is signed.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Kind          string          `db:"kind"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}
