package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger transaction.
type TransactionKind string

const (
	KindEarned     TransactionKind = "EARNED"
	KindSpent      TransactionKind = "SPENT"
	KindAdjustment TransactionKind = "ADJUSTMENT"
	KindPayout     TransactionKind = "PAYOUT"
	KindBonus      TransactionKind = "BONUS"
)

// creditKinds are the kinds allowed to increase a balance; debitKinds the
// kinds allowed to decrease one. ADJUSTMENT appears in both because it is
// the compensating kind used by reversals.
var creditKinds = map[TransactionKind]bool{
	KindEarned:     true,
	KindAdjustment: true,
	KindBonus:      true,
}

var debitKinds = map[TransactionKind]bool{
	KindSpent:      true,
	KindPayout:     true,
	KindAdjustment: true,
}

// IsCreditKind reports whether the kind may be used on the credit path.
func (k TransactionKind) IsCreditKind() bool {
	return creditKinds[k]
}

// IsDebitKind reports whether the kind may be used on the debit path.
func (k TransactionKind) IsDebitKind() bool {
	return debitKinds[k]
}

// BalanceAccount is a user's running money balance. The balance equals the
// sum of all transaction amounts for the user at every observable instant;
// the repository maintains that equality inside a single DB transaction.
type BalanceAccount struct {
	UserID         string          `json:"userID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// Transaction is one immutable row of the append-only ledger. Amount is
// signed: positive for credits, negative for debits. Reversal never mutates
// a row; it appends a compensating ADJUSTMENT.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`
	Amount        decimal.Decimal `json:"amount"` // Signed
	Kind          TransactionKind `json:"kind"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionFilter narrows ledger history queries.
type TransactionFilter struct {
	Kind      *TransactionKind
	StartDate *time.Time
	EndDate   *time.Time
}

// LedgerSummary aggregates signed transaction amounts by kind over a range.
type LedgerSummary struct {
	UserID      string                              `json:"userID"`
	From        time.Time                           `json:"from"`
	To          time.Time                           `json:"to"`
	TotalByKind map[TransactionKind]decimal.Decimal `json:"totalByKind"`
	NetTotal    decimal.Decimal                     `json:"netTotal"`
}
