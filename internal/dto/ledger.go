package dto

import (
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
)

// BalanceResponse defines the data returned for a balance query.
// Amounts render with two decimal places for display.
type BalanceResponse struct {
	UserID  string `json:"userID"`
	Balance string `json:"balance"`
}

// ToBalanceResponse converts a domain.BalanceAccount to BalanceResponse.
func ToBalanceResponse(acc *domain.BalanceAccount) BalanceResponse {
	return BalanceResponse{
		UserID:  acc.UserID,
		Balance: acc.CurrentBalance.StringFixed(2),
	}
}

// TransactionResponse defines the data returned for one ledger row.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	UserID        string                 `json:"userID"`
	Amount        string                 `json:"amount"`
	Kind          domain.TransactionKind `json:"kind"`
	Description   string                 `json:"description"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		UserID:        txn.UserID,
		Amount:        txn.Amount.StringFixed(2),
		Kind:          txn.Kind,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Kind      string     `form:"kind" binding:"omitempty,txnkind"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset    int        `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// MonthlyTotalParams defines query parameters for the monthly aggregate.
type MonthlyTotalParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2200"`
}

// SummaryParams defines query parameters for a date-range summary.
type SummaryParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// SummaryResponse renders a LedgerSummary with display amounts.
type SummaryResponse struct {
	UserID      string            `json:"userID"`
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	TotalByKind map[string]string `json:"totalByKind"`
	NetTotal    string            `json:"netTotal"`
}

// ToSummaryResponse converts a domain.LedgerSummary to its DTO.
func ToSummaryResponse(s *domain.LedgerSummary) SummaryResponse {
	byKind := make(map[string]string, len(s.TotalByKind))
	for kind, total := range s.TotalByKind {
		byKind[string(kind)] = total.StringFixed(2)
	}
	return SummaryResponse{
		UserID:      s.UserID,
		From:        s.From,
		To:          s.To,
		TotalByKind: byKind,
		NetTotal:    s.NetTotal.StringFixed(2),
	}
}
