package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles balance and transaction history requests. All
// routes operate on the authenticated user's own ledger.
type ledgerHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerSvc portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerSvc: ledgerSvc}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerSvc)

	rg.GET("/balance", h.getBalance)
	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/summary", h.getSummary)
		transactions.GET("/monthly", h.getMonthlyTotal)
	}
}

func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	acc, err := h.ledgerSvc.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(acc))
}

func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid transaction list params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.TransactionFilter{
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	}
	if params.Kind != "" {
		kind := domain.TransactionKind(params.Kind)
		filter.Kind = &kind
	}

	txns, err := h.ledgerSvc.GetTransactions(c.Request.Context(), userID, filter, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
}

func (h *ledgerHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid summary params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.ledgerSvc.GetSummary(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to summarize transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

func (h *ledgerHandler) getMonthlyTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.MonthlyTotalParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid monthly total params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.ledgerSvc.GetMonthlyTotal(c.Request.Context(), userID, time.Month(params.Month), params.Year)
	if err != nil {
		respondError(c, logger, err, "Failed to get monthly total")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
