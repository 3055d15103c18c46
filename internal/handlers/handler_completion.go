package handlers

import (
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// completionHandler handles completing tasks and undoing completions.
type completionHandler struct {
	completionSvc portssvc.CompletionSvcFacade
}

func newCompletionHandler(completionSvc portssvc.CompletionSvcFacade) *completionHandler {
	return &completionHandler{completionSvc: completionSvc}
}

func registerCompletionRoutes(rg *gin.RouterGroup, completionSvc portssvc.CompletionSvcFacade) {
	h := newCompletionHandler(completionSvc)

	rg.POST("/tasks/:taskID/complete", h.completeTask)
	rg.POST("/completions/:completionID/undo", h.undoCompletion)
}

func (h *completionHandler) completeTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	taskID := c.Param("taskID")

	// The body is optional; an empty body means "today".
	var req dto.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		logger.Warn("Failed to bind JSON for complete", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.completionSvc.Complete(c.Request.Context(), taskID, userID, req.Date)
	if err != nil {
		respondError(c, logger, err, "Failed to complete task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompleteTaskResponse(result))
}

func (h *completionHandler) undoCompletion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	completionID := c.Param("completionID")

	account, err := h.completionSvc.Undo(c.Request.Context(), completionID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to undo completion")
		return
	}

	c.JSON(http.StatusOK, dto.UndoResponse{Balance: dto.ToBalanceResponse(account)})
}
