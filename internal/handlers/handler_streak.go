package handlers

import (
	"net/http"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// streakHandler serves streak counters for display.
type streakHandler struct {
	streakSvc portssvc.StreakSvcFacade
}

func newStreakHandler(streakSvc portssvc.StreakSvcFacade) *streakHandler {
	return &streakHandler{streakSvc: streakSvc}
}

func registerStreakRoutes(rg *gin.RouterGroup, streakSvc portssvc.StreakSvcFacade) {
	h := newStreakHandler(streakSvc)

	rg.GET("/routines/:routineID/streak", h.getStreak)
	rg.GET("/streaks/total", h.getTotal)
}

func (h *streakHandler) getStreak(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	streak, err := h.streakSvc.GetStreak(c.Request.Context(), userID, c.Param("routineID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get streak")
		return
	}

	c.JSON(http.StatusOK, dto.ToStreakResponse(streak))
}

func (h *streakHandler) getTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	total, err := h.streakSvc.TotalStreakAcrossRoutines(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to total streaks")
		return
	}

	c.JSON(http.StatusOK, dto.TotalStreakResponse{UserID: userID, Total: total})
}
