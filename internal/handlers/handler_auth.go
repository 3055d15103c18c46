package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration and login.
type authHandler struct {
	userSvc portssvc.UserSvcFacade
	authSvc portssvc.AuthSvcFacade
}

func newAuthHandler(userSvc portssvc.UserSvcFacade, authSvc portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{userSvc: userSvc, authSvc: authSvc}
}

func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userSvc.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		// Credential failures surface as 403 via the sentinel mapping.
		respondError(c, logger, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}
