package handlers

import (
	"net/http"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler serves household member lookups.
type userHandler struct {
	userSvc portssvc.UserSvcFacade
}

func newUserHandler(userSvc portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userSvc: userSvc}
}

func registerUserRoutes(rg *gin.RouterGroup, userSvc portssvc.UserSvcFacade) {
	h := newUserHandler(userSvc)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:userID", h.getUser)
	}
}

func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userSvc.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserResponses(users)})
}

func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userSvc.GetUserByID(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
