package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/dto"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taskHandler handles task CRUD.
type taskHandler struct {
	taskSvc portssvc.TaskSvcFacade
}

func newTaskHandler(taskSvc portssvc.TaskSvcFacade) *taskHandler {
	return &taskHandler{taskSvc: taskSvc}
}

func registerTaskRoutes(rg *gin.RouterGroup, taskSvc portssvc.TaskSvcFacade) {
	h := newTaskHandler(taskSvc)

	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.createTask)
		tasks.GET("", h.listTasks)
		tasks.GET("/:taskID", h.getTask)
	}
}

func (h *taskHandler) createTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create task", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	task, err := h.taskSvc.CreateTask(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

func (h *taskHandler) listTasks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tasks, err := h.taskSvc.ListTasks(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskResponses(tasks)})
}

func (h *taskHandler) getTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	task, err := h.taskSvc.GetTaskByID(c.Request.Context(), c.Param("taskID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// routineHandler handles routine CRUD.
type routineHandler struct {
	routineSvc portssvc.RoutineSvcFacade
}

func newRoutineHandler(routineSvc portssvc.RoutineSvcFacade) *routineHandler {
	return &routineHandler{routineSvc: routineSvc}
}

func registerRoutineRoutes(rg *gin.RouterGroup, routineSvc portssvc.RoutineSvcFacade) {
	h := newRoutineHandler(routineSvc)

	routines := rg.Group("/routines")
	{
		routines.POST("", h.createRoutine)
		routines.GET("", h.listRoutines)
		routines.GET("/:routineID", h.getRoutine)
	}
}

func (h *routineHandler) createRoutine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create routine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	routine, err := h.routineSvc.CreateRoutine(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create routine")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoutineResponse(routine))
}

func (h *routineHandler) listRoutines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	routines, err := h.routineSvc.ListRoutinesByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list routines")
		return
	}

	res := make([]dto.RoutineResponse, len(routines))
	for i := range routines {
		res[i] = dto.ToRoutineResponse(&routines[i])
	}
	c.JSON(http.StatusOK, gin.H{"routines": res})
}

func (h *routineHandler) getRoutine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	routine, err := h.routineSvc.GetRoutineByID(c.Request.Context(), c.Param("routineID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get routine")
		return
	}

	c.JSON(http.StatusOK, dto.ToRoutineResponse(routine))
}
