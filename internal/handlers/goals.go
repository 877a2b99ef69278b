package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/backend/internal/apierror"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/repository"
	"github.com/pulseboard/backend/internal/service"
)

type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, repository.ErrDuplicateGoal) {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID,
				"A goal for metric '"+req.Metric+"' already exists"))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// ListGoals handles GET /api/v1/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	goals, err := h.goalService.GetUserGoals(c.Request.Context(), userID)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	if goals == nil {
		goals = []models.Goal{}
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals, "count": len(goals)})
}

// GetGoal handles GET /api/v1/goals/:id
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	goalID := c.Param("id")
	if !validGoalID(c, goalID) {
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		h.writeGoalError(c, goalID, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// UpdateGoal handles PATCH /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	goalID := c.Param("id")
	if !validGoalID(c, goalID) {
		return
	}

	var req models.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			h.writeGoalError(c, goalID, err)
			return
		}
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c),
			err.Error(), "Invalid goal update"))
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal handles DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	goalID := c.Param("id")
	if !validGoalID(c, goalID) {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		h.writeGoalError(c, goalID, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProgress handles GET /api/v1/goals/:id/progress
func (h *GoalHandler) GetProgress(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	goalID := c.Param("id")
	if !validGoalID(c, goalID) {
		return
	}

	progress, err := h.goalService.GetProgress(c.Request.Context(), userID, goalID)
	if err != nil {
		h.writeGoalError(c, goalID, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetStreak handles GET /api/v1/goals/:id/streak
func (h *GoalHandler) GetStreak(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	goalID := c.Param("id")
	if !validGoalID(c, goalID) {
		return
	}

	days := queryInt(c, "days", 0)
	streak, err := h.goalService.GetStreak(c.Request.Context(), userID, goalID, days)
	if err != nil {
		h.writeGoalError(c, goalID, err)
		return
	}

	c.JSON(http.StatusOK, streak)
}

func (h *GoalHandler) writeGoalError(c *gin.Context, goalID string, err error) {
	requestID := apierror.GetRequestID(c)
	if errors.Is(err, repository.ErrGoalNotFound) {
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Goal", goalID))
		return
	}
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}
