package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azim18821/track3-sub004/internal/domain"
	"github.com/Azim18821/track3-sub004/internal/repository"
	"github.com/Azim18821/track3-sub004/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachHandler exposes the AI plan-generation endpoints.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// --- Request/Response Structs ---

type GenerateRequest struct {
	Goal               string   `json:"goal" binding:"required"`
	WorkoutDaysPerWeek int      `json:"workoutDaysPerWeek" binding:"required,min=1,max=7"`
	WorkoutDuration    int      `json:"workoutDuration" binding:"omitempty,min=10,max=240"`
	FitnessLevel       string   `json:"fitnessLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	ActivityLevel      string   `json:"activityLevel" binding:"omitempty"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	Restrictions       []string `json:"restrictions"`
	WeeklyBudget       float64  `json:"weeklyBudget" binding:"omitempty,gte=0"`
	Currency           string   `json:"currency" binding:"omitempty,len=3"`
}

// ProgressResponse is the polling payload. Status is derived from the
// record's flags so clients don't re-implement the state machine.
type ProgressResponse struct {
	Status                 string                 `json:"status"` // running, complete, failed, cancelled
	AttemptID              string                 `json:"attemptId"`
	CurrentStep            int                    `json:"currentStep"`
	TotalSteps             int                    `json:"totalSteps"`
	StepMessage            string                 `json:"stepMessage"`
	EstimatedTimeRemaining int                    `json:"estimatedTimeRemaining"`
	ErrorMessage           string                 `json:"errorMessage,omitempty"`
	RetryCount             int                    `json:"retryCount,omitempty"`
	PartialResult          *domain.PartialResult  `json:"partialResult,omitempty"`
	Preferences            domain.PlanPreferences `json:"preferences"`
	UpdatedAt              time.Time              `json:"updatedAt"`
}

type PlanHistoryEntry struct {
	ID                 string             `json:"id"`
	Summary            domain.PlanSummary `json:"summary"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	DeactivatedAt      *time.Time         `json:"deactivatedAt,omitempty"`
	DeactivationReason string             `json:"deactivationReason,omitempty"`
}

func mapProgressToResponse(p *domain.GenerationProgress) ProgressResponse {
	status := "running"
	switch {
	case p.IsComplete:
		status = "complete"
	case p.Cancelled():
		status = "cancelled"
	case p.Failed():
		status = "failed"
	}

	resp := ProgressResponse{
		Status:                 status,
		AttemptID:              p.AttemptID,
		CurrentStep:            p.CurrentStep,
		TotalSteps:             p.TotalSteps,
		StepMessage:            p.StepMessage,
		EstimatedTimeRemaining: p.EstimatedTimeRemaining,
		ErrorMessage:           p.ErrorMessage,
		RetryCount:             p.RetryCount,
		Preferences:            p.Preferences,
		UpdatedAt:              p.UpdatedAt,
	}
	if p.PartialResult != (domain.PartialResult{}) {
		partial := p.PartialResult
		resp.PartialResult = &partial
	}
	return resp
}

// userObjectID extracts the authenticated user's ID from the request context.
func userObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Invalid user ID in token")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// --- Handler Methods ---

// Generate starts a new plan generation run for the authenticated user.
func (h *CoachHandler) Generate(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	prefs := domain.PlanPreferences{
		Goal:               domain.Goal(req.Goal),
		WorkoutDaysPerWeek: req.WorkoutDaysPerWeek,
		WorkoutDuration:    req.WorkoutDuration,
		FitnessLevel:       req.FitnessLevel,
		ActivityLevel:      domain.ActivityLevel(req.ActivityLevel),
		DietaryPreferences: req.DietaryPreferences,
		Restrictions:       req.Restrictions,
		WeeklyBudget:       req.WeeklyBudget,
		Currency:           req.Currency,
	}

	progress, err := h.coachService.StartGeneration(c.Request.Context(), userID, prefs)
	if err != nil {
		var eligErr *service.EligibilityError
		switch {
		case errors.As(err, &eligErr):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":         eligErr.Error(),
				"daysRemaining": eligErr.DaysRemaining,
			})
		case errors.Is(err, service.ErrInvalidPreferences):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start plan generation")
		}
		return
	}

	c.JSON(http.StatusAccepted, mapProgressToResponse(progress))
}

// Status returns the current generation progress for polling clients.
func (h *CoachHandler) Status(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	progress, err := h.coachService.GetStatus(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoGeneration) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch generation status")
		}
		return
	}

	c.JSON(http.StatusOK, mapProgressToResponse(progress))
}

// Continue nudges a stalled run forward. Safe to call repeatedly; a step
// already in flight is never doubled.
func (h *CoachHandler) Continue(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	progress, err := h.coachService.ContinueGeneration(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyComplete):
			// Not an error from the client's perspective.
			c.JSON(http.StatusOK, mapProgressToResponse(progress))
		case errors.Is(err, service.ErrNoGeneration):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotGenerating):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to continue plan generation")
		}
		return
	}

	c.JSON(http.StatusOK, mapProgressToResponse(progress))
}

// Cancel stops a running generation.
func (h *CoachHandler) Cancel(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	progress, err := h.coachService.CancelGeneration(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoGeneration):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCannotCancel):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to cancel plan generation")
		}
		return
	}

	c.JSON(http.StatusOK, mapProgressToResponse(progress))
}

// Reset clears any generation state for the user. Always succeeds when
// there is nothing to reset.
func (h *CoachHandler) Reset(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	if err := h.coachService.ResetGeneration(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to reset plan generation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan generation state reset"})
}

// Result returns the completed plan.
func (h *CoachHandler) Result(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	result, err := h.coachService.GetResult(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResultNotReady):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrPlanTransition):
			abortWithError(c, http.StatusInternalServerError, "Plan storage is in an inconsistent state; reset and regenerate")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch plan")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Plans returns the user's plan history, newest first.
func (h *CoachHandler) Plans(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	plans, err := h.coachService.GetPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch plan history")
		return
	}

	entries := make([]PlanHistoryEntry, 0, len(plans))
	for _, p := range plans {
		entries = append(entries, PlanHistoryEntry{
			ID:                 p.ID.Hex(),
			Summary:            p.Summary,
			IsActive:           p.IsActive,
			CreatedAt:          p.CreatedAt,
			DeactivatedAt:      p.DeactivatedAt,
			DeactivationReason: p.DeactivationReason,
		})
	}
	c.JSON(http.StatusOK, gin.H{"plans": entries})
}
