package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Azim18821/track3-sub004/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Eligibility is the outcome of the pre-start gate.
type Eligibility struct {
	CanStart      bool   `json:"canStart"`
	Reason        string `json:"reason,omitempty"`
	DaysRemaining int    `json:"daysRemaining,omitempty"`
}

// EligibilityChecker decides whether a user may start a new generation run.
type EligibilityChecker interface {
	Check(ctx context.Context, userID primitive.ObjectID) (Eligibility, error)
}

// cooldownChecker permits a new generation only after a configured number of
// days since the user's most recent plan was created.
type cooldownChecker struct {
	planRepo repository.FitnessPlanRepository
	cooldown time.Duration
}

// NewCooldownChecker creates the default eligibility checker.
func NewCooldownChecker(planRepo repository.FitnessPlanRepository, cooldownDays int) EligibilityChecker {
	return &cooldownChecker{
		planRepo: planRepo,
		cooldown: time.Duration(cooldownDays) * 24 * time.Hour,
	}
}

func (c *cooldownChecker) Check(ctx context.Context, userID primitive.ObjectID) (Eligibility, error) {
	if c.cooldown <= 0 {
		return Eligibility{CanStart: true}, nil
	}

	latest, err := c.planRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No plan yet; first generation is always allowed.
			return Eligibility{CanStart: true}, nil
		}
		return Eligibility{}, err
	}

	elapsed := time.Since(latest.CreatedAt)
	if elapsed >= c.cooldown {
		return Eligibility{CanStart: true}, nil
	}

	remaining := int(math.Ceil((c.cooldown - elapsed).Hours() / 24))
	return Eligibility{
		CanStart:      false,
		Reason:        fmt.Sprintf("a plan was generated recently; next generation available in %d day(s)", remaining),
		DaysRemaining: remaining,
	}, nil
}
