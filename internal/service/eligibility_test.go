package service

import (
	"context"
	"testing"
	"time"

	"github.com/Azim18821/track3-sub004/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedPlan(t *testing.T, plans *memPlanRepo, userID primitive.ObjectID, age time.Duration) {
	t.Helper()
	plans.mu.Lock()
	defer plans.mu.Unlock()
	plans.plans = append(plans.plans, domain.FitnessPlan{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		IsActive:  true,
		CreatedAt: time.Now().Add(-age),
	})
}

func TestCooldownAllowsFirstGeneration(t *testing.T) {
	checker := NewCooldownChecker(newMemPlanRepo(), 30)

	elig, err := checker.Check(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !elig.CanStart {
		t.Errorf("expected first generation to be allowed, got %+v", elig)
	}
}

func TestCooldownBlocksRecentPlan(t *testing.T) {
	plans := newMemPlanRepo()
	userID := primitive.NewObjectID()
	seedPlan(t, plans, userID, 3*24*time.Hour)

	checker := NewCooldownChecker(plans, 30)
	elig, err := checker.Check(context.Background(), userID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if elig.CanStart {
		t.Fatal("expected generation blocked inside cooldown window")
	}
	if elig.DaysRemaining != 27 {
		t.Errorf("expected 27 days remaining, got %d", elig.DaysRemaining)
	}
	if elig.Reason == "" {
		t.Error("expected a human-readable reason")
	}
}

func TestCooldownAllowsExpiredPlan(t *testing.T) {
	plans := newMemPlanRepo()
	userID := primitive.NewObjectID()
	seedPlan(t, plans, userID, 31*24*time.Hour)

	checker := NewCooldownChecker(plans, 30)
	elig, err := checker.Check(context.Background(), userID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !elig.CanStart {
		t.Errorf("expected generation allowed after cooldown, got %+v", elig)
	}
}

func TestZeroCooldownDisablesGate(t *testing.T) {
	plans := newMemPlanRepo()
	userID := primitive.NewObjectID()
	seedPlan(t, plans, userID, time.Hour)

	checker := NewCooldownChecker(plans, 0)
	elig, err := checker.Check(context.Background(), userID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !elig.CanStart {
		t.Errorf("expected zero cooldown to always allow, got %+v", elig)
	}
}
