package repository

import (
	"context"

	"github.com/Azim18821/track3-sub004/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")

	// ErrPlanTransition means the previous active plan was deactivated but the
	// replacement insert failed, leaving the user with no active plan. Callers
	// must surface this distinctly; it is never safe to swallow.
	ErrPlanTransition = RepositoryError("active plan transition incomplete")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateBiometrics(ctx context.Context, id primitive.ObjectID, weightKg, heightCm float64, age int, gender domain.Gender) error
}

// FitnessPlanRepository defines the interface for interacting with generated
// fitness plans. The single-active-plan invariant is enforced here.
type FitnessPlanRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessPlan, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error)

	// DeactivateActive marks any active plans for the user inactive with the
	// given reason. Returns the number of plans deactivated.
	DeactivateActive(ctx context.Context, userID primitive.ObjectID, reason string) (int64, error)

	// ReplaceActive deactivates the user's current active plan (if any) and
	// inserts the given plan as the new active one. The pairing is atomic from
	// the caller's perspective; if the insert fails after the deactivation the
	// method returns ErrPlanTransition.
	ReplaceActive(ctx context.Context, plan *domain.FitnessPlan) (primitive.ObjectID, error)
}

// GenerationProgressRepository persists the per-user generation record.
// At most one record per user (unique index on userId).
type GenerationProgressRepository interface {
	Create(ctx context.Context, progress *domain.GenerationProgress) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error)
	Update(ctx context.Context, progress *domain.GenerationProgress) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}
