package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Azim18821/track3-sub004/internal/domain"
	"github.com/Azim18821/track3-sub004/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fitnessPlanCollectionName = "fitness_plans"

// mongoFitnessPlanRepository implements repository.FitnessPlanRepository.
type mongoFitnessPlanRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoFitnessPlanRepository creates a new FitnessPlan repository.
func NewMongoFitnessPlanRepository(db *mongo.Database) repository.FitnessPlanRepository {
	return &mongoFitnessPlanRepository{
		db:         db,
		collection: db.Collection(fitnessPlanCollectionName),
	}
}

// GetByID retrieves a single plan by its ID.
func (r *mongoFitnessPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetActiveByUserID retrieves the user's single active plan.
func (r *mongoFitnessPlanRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	filter := bson.M{"userId": userID, "isActive": true}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves all plans for a user, active first, newest first.
func (r *mongoFitnessPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error) {
	var plans []domain.FitnessPlan
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{
		{Key: "isActive", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetLatestByUserID retrieves the most recently created plan regardless of
// active state. Used by the generation cooldown check.
func (r *mongoFitnessPlanRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	filter := bson.M{"userId": userID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// DeactivateActive marks any active plans for the user inactive.
func (r *mongoFitnessPlanRepository) DeactivateActive(ctx context.Context, userID primitive.ObjectID, reason string) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userID, "isActive": true},
		bson.M{"$set": bson.M{
			"isActive":           false,
			"deactivatedAt":      time.Now().UTC(),
			"deactivationReason": reason,
		}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// ReplaceActive deactivates the user's current active plan and inserts the
// given plan as the new active one. Runs inside a session transaction when
// the deployment supports it; on standalone mongod it falls back to the
// sequential pairing, reporting ErrPlanTransition if the insert fails after
// the deactivation already happened.
func (r *mongoFitnessPlanRepository) ReplaceActive(ctx context.Context, plan *domain.FitnessPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires userId")
	}
	plan.ID = primitive.NewObjectID()
	plan.IsActive = true
	plan.CreatedAt = time.Now().UTC()
	plan.DeactivatedAt = nil
	plan.DeactivationReason = ""

	session, err := r.db.Client().StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		_, txErr := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			if _, err := r.DeactivateActive(sc, plan.UserID, domain.ReasonSuperseded); err != nil {
				return nil, err
			}
			_, err := r.collection.InsertOne(sc, plan)
			return nil, err
		})
		if txErr == nil {
			return plan.ID, nil
		}
		if !transactionsUnsupported(txErr) {
			return primitive.NilObjectID, txErr
		}
		// Standalone deployment: retry without a transaction below.
	}

	if _, err := r.DeactivateActive(ctx, plan.UserID, domain.ReasonSuperseded); err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		// The previous plan is already deactivated; the caller must treat
		// this as a distinct inconsistency, not a plain write failure.
		return primitive.NilObjectID, fmt.Errorf("%w: %v", repository.ErrPlanTransition, err)
	}
	return plan.ID, nil
}

// transactionsUnsupported detects the standalone-mongod errors raised when
// multi-document transactions are not available.
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 { // IllegalOperation
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}

// EnsureFitnessPlanIndexes creates necessary indexes. Call during startup.
func EnsureFitnessPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: the user's active plan.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
		{
			// Cooldown check sorts by creation date.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
