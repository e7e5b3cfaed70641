package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Azim18821/track3-sub004/internal/domain"
	"github.com/Azim18821/track3-sub004/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "generation_progress"

// mongoProgressRepository implements repository.GenerationProgressRepository.
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new GenerationProgress repository.
func NewMongoProgressRepository(db *mongo.Database) repository.GenerationProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a fresh progress record. The unique index on userId rejects
// a second record for the same user; callers delete the stale record first.
func (r *mongoProgressRepository) Create(ctx context.Context, progress *domain.GenerationProgress) (primitive.ObjectID, error) {
	if progress.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress requires userId")
	}
	progress.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, progress)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted progress ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves the user's generation record.
func (r *mongoProgressRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error) {
	var progress domain.GenerationProgress
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// Update overwrites the mutable fields of the record identified by _id.
func (r *mongoProgressRepository) Update(ctx context.Context, progress *domain.GenerationProgress) error {
	if progress.ID == primitive.NilObjectID {
		return errors.New("progress ID is required for update")
	}

	filter := bson.M{"_id": progress.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"attemptId":              progress.AttemptID,
			"isGenerating":           progress.IsGenerating,
			"isComplete":             progress.IsComplete,
			"currentStep":            progress.CurrentStep,
			"totalSteps":             progress.TotalSteps,
			"stepMessage":            progress.StepMessage,
			"estimatedTimeRemaining": progress.EstimatedTimeRemaining,
			"errorMessage":           progress.ErrorMessage,
			"retryCount":             progress.RetryCount,
			"partialResultData":      progress.PartialResult,
			"updatedAt":              time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes the user's generation record if one exists.
func (r *mongoProgressRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}

// EnsureProgressIndexes creates necessary indexes. Call during startup.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One generation record per user.
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
