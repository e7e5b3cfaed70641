package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The generation pipeline is presented to clients as six steps. Steps 4 and 5
// share one external call; the numbering is a UI pacing device.
const (
	StepNutrition    = 1 // derive calorie/macro targets (pure math)
	StepWorkout      = 2 // generate weekly workout schedule
	StepMealPlan     = 3 // generate weekly meal plan
	StepIngredients  = 4 // extract priced ingredients from the meal plan
	StepShoppingList = 5 // aggregate shopping list and budget totals
	StepComplete     = 6 // finalize and persist the plan

	TotalGenerationSteps = 6
)

// StepMessage returns the human-readable description clients poll for.
func StepMessage(step int) string {
	switch step {
	case StepNutrition:
		return "Calculating your nutrition targets"
	case StepWorkout:
		return "Building your weekly workout schedule"
	case StepMealPlan:
		return "Creating your meal plan"
	case StepIngredients:
		return "Extracting ingredients from your meals"
	case StepShoppingList:
		return "Putting together your shopping list"
	case StepComplete:
		return "Your fitness plan is ready"
	default:
		return "Preparing plan generation"
	}
}

// CancelledMessage is the error message recorded by a user-initiated cancel.
// Kept as a constant so status helpers can tell Cancelled from Failed.
const CancelledMessage = "cancelled by user"

// PartialResult accumulates step outputs so polling clients can render
// whatever is already available.
type PartialResult struct {
	NutritionData *NutritionData `bson:"nutritionData,omitempty" json:"nutritionData,omitempty"`
	WorkoutPlan   *WorkoutPlan   `bson:"workoutPlan,omitempty" json:"workoutPlan,omitempty"`
	MealPlan      *MealPlan      `bson:"mealPlan,omitempty" json:"mealPlan,omitempty"`
	GroceryList   *GroceryList   `bson:"groceryList,omitempty" json:"groceryList,omitempty"`
}

// GenerationProgress is the single in-flight (or last finished) generation
// record for a user. At most one row per user; the attempt ID distinguishes
// a superseding run from the one it replaced.
type GenerationProgress struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                 primitive.ObjectID `bson:"userId" json:"userId"`
	AttemptID              string             `bson:"attemptId" json:"attemptId"`
	Preferences            PlanPreferences    `bson:"preferences" json:"preferences"`
	IsGenerating           bool               `bson:"isGenerating" json:"isGenerating"`
	IsComplete             bool               `bson:"isComplete" json:"isComplete"`
	CurrentStep            int                `bson:"currentStep" json:"currentStep"`
	TotalSteps             int                `bson:"totalSteps" json:"totalSteps"`
	StepMessage            string             `bson:"stepMessage" json:"stepMessage"`
	EstimatedTimeRemaining int                `bson:"estimatedTimeRemaining" json:"estimatedTimeRemaining"` // seconds
	ErrorMessage           string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	RetryCount             int                `bson:"retryCount" json:"retryCount"`
	PartialResult          PartialResult      `bson:"partialResultData" json:"partialResultData"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Failed reports whether the run ended in a terminal error (including cancel).
func (p *GenerationProgress) Failed() bool {
	return !p.IsGenerating && !p.IsComplete && p.ErrorMessage != ""
}

// Cancelled reports whether the terminal error was a user cancel.
func (p *GenerationProgress) Cancelled() bool {
	return p.Failed() && p.ErrorMessage == CancelledMessage
}

// Terminal reports whether the state machine can no longer advance this record.
func (p *GenerationProgress) Terminal() bool {
	return p.IsComplete || !p.IsGenerating
}
