package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is the canonical fitness goal vocabulary. Legacy spellings from older
// clients are accepted at the boundary via NormalizeGoal.
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalStrength    Goal = "strength"
	GoalEndurance   Goal = "endurance"
	GoalMaintenance Goal = "maintenance"
)

// NormalizeGoal maps legacy goal spellings onto the canonical set.
// Unknown values normalize to maintenance so nutrition math stays defined.
func NormalizeGoal(raw string) Goal {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "weight_loss", "weightloss", "fat_loss", "fatloss":
		return GoalWeightLoss
	case "muscle_gain", "musclegain", "musclebuild", "muscle_build", "bulking":
		return GoalMuscleGain
	case "strength":
		return GoalStrength
	case "endurance", "stamina", "cardio":
		return GoalEndurance
	default:
		return GoalMaintenance
	}
}

// ActivityLevel describes habitual activity for the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtraActive      ActivityLevel = "extra_active"
)

// NormalizeActivityLevel accepts the short aliases ("light", "moderate") some
// entry points send and defaults unknown input to sedentary.
func NormalizeActivityLevel(raw string) ActivityLevel {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "lightly_active", "light", "lightlyactive":
		return ActivityLightlyActive
	case "moderately_active", "moderate", "moderatelyactive":
		return ActivityModeratelyActive
	case "very_active", "veryactive":
		return ActivityVeryActive
	case "extra_active", "extraactive", "athlete":
		return ActivityExtraActive
	default:
		return ActivitySedentary
	}
}

// PlanPreferences is the validated preference object a generation run is
// parameterized with. Range/enum validation happens at the HTTP boundary.
type PlanPreferences struct {
	Goal               Goal          `bson:"goal" json:"goal"`
	WorkoutDaysPerWeek int           `bson:"workoutDaysPerWeek" json:"workoutDaysPerWeek"`
	WorkoutDuration    int           `bson:"workoutDuration" json:"workoutDuration"` // minutes per session
	FitnessLevel       string        `bson:"fitnessLevel" json:"fitnessLevel"`       // beginner/intermediate/advanced
	ActivityLevel      ActivityLevel `bson:"activityLevel" json:"activityLevel"`
	DietaryPreferences []string      `bson:"dietaryPreferences,omitempty" json:"dietaryPreferences,omitempty"`
	Restrictions       []string      `bson:"restrictions,omitempty" json:"restrictions,omitempty"`
	WeeklyBudget       float64       `bson:"weeklyBudget" json:"weeklyBudget"`
	Currency           string        `bson:"currency" json:"currency"`
}

// NutritionData holds daily targets derived from biometrics. Pure output of
// the nutrition calculator; no external call involved.
type NutritionData struct {
	Calories int `bson:"calories" json:"calories"`
	Protein  int `bson:"protein" json:"protein"` // grams
	Carbs    int `bson:"carbs" json:"carbs"`     // grams
	Fat      int `bson:"fat" json:"fat"`         // grams
	BMR      int `bson:"bmr" json:"bmr"`
	TDEE     int `bson:"tdee" json:"tdee"`
}

// WorkoutExercise is a single exercise prescription within a workout day.
type WorkoutExercise struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps string `bson:"reps" json:"reps"` // e.g. "8-12" or "30s"
	Rest string `bson:"rest,omitempty" json:"rest,omitempty"`
}

// WorkoutDay is one scheduled session.
type WorkoutDay struct {
	Focus     string            `bson:"focus" json:"focus"` // e.g. "Upper Body", "Rest"
	Exercises []WorkoutExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
}

// WorkoutPlan is a weekly schedule keyed by day name ("monday".."sunday").
type WorkoutPlan struct {
	Schedule map[string]WorkoutDay `bson:"schedule" json:"schedule"`
	Notes    string                `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Meal is a single meal with its macro estimate.
type Meal struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Calories    int    `bson:"calories" json:"calories"`
	Protein     int    `bson:"protein" json:"protein"`
	Carbs       int    `bson:"carbs" json:"carbs"`
	Fat         int    `bson:"fat" json:"fat"`
}

// MealDay groups the meals for one day.
type MealDay struct {
	Breakfast Meal   `bson:"breakfast" json:"breakfast"`
	Lunch     Meal   `bson:"lunch" json:"lunch"`
	Dinner    Meal   `bson:"dinner" json:"dinner"`
	Snacks    []Meal `bson:"snacks,omitempty" json:"snacks,omitempty"`
}

// MealPlan is a weekly meal schedule keyed by day name.
type MealPlan struct {
	Days  map[string]MealDay `bson:"days" json:"days"`
	Notes string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// GroceryItem is one priced, macro-tagged shopping list entry.
type GroceryItem struct {
	Name          string  `bson:"name" json:"name"`
	Category      string  `bson:"category,omitempty" json:"category,omitempty"` // produce, protein, dairy, ...
	Quantity      string  `bson:"quantity" json:"quantity"`                     // e.g. "500g", "2 packs"
	EstimatedCost float64 `bson:"estimatedCost" json:"estimatedCost"`
	Protein       int     `bson:"protein,omitempty" json:"protein,omitempty"`
	Carbs         int     `bson:"carbs,omitempty" json:"carbs,omitempty"`
	Fat           int     `bson:"fat,omitempty" json:"fat,omitempty"`
}

// GroceryList is the aggregated weekly shopping list.
type GroceryList struct {
	Items          []GroceryItem `bson:"items" json:"items"`
	EstimatedTotal float64       `bson:"estimatedTotal" json:"estimatedTotal"`
	Currency       string        `bson:"currency,omitempty" json:"currency,omitempty"`
}

// PlanSummary is the headline numbers shown on the dashboard.
type PlanSummary struct {
	WeeklyWorkouts int     `bson:"weeklyWorkouts" json:"weeklyWorkouts"`
	DailyCalories  int     `bson:"dailyCalories" json:"dailyCalories"`
	DailyProtein   int     `bson:"dailyProtein" json:"dailyProtein"`
	WeeklyBudget   float64 `bson:"weeklyBudget" json:"weeklyBudget"`
	Currency       string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// Deactivation reasons recorded when an active plan is retired.
const (
	ReasonSuperseded = "superseded by new plan generation"
	ReasonReset      = "reset by user"
)

// FitnessPlan is the durable artifact of a completed generation run.
// Invariant: at most one plan with IsActive=true per user at any time.
type FitnessPlan struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	Preferences        PlanPreferences    `bson:"preferences" json:"preferences"`
	NutritionData      NutritionData      `bson:"nutritionData" json:"nutritionData"`
	WorkoutPlan        WorkoutPlan        `bson:"workoutPlan" json:"workoutPlan"`
	MealPlan           MealPlan           `bson:"mealPlan" json:"mealPlan"`
	GroceryList        GroceryList        `bson:"groceryList" json:"groceryList"`
	Summary            PlanSummary        `bson:"summary" json:"summary"`
	ArchiveKey         string             `bson:"archiveKey,omitempty" json:"-"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	DeactivatedAt      *time.Time         `bson:"deactivatedAt,omitempty" json:"deactivatedAt,omitempty"`
	DeactivationReason string             `bson:"deactivationReason,omitempty" json:"deactivationReason,omitempty"`
}
