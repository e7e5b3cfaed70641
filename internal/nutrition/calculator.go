// Package nutrition derives daily calorie and macro targets from user
// biometrics. Everything here is pure arithmetic; identical input always
// produces identical output.
package nutrition

import (
	"math"

	"github.com/Azim18821/track3-sub004/internal/domain"
)

// Fallbacks substituted for missing biometrics so plan generation stays
// available on incomplete profiles.
const (
	DefaultWeightKg = 70.0
	DefaultHeightCm = 170.0
	DefaultAge      = 30
)

// activityMultipliers maps activity level to the TDEE factor.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:        1.2,
	domain.ActivityLightlyActive:    1.375,
	domain.ActivityModeratelyActive: 1.55,
	domain.ActivityVeryActive:       1.725,
	domain.ActivityExtraActive:      1.9,
}

// macroRatios holds the protein/carb/fat calorie shares per goal.
type macroRatios struct {
	protein float64
	carbs   float64
	fat     float64
}

var goalMacros = map[domain.Goal]macroRatios{
	domain.GoalWeightLoss: {protein: 0.40, carbs: 0.25, fat: 0.35},
	domain.GoalMuscleGain: {protein: 0.30, carbs: 0.45, fat: 0.25},
	domain.GoalStrength:   {protein: 0.30, carbs: 0.30, fat: 0.40},
}

// Fallback split for endurance, maintenance and anything unmapped.
var defaultMacros = macroRatios{protein: 0.25, carbs: 0.50, fat: 0.25}

// Calculate derives NutritionData from biometrics, activity level and goal.
//
// BMR uses Mifflin-St Jeor; TDEE applies the activity multiplier; the goal
// adjustment is a 20% deficit for weight loss, a 10% surplus for muscle gain,
// and unchanged TDEE otherwise. Macro grams use 4 kcal/g for protein and
// carbs, 9 kcal/g for fat, rounded to the nearest integer.
func Calculate(weightKg, heightCm float64, age int, gender domain.Gender, activity domain.ActivityLevel, goal domain.Goal) domain.NutritionData {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	if heightCm <= 0 {
		heightCm = DefaultHeightCm
	}
	if age <= 0 {
		age = DefaultAge
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == domain.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = activityMultipliers[domain.ActivitySedentary]
	}
	tdee := bmr * multiplier

	calories := tdee
	switch goal {
	case domain.GoalWeightLoss:
		calories = tdee * 0.8
	case domain.GoalMuscleGain:
		calories = tdee * 1.1
	}

	ratios, ok := goalMacros[goal]
	if !ok {
		ratios = defaultMacros
	}

	adjusted := math.Round(calories)
	return domain.NutritionData{
		Calories: int(adjusted),
		Protein:  int(math.Round(adjusted * ratios.protein / 4)),
		Carbs:    int(math.Round(adjusted * ratios.carbs / 4)),
		Fat:      int(math.Round(adjusted * ratios.fat / 9)),
		BMR:      int(math.Round(bmr)),
		TDEE:     int(math.Round(tdee)),
	}
}

// CalculateForUser is the convenience entry point the orchestrator uses.
func CalculateForUser(user *domain.User, prefs domain.PlanPreferences) domain.NutritionData {
	return Calculate(user.WeightKg, user.HeightCm, user.Age, user.Gender, prefs.ActivityLevel, prefs.Goal)
}
