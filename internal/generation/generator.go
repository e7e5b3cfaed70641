package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Azim18821/track3-sub004/internal/domain"
)

// Step names carried on Failure values.
const (
	StepNameWorkout = "workout plan"
	StepNameMeal    = "meal plan"
	StepNameGrocery = "grocery list"
)

// PlanGenerator produces the externally generated plan documents. It holds
// the injected TextGenerator; no package-level client state.
type PlanGenerator struct {
	textGen TextGenerator
}

// NewPlanGenerator creates a PlanGenerator around the given text generator.
func NewPlanGenerator(textGen TextGenerator) *PlanGenerator {
	return &PlanGenerator{textGen: textGen}
}

// WorkoutPlan generates the weekly workout schedule.
func (g *PlanGenerator) WorkoutPlan(ctx context.Context, user *domain.User, prefs domain.PlanPreferences, nutrition domain.NutritionData) (*domain.WorkoutPlan, error) {
	raw, err := g.generate(ctx, StepNameWorkout, workoutPrompt(user, prefs, nutrition))
	if err != nil {
		return nil, err
	}
	var plan domain.WorkoutPlan
	if err := decodeJSON(raw, &plan); err != nil {
		return nil, &Failure{Step: StepNameWorkout, Err: err}
	}
	if len(plan.Schedule) == 0 {
		return nil, &Failure{Step: StepNameWorkout, Err: fmt.Errorf("empty schedule in response")}
	}
	return &plan, nil
}

// MealPlan generates the weekly meal plan against the nutrition targets.
func (g *PlanGenerator) MealPlan(ctx context.Context, user *domain.User, prefs domain.PlanPreferences, nutrition domain.NutritionData) (*domain.MealPlan, error) {
	raw, err := g.generate(ctx, StepNameMeal, mealPlanPrompt(user, prefs, nutrition))
	if err != nil {
		return nil, err
	}
	var plan domain.MealPlan
	if err := decodeJSON(raw, &plan); err != nil {
		return nil, &Failure{Step: StepNameMeal, Err: err}
	}
	if len(plan.Days) == 0 {
		return nil, &Failure{Step: StepNameMeal, Err: fmt.Errorf("empty meal plan in response")}
	}
	return &plan, nil
}

// GroceryList extracts the week's ingredients from the meal plan.
func (g *PlanGenerator) GroceryList(ctx context.Context, prefs domain.PlanPreferences, mealPlan *domain.MealPlan) (*domain.GroceryList, error) {
	if mealPlan == nil || len(mealPlan.Days) == 0 {
		return nil, &Failure{Step: StepNameGrocery, Err: fmt.Errorf("no meal plan to extract ingredients from")}
	}
	raw, err := g.generate(ctx, StepNameGrocery, groceryListPrompt(prefs, mealPlan))
	if err != nil {
		return nil, err
	}
	var list domain.GroceryList
	if err := decodeJSON(raw, &list); err != nil {
		return nil, &Failure{Step: StepNameGrocery, Err: err}
	}
	if len(list.Items) == 0 {
		return nil, &Failure{Step: StepNameGrocery, Err: fmt.Errorf("empty grocery list in response")}
	}
	return &list, nil
}

// generate runs the external call and normalizes call-level failures.
func (g *PlanGenerator) generate(ctx context.Context, step, prompt string) (string, error) {
	raw, err := g.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", &Failure{Step: step, Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return "", &Failure{Step: step, Err: fmt.Errorf("empty response from model")}
	}
	return raw, nil
}

// decodeJSON strictly decodes a model response, tolerating the markdown code
// fences some models wrap JSON in despite instructions.
func decodeJSON(raw string, v interface{}) error {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	return nil
}
