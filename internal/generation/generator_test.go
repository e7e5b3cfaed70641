package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Azim18821/track3-sub004/internal/domain"
)

type stubTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testUser() *domain.User {
	return &domain.User{
		Name:     "Test Client",
		WeightKg: 80,
		HeightCm: 180,
		Age:      30,
		Gender:   domain.GenderMale,
	}
}

func testPrefs() domain.PlanPreferences {
	return domain.PlanPreferences{
		Goal:               domain.GoalMuscleGain,
		WorkoutDaysPerWeek: 4,
		WorkoutDuration:    60,
		FitnessLevel:       "intermediate",
		ActivityLevel:      domain.ActivityModeratelyActive,
		WeeklyBudget:       75,
		Currency:           "GBP",
	}
}

func testNutrition() domain.NutritionData {
	return domain.NutritionData{Calories: 3035, Protein: 228, Carbs: 341, Fat: 84, BMR: 1780, TDEE: 2759}
}

const validWorkoutJSON = `{"schedule": {"monday": {"focus": "Upper Body", "exercises": [{"name": "Bench Press", "sets": 3, "reps": "8-12", "rest": "90s"}]}}, "notes": "Warm up first"}`

func TestWorkoutPlanParsesResponse(t *testing.T) {
	stub := &stubTextGenerator{response: validWorkoutJSON}
	gen := NewPlanGenerator(stub)

	plan, err := gen.WorkoutPlan(context.Background(), testUser(), testPrefs(), testNutrition())
	if err != nil {
		t.Fatalf("WorkoutPlan failed: %v", err)
	}
	day, ok := plan.Schedule["monday"]
	if !ok {
		t.Fatal("expected monday in schedule")
	}
	if day.Focus != "Upper Body" || len(day.Exercises) != 1 {
		t.Errorf("unexpected day content: %+v", day)
	}
}

func TestWorkoutPlanPromptCarriesTargets(t *testing.T) {
	stub := &stubTextGenerator{response: validWorkoutJSON}
	gen := NewPlanGenerator(stub)

	if _, err := gen.WorkoutPlan(context.Background(), testUser(), testPrefs(), testNutrition()); err != nil {
		t.Fatalf("WorkoutPlan failed: %v", err)
	}
	prompt := stub.prompts[0]
	for _, want := range []string{"3035 kcal", "228g protein", "Workout days per week: 4"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestWorkoutPlanFencedJSON(t *testing.T) {
	stub := &stubTextGenerator{response: "```json\n" + validWorkoutJSON + "\n```"}
	gen := NewPlanGenerator(stub)

	plan, err := gen.WorkoutPlan(context.Background(), testUser(), testPrefs(), testNutrition())
	if err != nil {
		t.Fatalf("WorkoutPlan failed on fenced JSON: %v", err)
	}
	if len(plan.Schedule) == 0 {
		t.Error("expected non-empty schedule")
	}
}

func TestWorkoutPlanMalformedJSONIsFailure(t *testing.T) {
	stub := &stubTextGenerator{response: `Sure! Here is your plan: {"schedule"`}
	gen := NewPlanGenerator(stub)

	_, err := gen.WorkoutPlan(context.Background(), testUser(), testPrefs(), testNutrition())
	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %v", err)
	}
	if failure.Step != StepNameWorkout {
		t.Errorf("Failure.Step = %q, want %q", failure.Step, StepNameWorkout)
	}
}

func TestWorkoutPlanEmptyResponseIsFailure(t *testing.T) {
	stub := &stubTextGenerator{response: "   \n"}
	gen := NewPlanGenerator(stub)

	_, err := gen.WorkoutPlan(context.Background(), testUser(), testPrefs(), testNutrition())
	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %v", err)
	}
}

func TestMealPlanCallErrorIsFailure(t *testing.T) {
	cause := errors.New("model unavailable")
	stub := &stubTextGenerator{err: cause}
	gen := NewPlanGenerator(stub)

	_, err := gen.MealPlan(context.Background(), testUser(), testPrefs(), testNutrition())
	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %v", err)
	}
	if failure.Step != StepNameMeal {
		t.Errorf("Failure.Step = %q, want %q", failure.Step, StepNameMeal)
	}
	if !errors.Is(err, cause) {
		t.Error("Failure should wrap the underlying cause")
	}
}

func TestMealPlanEmptyDaysIsFailure(t *testing.T) {
	stub := &stubTextGenerator{response: `{"days": {}}`}
	gen := NewPlanGenerator(stub)

	if _, err := gen.MealPlan(context.Background(), testUser(), testPrefs(), testNutrition()); err == nil {
		t.Fatal("expected failure for empty meal plan")
	}
}

func TestGroceryListFromMealPlan(t *testing.T) {
	stub := &stubTextGenerator{response: `{"items": [{"name": "Chicken breast", "category": "protein", "quantity": "1.5kg", "estimatedCost": 9.5, "protein": 31}]}`}
	gen := NewPlanGenerator(stub)

	mealPlan := &domain.MealPlan{Days: map[string]domain.MealDay{
		"monday": {Breakfast: domain.Meal{Name: "Oatmeal"}, Lunch: domain.Meal{Name: "Chicken wrap"}, Dinner: domain.Meal{Name: "Salmon"}},
	}}

	list, err := gen.GroceryList(context.Background(), testPrefs(), mealPlan)
	if err != nil {
		t.Fatalf("GroceryList failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Name != "Chicken breast" {
		t.Errorf("unexpected items: %+v", list.Items)
	}
	if !strings.Contains(stub.prompts[0], "Chicken wrap") {
		t.Error("grocery prompt should list the week's meals")
	}
}

func TestGroceryListWithoutMealPlanIsFailure(t *testing.T) {
	gen := NewPlanGenerator(&stubTextGenerator{response: `{"items": []}`})
	if _, err := gen.GroceryList(context.Background(), testPrefs(), nil); err == nil {
		t.Fatal("expected failure without a meal plan")
	}
}
