package generation

import (
	"fmt"
	"strings"

	"github.com/Azim18821/track3-sub004/internal/domain"
)

// profileSection renders the shared user/preference context for all prompts.
func profileSection(user *domain.User, prefs domain.PlanPreferences, nutrition domain.NutritionData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", prefs.Goal)
	fmt.Fprintf(&b, "Fitness level: %s\n", prefs.FitnessLevel)
	fmt.Fprintf(&b, "Workout days per week: %d\n", prefs.WorkoutDaysPerWeek)
	fmt.Fprintf(&b, "Workout duration: %d minutes per session\n", prefs.WorkoutDuration)
	fmt.Fprintf(&b, "Age: %d, Gender: %s, Weight: %.0fkg, Height: %.0fcm\n", user.Age, user.Gender, user.WeightKg, user.HeightCm)
	fmt.Fprintf(&b, "Daily targets: %d kcal, %dg protein, %dg carbs, %dg fat\n",
		nutrition.Calories, nutrition.Protein, nutrition.Carbs, nutrition.Fat)
	if len(prefs.DietaryPreferences) > 0 {
		fmt.Fprintf(&b, "Dietary preferences: %s\n", strings.Join(prefs.DietaryPreferences, ", "))
	}
	if len(prefs.Restrictions) > 0 {
		fmt.Fprintf(&b, "Restrictions (must be respected): %s\n", strings.Join(prefs.Restrictions, ", "))
	}
	return b.String()
}

func workoutPrompt(user *domain.User, prefs domain.PlanPreferences, nutrition domain.NutritionData) string {
	return fmt.Sprintf(`You are an expert personal trainer. Create a weekly workout plan for this client.

%s
Instructions:
1. Schedule exactly %d training days; mark the remaining days as rest days with an empty exercise list and focus "Rest".
2. Keep each session within the client's duration and fitness level.
3. Return the result strictly as a JSON object with this structure:
{
  "schedule": {
    "monday": {"focus": "Upper Body", "exercises": [{"name": "Bench Press", "sets": 3, "reps": "8-12", "rest": "90s"}]},
    "tuesday": {"focus": "Rest", "exercises": []}
  },
  "notes": "General guidance for the week"
}
Use lowercase day names monday through sunday as keys. Do not include any other text or formatting in your response.
`, profileSection(user, prefs, nutrition), prefs.WorkoutDaysPerWeek)
}

func mealPlanPrompt(user *domain.User, prefs domain.PlanPreferences, nutrition domain.NutritionData) string {
	return fmt.Sprintf(`You are an expert nutrition coach. Create a 7-day meal plan for this client.

%s
Instructions:
1. Each day must land close to the daily calorie and macro targets above.
2. Respect every dietary preference and restriction.
3. Keep the weekly grocery cost within %.2f %s.
4. Return the result strictly as a JSON object with this structure:
{
  "days": {
    "monday": {
      "breakfast": {"name": "Oatmeal", "description": "...", "calories": 400, "protein": 20, "carbs": 60, "fat": 10},
      "lunch": {...},
      "dinner": {...},
      "snacks": [{...}]
    }
  },
  "notes": "Prep guidance"
}
Use lowercase day names monday through sunday as keys. Do not include any other text or formatting in your response.
`, profileSection(user, prefs, nutrition), prefs.WeeklyBudget, prefs.Currency)
}

func groceryListPrompt(prefs domain.PlanPreferences, mealPlan *domain.MealPlan) string {
	var meals strings.Builder
	for day, md := range mealPlan.Days {
		fmt.Fprintf(&meals, "%s: %s; %s; %s", day, md.Breakfast.Name, md.Lunch.Name, md.Dinner.Name)
		for _, snack := range md.Snacks {
			fmt.Fprintf(&meals, "; %s", snack.Name)
		}
		meals.WriteString("\n")
	}

	return fmt.Sprintf(`You are a grocery planning assistant. Extract every ingredient needed to cook the meals below for one week and build a consolidated shopping list.

Meals for the week:
%s
Weekly budget: %.2f %s

Instructions:
1. Merge duplicate ingredients across meals into single entries with combined quantities.
2. Estimate a realistic cost per item in %s; keep the total within budget where possible.
3. Tag protein-dense items with their approximate macro content.
4. Return the result strictly as a JSON object with this structure:
{
  "items": [
    {"name": "Chicken breast", "category": "protein", "quantity": "1.5kg", "estimatedCost": 9.50, "protein": 31}
  ]
}
Do not include any other text or formatting in your response.
`, meals.String(), prefs.WeeklyBudget, prefs.Currency, prefs.Currency)
}
