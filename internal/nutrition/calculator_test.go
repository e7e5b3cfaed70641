package nutrition

import (
	"testing"

	"github.com/Azim18821/track3-sub004/internal/domain"
)

func TestCalculateMaleMaintenance(t *testing.T) {
	got := Calculate(80, 180, 30, domain.GenderMale, domain.ActivityModeratelyActive, domain.GoalMaintenance)

	// Mifflin-St Jeor: 10*80 + 6.25*180 - 5*30 + 5 = 1780
	if got.BMR != 1780 {
		t.Errorf("BMR = %d, want 1780", got.BMR)
	}
	// TDEE: 1780 * 1.55 = 2759
	if got.TDEE != 2759 {
		t.Errorf("TDEE = %d, want 2759", got.TDEE)
	}
	// Maintenance keeps TDEE unchanged.
	if got.Calories != 2759 {
		t.Errorf("Calories = %d, want 2759", got.Calories)
	}
	// Default split 25/50/25: protein 172g, carbs 345g, fat 77g.
	if got.Protein != 172 {
		t.Errorf("Protein = %d, want 172", got.Protein)
	}
	if got.Carbs != 345 {
		t.Errorf("Carbs = %d, want 345", got.Carbs)
	}
	if got.Fat != 77 {
		t.Errorf("Fat = %d, want 77", got.Fat)
	}
}

func TestCalculateFemaleWeightLoss(t *testing.T) {
	got := Calculate(70, 170, 30, domain.GenderFemale, domain.ActivitySedentary, domain.GoalWeightLoss)

	// 10*70 + 6.25*170 - 5*30 - 161 = 1451.5 -> 1452 rounded
	if got.BMR != 1452 {
		t.Errorf("BMR = %d, want 1452", got.BMR)
	}
	// 1451.5 * 1.2 = 1741.8 -> 1742
	if got.TDEE != 1742 {
		t.Errorf("TDEE = %d, want 1742", got.TDEE)
	}
	// 20% deficit: 1741.8 * 0.8 = 1393.44 -> 1393
	if got.Calories != 1393 {
		t.Errorf("Calories = %d, want 1393", got.Calories)
	}
	// Weight loss split 40/25/35.
	if got.Protein != 139 {
		t.Errorf("Protein = %d, want 139", got.Protein)
	}
	if got.Carbs != 87 {
		t.Errorf("Carbs = %d, want 87", got.Carbs)
	}
	if got.Fat != 54 {
		t.Errorf("Fat = %d, want 54", got.Fat)
	}
}

func TestCalculateMuscleGainSurplus(t *testing.T) {
	maintenance := Calculate(80, 180, 30, domain.GenderMale, domain.ActivityVeryActive, domain.GoalMaintenance)
	gain := Calculate(80, 180, 30, domain.GenderMale, domain.ActivityVeryActive, domain.GoalMuscleGain)

	if gain.Calories <= maintenance.Calories {
		t.Errorf("muscle gain calories %d should exceed maintenance %d", gain.Calories, maintenance.Calories)
	}
	// 10% surplus over the same TDEE.
	if gain.TDEE != maintenance.TDEE {
		t.Errorf("TDEE should not depend on goal: %d vs %d", gain.TDEE, maintenance.TDEE)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	a := Calculate(82.5, 177.3, 41, domain.GenderFemale, domain.ActivityExtraActive, domain.GoalStrength)
	b := Calculate(82.5, 177.3, 41, domain.GenderFemale, domain.ActivityExtraActive, domain.GoalStrength)
	if a != b {
		t.Errorf("identical input produced different output: %+v vs %+v", a, b)
	}
}

func TestCalculateMissingBiometricsFallbacks(t *testing.T) {
	got := Calculate(0, 0, 0, domain.GenderOther, domain.ActivitySedentary, domain.GoalMaintenance)
	want := Calculate(DefaultWeightKg, DefaultHeightCm, DefaultAge, domain.GenderOther, domain.ActivitySedentary, domain.GoalMaintenance)
	if got != want {
		t.Errorf("fallbacks not applied: got %+v, want %+v", got, want)
	}
	if got.Calories <= 0 {
		t.Errorf("fallback profile should still produce positive calories, got %d", got.Calories)
	}
}

func TestCalculateUnknownActivityDefaultsToSedentary(t *testing.T) {
	unknown := Calculate(80, 180, 30, domain.GenderMale, domain.ActivityLevel("couch"), domain.GoalMaintenance)
	sedentary := Calculate(80, 180, 30, domain.GenderMale, domain.ActivitySedentary, domain.GoalMaintenance)
	if unknown != sedentary {
		t.Errorf("unknown activity level should fall back to sedentary: %+v vs %+v", unknown, sedentary)
	}
}

func TestCalculateForUser(t *testing.T) {
	user := &domain.User{WeightKg: 80, HeightCm: 180, Age: 30, Gender: domain.GenderMale}
	prefs := domain.PlanPreferences{Goal: domain.GoalMaintenance, ActivityLevel: domain.ActivityModeratelyActive}
	got := CalculateForUser(user, prefs)
	if got.Calories != 2759 {
		t.Errorf("Calories = %d, want 2759", got.Calories)
	}
}

func TestMacroCaloriesRoughlyAddUp(t *testing.T) {
	got := Calculate(80, 180, 30, domain.GenderMale, domain.ActivityModeratelyActive, domain.GoalMuscleGain)
	sum := got.Protein*4 + got.Carbs*4 + got.Fat*9
	diff := sum - got.Calories
	if diff < -10 || diff > 10 {
		t.Errorf("macros (%d kcal) drift too far from calorie target (%d)", sum, got.Calories)
	}
}
