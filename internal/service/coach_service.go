package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Azim18821/track3-sub004/internal/domain"
	"github.com/Azim18821/track3-sub004/internal/nutrition"
	"github.com/Azim18821/track3-sub004/internal/repository"
	"github.com/Azim18821/track3-sub004/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPreferences = errors.New("invalid plan preferences")
	ErrNoGeneration       = errors.New("no plan generation found for this user")
	ErrNotGenerating      = errors.New("plan generation is not currently running")
	ErrAlreadyComplete    = errors.New("plan generation already complete")
	ErrCannotCancel       = errors.New("cannot cancel a finished plan generation")
	ErrResultNotReady     = errors.New("plan generation has not completed")

	// errRunSuperseded is internal: the record a step was computing for was
	// cancelled, reset or replaced while the step was in flight. The step's
	// result is discarded, never merged.
	errRunSuperseded = errors.New("generation run superseded")
)

// EligibilityError reports a rejected start with the cooldown hint.
type EligibilityError struct {
	Eligibility
}

func (e *EligibilityError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "not eligible to start plan generation"
}

// StepGenerator produces the externally generated plan documents.
// generation.PlanGenerator is the production implementation.
type StepGenerator interface {
	WorkoutPlan(ctx context.Context, user *domain.User, prefs domain.PlanPreferences, nutrition domain.NutritionData) (*domain.WorkoutPlan, error)
	MealPlan(ctx context.Context, user *domain.User, prefs domain.PlanPreferences, nutrition domain.NutritionData) (*domain.MealPlan, error)
	GroceryList(ctx context.Context, prefs domain.PlanPreferences, mealPlan *domain.MealPlan) (*domain.GroceryList, error)
}

// GenerationSettings tunes step execution.
type GenerationSettings struct {
	StepTimeout  time.Duration // bound on each external model call
	MaxRetries   int           // immediate re-attempts per step
	RetryDelay   time.Duration // pause before a re-attempt
	StepEstimate time.Duration // per-step share of the remaining-time hint
}

func (s GenerationSettings) withDefaults() GenerationSettings {
	if s.StepTimeout <= 0 {
		s.StepTimeout = 90 * time.Second
	}
	if s.MaxRetries < 0 {
		s.MaxRetries = 0
	}
	if s.RetryDelay <= 0 {
		s.RetryDelay = 2 * time.Second
	}
	if s.StepEstimate <= 0 {
		s.StepEstimate = 30 * time.Second
	}
	return s
}

// PlanGenerationResult is the full payload returned once a run completes.
type PlanGenerationResult struct {
	PlanID        string                 `json:"planId"`
	Preferences   domain.PlanPreferences `json:"preferences"`
	NutritionData domain.NutritionData   `json:"nutritionData"`
	WorkoutPlan   domain.WorkoutPlan     `json:"workoutPlan"`
	MealPlan      domain.MealPlan        `json:"mealPlan"`
	GroceryList   domain.GroceryList     `json:"groceryList"`
	Summary       domain.PlanSummary     `json:"summary"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// CoachService drives the AI plan-generation state machine.
type CoachService interface {
	StartGeneration(ctx context.Context, userID primitive.ObjectID, prefs domain.PlanPreferences) (*domain.GenerationProgress, error)
	GetStatus(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error)
	ContinueGeneration(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error)
	CancelGeneration(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error)
	ResetGeneration(ctx context.Context, userID primitive.ObjectID) error
	GetResult(ctx context.Context, userID primitive.ObjectID) (*PlanGenerationResult, error)
	GetPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error)
}

// runState serializes step execution for one user within this process.
type runState struct {
	mu       sync.Mutex
	inFlight bool
}

// coachService implements CoachService.
type coachService struct {
	userRepo     repository.UserRepository
	planRepo     repository.FitnessPlanRepository
	progressRepo repository.GenerationProgressRepository
	generator    StepGenerator
	eligibility  EligibilityChecker
	archive      storage.PlanArchive // optional; nil disables archiving
	settings     GenerationSettings

	mu   sync.Mutex
	runs map[primitive.ObjectID]*runState
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(
	userRepo repository.UserRepository,
	planRepo repository.FitnessPlanRepository,
	progressRepo repository.GenerationProgressRepository,
	generator StepGenerator,
	eligibility EligibilityChecker,
	archive storage.PlanArchive,
	settings GenerationSettings,
) CoachService {
	return &coachService{
		userRepo:     userRepo,
		planRepo:     planRepo,
		progressRepo: progressRepo,
		generator:    generator,
		eligibility:  eligibility,
		archive:      archive,
		settings:     settings.withDefaults(),
		runs:         make(map[primitive.ObjectID]*runState),
	}
}

// === Operations ===

// StartGeneration begins a new run. Starting supersedes any stale record for
// the user; a step already in flight keeps executing but its attempt ID no
// longer matches, so its result is discarded.
func (s *coachService) StartGeneration(ctx context.Context, userID primitive.ObjectID, prefs domain.PlanPreferences) (*domain.GenerationProgress, error) {
	prefs, err := normalizePreferences(prefs)
	if err != nil {
		return nil, err
	}

	elig, err := s.eligibility.Check(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !elig.CanStart {
		return nil, &EligibilityError{elig}
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	progress := &domain.GenerationProgress{
		UserID:                 userID,
		AttemptID:              uuid.NewString(),
		Preferences:            prefs,
		IsGenerating:           true,
		CurrentStep:            domain.StepNutrition,
		TotalSteps:             domain.TotalGenerationSteps,
		StepMessage:            domain.StepMessage(domain.StepNutrition),
		EstimatedTimeRemaining: s.estimate(domain.StepNutrition),
	}

	rs := s.lockRun(userID)
	defer s.unlockRun(userID, rs)

	// Retire the current active plan before generating its replacement.
	if _, err := s.planRepo.DeactivateActive(ctx, userID, domain.ReasonSuperseded); err != nil {
		return nil, err
	}
	if err := s.progressRepo.DeleteByUserID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.progressRepo.Create(ctx, progress); err != nil {
		return nil, err
	}

	if !rs.inFlight {
		rs.inFlight = true
		go s.runSteps(userID)
	}

	log.Printf("Plan generation started for user %s (attempt %s)", userID.Hex(), progress.AttemptID)
	return progress, nil
}

// GetStatus returns the user's current generation record.
func (s *coachService) GetStatus(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error) {
	progress, err := s.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoGeneration
		}
		return nil, err
	}
	return progress, nil
}

// ContinueGeneration nudges a run forward. If a step is already in flight
// for the user this is an idempotent no-op returning the current snapshot;
// redundant polling can never double-apply a step.
func (s *coachService) ContinueGeneration(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error) {
	progress, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if progress.IsComplete {
		return progress, ErrAlreadyComplete
	}
	if !progress.IsGenerating {
		return progress, ErrNotGenerating
	}

	rs := s.lockRun(userID)
	if !rs.inFlight {
		rs.inFlight = true
		go s.runSteps(userID)
	}
	s.unlockRun(userID, rs)

	// Return the freshest snapshot available.
	if current, err := s.progressRepo.GetByUserID(ctx, userID); err == nil {
		return current, nil
	}
	return progress, nil
}

// CancelGeneration stops a running generation. Cancellation is cooperative:
// an external call already issued completes but its result is discarded.
func (s *coachService) CancelGeneration(ctx context.Context, userID primitive.ObjectID) (*domain.GenerationProgress, error) {
	// The run lock is held across the whole read-modify-write so a step
	// advance committing concurrently cannot overwrite the cancel and
	// resurrect the run.
	rs := s.lockRun(userID)
	defer s.unlockRun(userID, rs)

	progress, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if progress.Terminal() {
		return progress, ErrCannotCancel
	}

	progress.IsGenerating = false
	progress.ErrorMessage = domain.CancelledMessage
	progress.EstimatedTimeRemaining = 0
	if err := s.progressRepo.Update(ctx, progress); err != nil {
		return nil, err
	}
	log.Printf("Plan generation cancelled for user %s at step %d", userID.Hex(), progress.CurrentStep)
	return progress, nil
}

// ResetGeneration is the stuck-state escape hatch: cancels any in-flight
// run, deletes the progress record, deactivates plans that might be in an
// inconsistent state, and drops the discarded plan's archived snapshot.
// Idempotent; succeeds with nothing to reset.
func (s *coachService) ResetGeneration(ctx context.Context, userID primitive.ObjectID) error {
	rs := s.lockRun(userID)
	defer s.unlockRun(userID, rs)

	active, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := s.progressRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if _, err := s.planRepo.DeactivateActive(ctx, userID, domain.ReasonReset); err != nil {
		return err
	}

	if s.archive != nil && active != nil && active.ArchiveKey != "" {
		if err := s.archive.DeleteArchive(ctx, active.ArchiveKey); err != nil {
			log.Printf("WARN: failed to delete archived plan %s for user %s: %v", active.ArchiveKey, userID.Hex(), err)
		}
	}

	log.Printf("Plan generation reset for user %s", userID.Hex())
	return nil
}

// GetResult returns the full plan once the run is complete.
func (s *coachService) GetResult(ctx context.Context, userID primitive.ObjectID) (*PlanGenerationResult, error) {
	progress, err := s.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResultNotReady
		}
		return nil, err
	}
	if !progress.IsComplete {
		return nil, ErrResultNotReady
	}

	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Progress says complete but no active plan exists. Surface the
			// inconsistency; it must not masquerade as a 404.
			return nil, fmt.Errorf("%w: generation complete but no active plan found", repository.ErrPlanTransition)
		}
		return nil, err
	}

	return &PlanGenerationResult{
		PlanID:        plan.ID.Hex(),
		Preferences:   plan.Preferences,
		NutritionData: plan.NutritionData,
		WorkoutPlan:   plan.WorkoutPlan,
		MealPlan:      plan.MealPlan,
		GroceryList:   plan.GroceryList,
		Summary:       plan.Summary,
		CreatedAt:     plan.CreatedAt,
	}, nil
}

// GetPlans returns the user's plan history, active first.
func (s *coachService) GetPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

// === Step execution ===

// runFor returns the per-user run state, creating it on first use.
func (s *coachService) runFor(userID primitive.ObjectID) *runState {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs, ok := s.runs[userID]
	if !ok {
		rs = &runState{}
		s.runs[userID] = rs
	}
	return rs
}

// lockRun returns the user's run state with its lock held. Every mutation of
// the user's progress record happens under this lock, so cancels, starts and
// step advances serialize instead of losing each other's writes. The map
// entry is revalidated after locking: unlockRun may have pruned it, in which
// case a fresh entry is taken.
func (s *coachService) lockRun(userID primitive.ObjectID) *runState {
	for {
		rs := s.runFor(userID)
		rs.mu.Lock()
		s.mu.Lock()
		live := s.runs[userID] == rs
		s.mu.Unlock()
		if live {
			return rs
		}
		rs.mu.Unlock()
	}
}

// unlockRun releases the run lock, pruning the map entry when no worker owns
// it so the map never grows with users whose runs have ended.
func (s *coachService) unlockRun(userID primitive.ObjectID, rs *runState) {
	if !rs.inFlight {
		s.mu.Lock()
		if s.runs[userID] == rs {
			delete(s.runs, userID)
		}
		s.mu.Unlock()
	}
	rs.mu.Unlock()
}

// runSteps is the single background worker for one user.
func (s *coachService) runSteps(userID primitive.ObjectID) {
	rs := s.runFor(userID)

	// Detached from the triggering request on purpose: generation must
	// survive client disconnects and poll timeouts.
	ctx := context.Background()

	for {
		s.drive(ctx, userID)

		// A superseding Start may have installed a fresh record after drive
		// observed a terminal one. Recheck under the run lock before parking
		// so that record is never left without a worker.
		rs.mu.Lock()
		if s.runnable(ctx, userID) {
			rs.mu.Unlock()
			continue
		}
		rs.inFlight = false
		s.unlockRun(userID, rs)
		return
	}
}

// runnable reports whether the user's record still has steps to execute.
func (s *coachService) runnable(ctx context.Context, userID primitive.ObjectID) bool {
	progress, err := s.progressRepo.GetByUserID(ctx, userID)
	return err == nil && !progress.Terminal()
}

// drive executes steps until the record is terminal or gone. It re-reads the
// record before every step, so a record that was cancelled, reset or
// superseded mid-run is picked up (or abandoned) at the next boundary.
func (s *coachService) drive(ctx context.Context, userID primitive.ObjectID) {
	for {
		progress, err := s.progressRepo.GetByUserID(ctx, userID)
		if err != nil {
			return // record deleted (reset) or store unavailable
		}
		if progress.Terminal() {
			return
		}

		if err := s.executeStep(ctx, progress); err != nil {
			if errors.Is(err, errRunSuperseded) {
				continue // a newer attempt owns the record now
			}
			if s.markFailed(ctx, userID, progress.AttemptID, progress.CurrentStep, err) {
				return
			}
			continue
		}
	}
}

// executeStep performs the work of progress.CurrentStep and advances the
// record by one. The merge is guarded: it only applies if the same attempt
// still owns the record at the same step.
func (s *coachService) executeStep(ctx context.Context, progress *domain.GenerationProgress) error {
	prefs := progress.Preferences

	switch progress.CurrentStep {
	case domain.StepNutrition:
		user, err := s.userRepo.GetByID(ctx, progress.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user profile: %w", err)
		}
		data := nutrition.CalculateForUser(user, prefs)
		return s.advance(ctx, progress, func(p *domain.GenerationProgress) {
			p.PartialResult.NutritionData = &data
		})

	case domain.StepWorkout:
		user, targets, err := s.stepInputs(ctx, progress)
		if err != nil {
			return err
		}
		var plan *domain.WorkoutPlan
		err = s.callWithRetry(ctx, progress, func(stepCtx context.Context) error {
			var callErr error
			plan, callErr = s.generator.WorkoutPlan(stepCtx, user, prefs, targets)
			return callErr
		})
		if err != nil {
			return err
		}
		return s.advance(ctx, progress, func(p *domain.GenerationProgress) {
			p.PartialResult.WorkoutPlan = plan
		})

	case domain.StepMealPlan:
		user, targets, err := s.stepInputs(ctx, progress)
		if err != nil {
			return err
		}
		var plan *domain.MealPlan
		err = s.callWithRetry(ctx, progress, func(stepCtx context.Context) error {
			var callErr error
			plan, callErr = s.generator.MealPlan(stepCtx, user, prefs, targets)
			return callErr
		})
		if err != nil {
			return err
		}
		return s.advance(ctx, progress, func(p *domain.GenerationProgress) {
			p.PartialResult.MealPlan = plan
		})

	case domain.StepIngredients:
		if progress.PartialResult.MealPlan == nil {
			return errors.New("meal plan missing from partial results")
		}
		var list *domain.GroceryList
		err := s.callWithRetry(ctx, progress, func(stepCtx context.Context) error {
			var callErr error
			list, callErr = s.generator.GroceryList(stepCtx, prefs, progress.PartialResult.MealPlan)
			return callErr
		})
		if err != nil {
			return err
		}
		return s.advance(ctx, progress, func(p *domain.GenerationProgress) {
			p.PartialResult.GroceryList = list
		})

	case domain.StepShoppingList:
		// No second external call: the shopping list is the ingredient
		// extraction plus locally computed budget totals.
		if progress.PartialResult.GroceryList == nil {
			return errors.New("grocery list missing from partial results")
		}
		return s.advance(ctx, progress, func(p *domain.GenerationProgress) {
			list := *p.PartialResult.GroceryList
			var total float64
			for _, item := range list.Items {
				total += item.EstimatedCost
			}
			list.EstimatedTotal = math.Round(total*100) / 100
			list.Currency = prefs.Currency
			p.PartialResult.GroceryList = &list
		})

	default:
		return fmt.Errorf("unexpected generation step %d", progress.CurrentStep)
	}
}

// advance re-reads the record, applies the merge if the attempt still owns
// it, bumps the step, and persists. Reaching the final step triggers the
// plan repository transition before the record is marked complete.
func (s *coachService) advance(ctx context.Context, progress *domain.GenerationProgress, merge func(*domain.GenerationProgress)) error {
	rs := s.lockRun(progress.UserID)
	defer s.unlockRun(progress.UserID, rs)

	current, err := s.progressRepo.GetByUserID(ctx, progress.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errRunSuperseded
		}
		return err
	}
	if current.AttemptID != progress.AttemptID || !current.IsGenerating || current.CurrentStep != progress.CurrentStep {
		return errRunSuperseded
	}

	if merge != nil {
		merge(current)
	}
	current.CurrentStep++
	current.RetryCount = 0
	current.ErrorMessage = ""

	if current.CurrentStep >= domain.StepComplete {
		if err := s.finalize(ctx, current); err != nil {
			return err
		}
		current.IsComplete = true
		current.IsGenerating = false
		current.StepMessage = domain.StepMessage(domain.StepComplete)
		current.EstimatedTimeRemaining = 0
	} else {
		current.StepMessage = domain.StepMessage(current.CurrentStep)
		current.EstimatedTimeRemaining = s.estimate(current.CurrentStep)
	}

	if err := s.progressRepo.Update(ctx, current); err != nil {
		return err
	}
	*progress = *current
	return nil
}

// finalize persists the synthesized plan as the user's single active plan.
func (s *coachService) finalize(ctx context.Context, progress *domain.GenerationProgress) error {
	partial := progress.PartialResult
	if partial.NutritionData == nil || partial.WorkoutPlan == nil || partial.MealPlan == nil || partial.GroceryList == nil {
		return errors.New("cannot finalize: incomplete partial results")
	}

	prefs := progress.Preferences
	plan := &domain.FitnessPlan{
		UserID:        progress.UserID,
		Preferences:   prefs,
		NutritionData: *partial.NutritionData,
		WorkoutPlan:   *partial.WorkoutPlan,
		MealPlan:      *partial.MealPlan,
		GroceryList:   *partial.GroceryList,
		Summary: domain.PlanSummary{
			WeeklyWorkouts: prefs.WorkoutDaysPerWeek,
			DailyCalories:  partial.NutritionData.Calories,
			DailyProtein:   partial.NutritionData.Protein,
			WeeklyBudget:   prefs.WeeklyBudget,
			Currency:       prefs.Currency,
		},
	}

	// Archive first so the stored plan carries its snapshot key; a failed
	// archive never fails the run.
	if s.archive != nil {
		if key, err := s.archive.ArchivePlan(ctx, plan); err != nil {
			log.Printf("WARN: failed to archive plan for user %s: %v", progress.UserID.Hex(), err)
		} else {
			plan.ArchiveKey = key
			log.Printf("Plan archived for user %s at %s", progress.UserID.Hex(), key)
		}
	}

	if _, err := s.planRepo.ReplaceActive(ctx, plan); err != nil {
		if s.archive != nil && plan.ArchiveKey != "" {
			// The plan was never stored; drop the orphaned snapshot.
			_ = s.archive.DeleteArchive(ctx, plan.ArchiveKey)
		}
		if errors.Is(err, repository.ErrPlanTransition) {
			// The user may be left with no active plan. Surface loudly and
			// distinctly; never fold into an ordinary generation failure.
			log.Printf("ALERT: plan transition incomplete for user %s: %v", progress.UserID.Hex(), err)
			return fmt.Errorf("plan storage inconsistency: %w", err)
		}
		return err
	}
	return nil
}

// stepInputs loads the user profile and the nutrition targets the model
// prompts are anchored to. Both must exist once step 1 has run.
func (s *coachService) stepInputs(ctx context.Context, progress *domain.GenerationProgress) (*domain.User, domain.NutritionData, error) {
	user, err := s.userRepo.GetByID(ctx, progress.UserID)
	if err != nil {
		return nil, domain.NutritionData{}, fmt.Errorf("failed to load user profile: %w", err)
	}
	if progress.PartialResult.NutritionData == nil {
		return nil, domain.NutritionData{}, errors.New("nutrition targets missing from partial results")
	}
	return user, *progress.PartialResult.NutritionData, nil
}

// callWithRetry runs an external generation call with a bounded timeout and
// at most MaxRetries immediate re-attempts.
func (s *coachService) callWithRetry(ctx context.Context, progress *domain.GenerationProgress, call func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= s.settings.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(s.settings.RetryDelay)
			s.recordRetry(ctx, progress, attempt)
		}
		stepCtx, cancel := context.WithTimeout(ctx, s.settings.StepTimeout)
		err := call(stepCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Printf("Generation step %d attempt %d failed for user %s: %v",
			progress.CurrentStep, attempt+1, progress.UserID.Hex(), err)
	}
	return lastErr
}

// recordRetry persists the retry counter so polling clients see it.
// Best effort; skipped if the attempt no longer owns the record.
func (s *coachService) recordRetry(ctx context.Context, progress *domain.GenerationProgress, attempt int) {
	rs := s.lockRun(progress.UserID)
	defer s.unlockRun(progress.UserID, rs)

	current, err := s.progressRepo.GetByUserID(ctx, progress.UserID)
	if err != nil || current.AttemptID != progress.AttemptID || !current.IsGenerating {
		return
	}
	current.RetryCount = attempt
	_ = s.progressRepo.Update(ctx, current)
}

// markFailed records a terminal failure if the attempt still owns the
// record. Returns false when the record moved on (superseded or reset).
func (s *coachService) markFailed(ctx context.Context, userID primitive.ObjectID, attemptID string, step int, cause error) bool {
	rs := s.lockRun(userID)
	defer s.unlockRun(userID, rs)

	current, err := s.progressRepo.GetByUserID(ctx, userID)
	if err != nil || current.AttemptID != attemptID || current.Terminal() {
		return false
	}

	current.IsGenerating = false
	current.ErrorMessage = fmt.Sprintf("plan generation failed at step %d: %v", step, cause)
	current.EstimatedTimeRemaining = 0
	if err := s.progressRepo.Update(ctx, current); err != nil {
		log.Printf("ERROR: failed to record generation failure for user %s: %v", userID.Hex(), err)
		return false
	}
	log.Printf("Plan generation failed for user %s at step %d: %v", userID.Hex(), step, cause)
	return true
}

// estimate computes the remaining-time hint in seconds.
func (s *coachService) estimate(step int) int {
	remaining := domain.TotalGenerationSteps - step
	if remaining < 0 {
		remaining = 0
	}
	return int(float64(remaining) * s.settings.StepEstimate.Seconds())
}

// normalizePreferences maps legacy vocabulary onto the canonical enums,
// validates ranges, and fills documented defaults.
func normalizePreferences(prefs domain.PlanPreferences) (domain.PlanPreferences, error) {
	prefs.Goal = domain.NormalizeGoal(string(prefs.Goal))
	prefs.ActivityLevel = domain.NormalizeActivityLevel(string(prefs.ActivityLevel))

	if prefs.WorkoutDaysPerWeek < 1 || prefs.WorkoutDaysPerWeek > 7 {
		return prefs, fmt.Errorf("%w: workoutDaysPerWeek must be between 1 and 7", ErrInvalidPreferences)
	}
	if prefs.WeeklyBudget < 0 {
		return prefs, fmt.Errorf("%w: weeklyBudget cannot be negative", ErrInvalidPreferences)
	}
	if prefs.WorkoutDuration <= 0 {
		prefs.WorkoutDuration = 45
	}
	if prefs.FitnessLevel == "" {
		prefs.FitnessLevel = "beginner"
	}
	if prefs.Currency == "" {
		prefs.Currency = "USD"
	}
	return prefs, nil
}
