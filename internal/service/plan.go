// Package service contains the business services that orchestrate the
// planning engine, the store, and the search index.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/id"
	"github.com/forkplan/forkplan-server/internal/planner"
	"github.com/forkplan/forkplan-server/internal/store"
	"github.com/forkplan/forkplan-server/internal/undo"
)

// Plan service errors.
var (
	ErrPlanNotFound = errors.New("meal plan not found")
	ErrSlotNotFound = errors.New("slot not found")
)

// Generation warnings, surfaced once per call rather than per slot.
const (
	WarnDietaryBlocked   = "some meals could not be planned because of dietary restrictions"
	WarnNoEligibleRecipe = "no eligible recipe was found for some meals"
)

// PlanDefaults are the generation settings that also govern later edits of
// a plan (replacement consults the same cooldown window and pantry
// preference the household configured).
type PlanDefaults struct {
	CooldownDays int
	PreferPantry bool
}

// PlanService orchestrates plan generation, slot replacement, and undo.
//
// Replace pools and the random source are per-service session state; a
// single slot must not be replaced concurrently (the caller keeps a slot's
// controls disabled while a replacement is in flight), but unrelated slots
// may be.
type PlanService struct {
	store    store.Store
	undoLog  *undo.Log
	defaults PlanDefaults
	logger   *slog.Logger

	mu    sync.Mutex
	rnd   *rand.Rand
	pools map[string]*planner.ShufflePool // keyed by planID + meal type
}

// NewPlanService creates a plan service. rnd drives all randomized
// selection; tests inject a seeded source for determinism.
func NewPlanService(st store.Store, undoLog *undo.Log, defaults PlanDefaults, rnd *rand.Rand, logger *slog.Logger) *PlanService {
	return &PlanService{
		store:    st,
		undoLog:  undoLog,
		defaults: defaults,
		logger:   logger,
		rnd:      rnd,
		pools:    make(map[string]*planner.ShufflePool),
	}
}

// GenerateResult is the outcome of one plan generation.
type GenerateResult struct {
	Plan     *domain.MealPlan
	Slots    []*domain.Slot
	Unfilled int
	Warning  string // empty when every slot was filled
}

// GeneratePlan computes a complete schedule in memory and persists it as
// one plan plus one slot batch. Partial schedules are never written: a
// failed slot insert rolls back and removes the plan row.
func (s *PlanService) GeneratePlan(ctx context.Context, userID string, opts planner.Options) (*GenerateResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	var history []*domain.Slot
	if opts.CooldownDays > 0 {
		from := domain.NormalizeDate(opts.StartDate).AddDate(0, 0, -opts.CooldownDays)
		history, err = s.store.ListCookSlotsInRange(ctx, from, opts.StartDate)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	fill, err := planner.Fill(snap, opts, history, s.rnd, func() string {
		return id.MustGenerate("slot")
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	plan := &domain.MealPlan{
		ID:        id.MustGenerate("plan"),
		StartDate: opts.StartDate,
		Days:      opts.Days,
		CreatedAt: time.Now(),
	}
	for _, sl := range fill.Slots {
		sl.PlanID = plan.ID
	}

	if err := s.store.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.store.BulkInsertSlots(ctx, fill.Slots); err != nil {
		// Roll the plan row back so no header exists without slots.
		_ = s.store.DeletePlan(ctx, plan.ID)
		return nil, err
	}

	result := &GenerateResult{
		Plan:     plan,
		Slots:    fill.Slots,
		Unfilled: fill.Unfilled,
	}
	if fill.Unfilled > 0 {
		if fill.DietaryBlocked {
			result.Warning = WarnDietaryBlocked
		} else {
			result.Warning = WarnNoEligibleRecipe
		}
	}

	s.logger.Info("meal plan generated",
		"plan_id", plan.ID,
		"days", plan.Days,
		"slots", len(fill.Slots),
		"unfilled", fill.Unfilled,
	)

	return result, nil
}

// GetPlan returns a plan and its slots.
func (s *PlanService) GetPlan(ctx context.Context, planID string) (*domain.MealPlan, []*domain.Slot, error) {
	plan, err := s.store.GetPlan(ctx, planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	slots, err := s.store.ListSlotsByPlan(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	return plan, slots, nil
}

// ListPlans returns all plans, newest first.
func (s *PlanService) ListPlans(ctx context.Context) ([]*domain.MealPlan, error) {
	return s.store.ListPlans(ctx)
}

// DeletePlan removes a plan and its slots, and drops the plan's replace
// pools.
func (s *PlanService) DeletePlan(ctx context.Context, planID string) error {
	err := s.store.DeletePlan(ctx, planID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPlanNotFound
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	for _, mt := range domain.MealTypes() {
		delete(s.pools, poolKey(planID, mt))
	}
	s.mu.Unlock()
	return nil
}

// ReplaceResult is the outcome of one slot replacement.
type ReplaceResult struct {
	RecipeID string
	Updated  []*domain.Slot // cook slot plus propagated leftovers, post-update
}

// ReplaceSlot re-picks the recipe of one cook slot and propagates the
// change through its leftover run. The plan state read here is the same
// snapshot the engine decides on; nothing is refetched mid-operation.
func (s *PlanService) ReplaceSlot(ctx context.Context, userID, slotID string, desired planner.Desired) (*ReplaceResult, error) {
	return s.replace(ctx, userID, slotID, desired, nil)
}

// DislikeAndReplace records the slot's current recipe as disliked, then
// replaces it with that recipe barred for this call. The persisted dislike
// also affects every future selection.
func (s *PlanService) DislikeAndReplace(ctx context.Context, userID, slotID string, desired planner.Desired) (*ReplaceResult, error) {
	slot, err := s.store.GetSlot(ctx, slotID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}

	exclude := make(map[string]struct{})
	if slot.Filled() {
		pref := &domain.Preference{
			UserID:    userID,
			RecipeID:  slot.RecipeID,
			Kind:      domain.PreferenceDislike,
			UpdatedAt: time.Now(),
		}
		if err := s.store.UpsertPreference(ctx, pref); err != nil {
			return nil, err
		}
		exclude[slot.RecipeID] = struct{}{}
	}

	return s.replace(ctx, userID, slotID, desired, exclude)
}

func (s *PlanService) replace(ctx context.Context, userID, slotID string, desired planner.Desired, exclude map[string]struct{}) (*ReplaceResult, error) {
	slot, err := s.store.GetSlot(ctx, slotID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}

	slots, err := s.store.ListSlotsByPlan(ctx, slot.PlanID)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	opts := planner.Options{
		CooldownDays: s.defaults.CooldownDays,
		PreferPantry: s.defaults.PreferPantry,
		Desired:      desired,
	}

	s.mu.Lock()
	pool, ok := s.pools[poolKey(slot.PlanID, slot.MealType)]
	if !ok {
		pool = planner.NewShufflePool(s.rnd)
		s.pools[poolKey(slot.PlanID, slot.MealType)] = pool
	}
	rep, err := planner.Replace(snap, slots, slot, opts, pool, exclude)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rep.Affected))
	for i, a := range rep.Affected {
		ids[i] = a.ID
	}
	if err := s.store.UpdateSlotRecipes(ctx, ids, rep.RecipeID); err != nil {
		return nil, err
	}

	s.undoLog.Push(&domain.UndoEntry{
		ID:        uuid.NewString(),
		Kind:      domain.UndoSwap,
		CreatedAt: time.Now(),
		Swap: &domain.SwapUndo{
			SlotIDs:      ids,
			PrevRecipeID: rep.Previous,
			NextRecipeID: rep.RecipeID,
		},
	})

	updated := make([]*domain.Slot, len(rep.Affected))
	for i, a := range rep.Affected {
		c := *a
		c.RecipeID = rep.RecipeID
		updated[i] = &c
	}

	s.logger.Info("slot replaced",
		"slot_id", slotID,
		"plan_id", slot.PlanID,
		"previous", rep.Previous,
		"next", rep.RecipeID,
		"propagated", len(ids)-1,
	)

	return &ReplaceResult{RecipeID: rep.RecipeID, Updated: updated}, nil
}

// loadSnapshot assembles the read-only snapshot the engine works on.
func (s *PlanService) loadSnapshot(ctx context.Context, userID string) (*planner.Snapshot, error) {
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.store.ListRecipeIngredients(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.store.ListPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	pantry, err := s.store.ListPantry(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.store.ListBlockedIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &planner.Snapshot{
		Catalog:     planner.NewCatalog(recipes, links),
		Pantry:      make(map[string]struct{}, len(pantry)),
		Preferences: make(map[string]domain.PreferenceKind, len(prefs)),
		Blocked:     make(map[string]struct{}, len(blocked)),
	}
	for _, e := range pantry {
		snap.Pantry[e.IngredientID] = struct{}{}
	}
	for _, p := range prefs {
		snap.Preferences[p.RecipeID] = p.Kind
	}
	for _, b := range blocked {
		snap.Blocked[b.IngredientID] = struct{}{}
	}
	return snap, nil
}

func poolKey(planID string, mt domain.MealType) string {
	return planID + "|" + string(mt)
}
