package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/planner"
	"github.com/forkplan/forkplan-server/internal/store/sqlite"
	"github.com/forkplan/forkplan-server/internal/undo"
)

const testUser = "household"

// testEnv wires every service over one real SQLite store and one shared
// undo journal, mirroring the production container.
type testEnv struct {
	store       *sqlite.Store
	undoLog     *undo.Log
	plans       *PlanService
	undoSvc     *UndoService
	pantry      *PantryService
	blocked     *BlockedIngredientService
	prefs       *PreferenceService
	recipes     *RecipeService
	ingredients *IngredientService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	undoLog := undo.NewLog(30)
	rnd := rand.New(rand.NewSource(42))
	defaults := PlanDefaults{CooldownDays: 14, PreferPantry: true}

	return &testEnv{
		store:       st,
		undoLog:     undoLog,
		plans:       NewPlanService(st, undoLog, defaults, rnd, logger),
		undoSvc:     NewUndoService(st, undoLog, logger),
		pantry:      NewPantryService(st, undoLog, logger),
		blocked:     NewBlockedIngredientService(st, undoLog, logger),
		prefs:       NewPreferenceService(st, logger),
		recipes:     NewRecipeService(st, nil, logger), // search disabled
		ingredients: NewIngredientService(st, logger),
	}
}

func (e *testEnv) addIngredient(t *testing.T, name string) string {
	t.Helper()
	ing, err := e.ingredients.CreateIngredient(context.Background(), name, "g", "")
	require.NoError(t, err)
	return ing.ID
}

func (e *testEnv) addRecipe(t *testing.T, name string, mt domain.MealType, ingredientIDs ...string) string {
	t.Helper()
	inputs := make([]RecipeIngredientInput, 0, len(ingredientIDs))
	for _, id := range ingredientIDs {
		amount := 100.0
		inputs = append(inputs, RecipeIngredientInput{IngredientID: id, Amount: &amount})
	}
	r, err := e.recipes.CreateRecipe(context.Background(), name, mt, 2, nil, nil, inputs)
	require.NoError(t, err)
	return r.ID
}

// seedCatalog adds count recipes per meal type, none sharing ingredients.
func (e *testEnv) seedCatalog(t *testing.T, count int) {
	t.Helper()
	for _, mt := range domain.MealTypes() {
		for i := 1; i <= count; i++ {
			e.addRecipe(t, fmt.Sprintf("%s %d", mt, i), mt)
		}
	}
}

func genOptions(days int) planner.Options {
	return planner.Options{
		StartDate:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Days:          days,
		People:        2,
		LunchSpanDays: 2,
		CooldownDays:  14,
		PreferPantry:  true,
	}
}
