package api

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/id"
	"github.com/forkplan/forkplan-server/internal/service"
	"github.com/forkplan/forkplan-server/internal/store/sqlite"
	"github.com/forkplan/forkplan-server/internal/undo"
	"github.com/forkplan/forkplan-server/internal/validation"
)

// testEnvelope mirrors the response envelope for unmarshalling in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiTestServer wraps the API server for handler testing.
type apiTestServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer creates a test server backed by a real SQLite store in a
// temp directory. The plan service gets a seeded random source so
// generation outcomes are reproducible.
func setupTestServer(t *testing.T) *apiTestServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "forkplan-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)

	undoLog := undo.NewLog(30)
	rnd := rand.New(rand.NewSource(42))

	defaults := service.PlanDefaults{CooldownDays: 14, PreferPantry: true}
	services := &Services{
		Plan:       service.NewPlanService(st, undoLog, defaults, rnd, logger),
		Recipe:     service.NewRecipeService(st, nil, logger), // nil search for tests
		Ingredient: service.NewIngredientService(st, logger),
		Pantry:     service.NewPantryService(st, undoLog, logger),
		Preference: service.NewPreferenceService(st, logger),
		Blocked:    service.NewBlockedIngredientService(st, undoLog, logger),
		Undo:       service.NewUndoService(st, undoLog, logger),
	}

	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("Forkplan API Test", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:         st,
		services:      services,
		router:        router,
		api:           api,
		validator:     validation.New(),
		logger:        logger,
		householdUser: "household",
		defaults: PlannerDefaults{
			CooldownDays:  14,
			People:        2,
			LunchSpanDays: 3,
			PreferPantry:  true,
		},
	}

	s.registerHealthRoutes()
	s.registerPlanRoutes()
	s.registerRecipeRoutes()
	s.registerIngredientRoutes()
	s.registerPantryRoutes()
	s.registerPreferenceRoutes()
	s.registerBlockedRoutes()
	s.registerUndoRoutes()

	testAPI := humatest.Wrap(t, api)

	cleanup := func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &apiTestServer{
		Server:  s,
		api:     testAPI,
		cleanup: cleanup,
	}
}

// createTestIngredient inserts an ingredient directly into the store.
func (ts *apiTestServer) createTestIngredient(t *testing.T, name string) string {
	t.Helper()

	now := time.Now().UTC()
	ing := &domain.Ingredient{
		ID:        id.MustGenerate(id.PrefixIngredient),
		Name:      name,
		Unit:      "g",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, ts.store.CreateIngredient(context.Background(), ing))
	return ing.ID
}

// createTestRecipe inserts a recipe with the given ingredient links.
func (ts *apiTestServer) createTestRecipe(t *testing.T, name string, mealType domain.MealType, ingredientIDs ...string) string {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	r := &domain.Recipe{
		ID:           id.MustGenerate(id.PrefixRecipe),
		Name:         name,
		MealType:     mealType,
		BaseServings: 2,
		Steps:        []string{"Cook " + name},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, ts.store.CreateRecipe(ctx, r))

	for _, ingID := range ingredientIDs {
		amount := 100.0
		link := &domain.RecipeIngredient{
			RecipeID:     r.ID,
			IngredientID: ingID,
			Amount:       &amount,
		}
		require.NoError(t, ts.store.LinkRecipeIngredient(ctx, link))
	}
	return r.ID
}

// seedCatalog creates enough distinct dinner recipes that a week-long plan
// can be filled without repeats.
func (ts *apiTestServer) seedCatalog(t *testing.T, count int, mealType domain.MealType) []string {
	t.Helper()

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		ingID := ts.createTestIngredient(t, string(mealType)+"-ing-"+n)
		ids = append(ids, ts.createTestRecipe(t, string(mealType)+" recipe "+n, mealType, ingID))
	}
	return ids
}
