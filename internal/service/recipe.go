package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/id"
	"github.com/forkplan/forkplan-server/internal/search"
	"github.com/forkplan/forkplan-server/internal/store"
	"github.com/forkplan/forkplan-server/internal/util"
)

// Recipe service errors.
var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInvalidMealType    = errors.New("invalid meal type")
)

// RecipeService manages the recipe catalog and its search index.
type RecipeService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewRecipeService creates a recipe service. index may be nil when search
// is disabled (tests).
func NewRecipeService(st store.Store, index *search.Index, logger *slog.Logger) *RecipeService {
	return &RecipeService{store: st, index: index, logger: logger}
}

// RecipeIngredientInput is one ingredient line of a new recipe.
type RecipeIngredientInput struct {
	IngredientID string
	Amount       *float64
	Unit         string
}

// CreateRecipe adds a recipe with its ingredient lines and indexes it.
func (s *RecipeService) CreateRecipe(ctx context.Context, name string, mealType domain.MealType, baseServings int, steps, tags []string, ingredients []RecipeIngredientInput) (*domain.Recipe, error) {
	if !mealType.Valid() {
		return nil, ErrInvalidMealType
	}

	now := time.Now()
	r := &domain.Recipe{
		ID:           id.MustGenerate("rcp"),
		Name:         name,
		MealType:     mealType,
		BaseServings: baseServings,
		Steps:        steps,
		Tags:         util.NormalizeTagSlugs(tags),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateRecipe(ctx, r); err != nil {
		return nil, err
	}

	ingredientNames := make([]string, 0, len(ingredients))
	for _, in := range ingredients {
		ing, err := s.store.GetIngredient(ctx, in.IngredientID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		if err != nil {
			return nil, err
		}
		link := &domain.RecipeIngredient{
			RecipeID:     r.ID,
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
			Unit:         in.Unit,
		}
		if err := s.store.LinkRecipeIngredient(ctx, link); err != nil {
			return nil, err
		}
		ingredientNames = append(ingredientNames, ing.Name)
	}

	s.indexRecipe(r, ingredientNames)
	return r, nil
}

// GetRecipe returns a recipe and its ingredient lines.
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, []*domain.RecipeIngredient, error) {
	r, err := s.store.GetRecipe(ctx, recipeID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	links, err := s.store.ListIngredientsForRecipe(ctx, recipeID)
	if err != nil {
		return nil, nil, err
	}
	return r, links, nil
}

// ListRecipes returns the full catalog.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	return s.store.ListRecipes(ctx)
}

// DeleteRecipe removes a recipe and drops it from the index.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID string) error {
	err := s.store.DeleteRecipe(ctx, recipeID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRecipeNotFound
	}
	if err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.RemoveRecipe(recipeID); err != nil {
			s.logger.Warn("failed to remove recipe from search index",
				"recipe_id", recipeID, "error", err)
		}
	}
	return nil
}

// Search queries the recipe index. The tag filter is normalized the same
// way tags are at creation, so any input form matches.
func (s *RecipeService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if s.index == nil {
		return &search.Result{Query: params.Query}, nil
	}
	params.Tag = util.NormalizeTagSlug(params.Tag)
	return s.index.Search(ctx, params)
}

// IndexDocCount reports the number of indexed recipe documents. When
// search is disabled it reports zero with ok false.
func (s *RecipeService) IndexDocCount() (count uint64, ok bool, err error) {
	if s.index == nil {
		return 0, false, nil
	}
	count, err = s.index.DocCount()
	return count, true, err
}

// RebuildIndex re-indexes the whole catalog. Called at startup so the
// index always reflects the store.
func (s *RecipeService) RebuildIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}

	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return err
	}
	links, err := s.store.ListRecipeIngredients(ctx)
	if err != nil {
		return err
	}
	ings, err := s.store.ListIngredients(ctx)
	if err != nil {
		return err
	}

	ingredientName := make(map[string]string, len(ings))
	for _, ing := range ings {
		ingredientName[ing.ID] = ing.Name
	}
	namesByRecipe := make(map[string][]string)
	for _, l := range links {
		namesByRecipe[l.RecipeID] = append(namesByRecipe[l.RecipeID], ingredientName[l.IngredientID])
	}

	docs := make([]*search.RecipeDocument, 0, len(recipes))
	for _, r := range recipes {
		docs = append(docs, search.DocumentFor(r, namesByRecipe[r.ID]))
	}
	return s.index.Rebuild(docs)
}

func (s *RecipeService) indexRecipe(r *domain.Recipe, ingredientNames []string) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexRecipe(search.DocumentFor(r, ingredientNames)); err != nil {
		s.logger.Warn("failed to index recipe", "recipe_id", r.ID, "error", err)
	}
}
