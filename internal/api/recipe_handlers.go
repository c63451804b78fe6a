package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/search"
	"github.com/forkplan/forkplan-server/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns the full recipe catalog ordered by name",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "createRecipe",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes",
		Summary:     "Create recipe",
		Description: "Adds a recipe with its ingredient lines",
		Tags:        []string{"Recipes"},
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/search",
		Summary:     "Search recipes",
		Description: "Full-text search over names, tags, and ingredients",
		Tags:        []string{"Recipes"},
	}, s.handleSearchRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe with its ingredient lines",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Description: "Removes a recipe from the catalog",
		Tags:        []string{"Recipes"},
	}, s.handleDeleteRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildRecipeIndex",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/reindex",
		Summary:     "Rebuild search index",
		Description: "Re-indexes the whole recipe catalog",
		Tags:        []string{"Recipes"},
	}, s.handleRebuildIndex)
}

// === DTOs ===

// RecipeIngredientRequest is one ingredient line on a recipe.
type RecipeIngredientRequest struct {
	IngredientID string   `json:"ingredient_id" validate:"required" doc:"Ingredient ID"`
	Amount       *float64 `json:"amount,omitempty" doc:"Quantity for the base serving count"`
	Unit         string   `json:"unit,omitempty" doc:"Unit for the amount"`
}

// CreateRecipeRequest is the request body for creating a recipe.
type CreateRecipeRequest struct {
	Name         string                    `json:"name" validate:"required,min=1,max=200" doc:"Recipe name"`
	MealType     string                    `json:"meal_type" validate:"required,mealtype" doc:"breakfast, lunch, or dinner"`
	BaseServings int                       `json:"base_servings" validate:"required,min=1,max=20" doc:"Servings the amounts are written for"`
	Steps        []string                  `json:"steps,omitempty" doc:"Preparation steps"`
	Tags         []string                  `json:"tags,omitempty" doc:"Free-form tags"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients,omitempty" doc:"Ingredient lines"`
}

// CreateRecipeInput wraps the create recipe request for Huma.
type CreateRecipeInput struct {
	Body CreateRecipeRequest
}

// RecipeResponse contains recipe data in API responses.
type RecipeResponse struct {
	ID           string    `json:"id" doc:"Recipe ID"`
	Name         string    `json:"name" doc:"Recipe name"`
	MealType     string    `json:"meal_type" doc:"breakfast, lunch, or dinner"`
	BaseServings int       `json:"base_servings" doc:"Servings the amounts are written for"`
	Steps        []string  `json:"steps,omitempty" doc:"Preparation steps"`
	Tags         []string  `json:"tags,omitempty" doc:"Free-form tags"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// RecipeIngredientResponse is one ingredient line in API responses.
type RecipeIngredientResponse struct {
	IngredientID string   `json:"ingredient_id" doc:"Ingredient ID"`
	Amount       *float64 `json:"amount,omitempty" doc:"Quantity for the base serving count"`
	Unit         string   `json:"unit,omitempty" doc:"Unit for the amount"`
}

// RecipeDetailResponse contains a recipe and its ingredient lines.
type RecipeDetailResponse struct {
	Recipe      RecipeResponse             `json:"recipe" doc:"Recipe data"`
	Ingredients []RecipeIngredientResponse `json:"ingredients" doc:"Ingredient lines"`
}

// RecipeDetailOutput wraps the recipe detail for Huma.
type RecipeDetailOutput struct {
	Body RecipeDetailResponse
}

// ListRecipesResponse contains the recipe catalog.
type ListRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"Recipes ordered by name"`
}

// ListRecipesOutput wraps the recipe list for Huma.
type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// SearchRecipesInput contains search query parameters.
type SearchRecipesInput struct {
	Query    string `query:"q" doc:"Search text"`
	MealType string `query:"meal_type" doc:"Optional exact meal-type filter"`
	Tag      string `query:"tag" doc:"Optional exact tag filter"`
	Limit    int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum hits"`
	Offset   int    `query:"offset" default:"0" minimum:"0" doc:"Hits to skip"`
}

// SearchRecipesOutput wraps search results for Huma.
type SearchRecipesOutput struct {
	Body search.Result
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*ListRecipesOutput, error) {
	recipes, err := s.services.Recipe.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		resp[i] = toRecipeResponse(r)
	}
	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: resp}}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeDetailOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	lines := make([]service.RecipeIngredientInput, len(input.Body.Ingredients))
	for i, ing := range input.Body.Ingredients {
		lines[i] = service.RecipeIngredientInput{
			IngredientID: ing.IngredientID,
			Amount:       ing.Amount,
			Unit:         ing.Unit,
		}
	}

	recipe, err := s.services.Recipe.CreateRecipe(ctx,
		input.Body.Name,
		domain.MealType(input.Body.MealType),
		input.Body.BaseServings,
		input.Body.Steps,
		input.Body.Tags,
		lines,
	)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeIngredientResponse, len(input.Body.Ingredients))
	for i, ing := range input.Body.Ingredients {
		resp[i] = RecipeIngredientResponse{
			IngredientID: ing.IngredientID,
			Amount:       ing.Amount,
			Unit:         ing.Unit,
		}
	}
	return &RecipeDetailOutput{
		Body: RecipeDetailResponse{
			Recipe:      toRecipeResponse(recipe),
			Ingredients: resp,
		},
	}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *IDInput) (*RecipeDetailOutput, error) {
	recipe, lines, err := s.services.Recipe.GetRecipe(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeIngredientResponse, len(lines))
	for i, line := range lines {
		resp[i] = RecipeIngredientResponse{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
			Unit:         line.Unit,
		}
	}
	return &RecipeDetailOutput{
		Body: RecipeDetailResponse{
			Recipe:      toRecipeResponse(recipe),
			Ingredients: resp,
		},
	}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := s.services.Recipe.DeleteRecipe(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Recipe deleted"}}, nil
}

func (s *Server) handleSearchRecipes(ctx context.Context, input *SearchRecipesInput) (*SearchRecipesOutput, error) {
	result, err := s.services.Recipe.Search(ctx, search.Params{
		Query:    input.Query,
		MealType: input.MealType,
		Tag:      input.Tag,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &SearchRecipesOutput{Body: *result}, nil
}

func (s *Server) handleRebuildIndex(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.services.Recipe.RebuildIndex(ctx); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Search index rebuilt"}}, nil
}

func toRecipeResponse(r *domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		MealType:     string(r.MealType),
		BaseServings: r.BaseServings,
		Steps:        r.Steps,
		Tags:         r.Tags,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
