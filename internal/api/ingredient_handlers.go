package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkplan/forkplan-server/internal/domain"
)

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns all ingredients ordered by name",
		Tags:        []string{"Ingredients"},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID: "createIngredient",
		Method:      http.MethodPost,
		Path:        "/api/v1/ingredients",
		Summary:     "Create ingredient",
		Description: "Adds an ingredient to the reference data",
		Tags:        []string{"Ingredients"},
	}, s.handleCreateIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIngredient",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Get ingredient",
		Description: "Returns an ingredient by ID",
		Tags:        []string{"Ingredients"},
	}, s.handleGetIngredient)
}

// === DTOs ===

// IngredientResponse contains ingredient data in API responses.
type IngredientResponse struct {
	ID        string    `json:"id" doc:"Ingredient ID"`
	Name      string    `json:"name" doc:"Ingredient name"`
	Unit      string    `json:"unit,omitempty" doc:"Default unit"`
	Category  string    `json:"category,omitempty" doc:"Shopping category"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// ListIngredientsResponse contains all ingredients.
type ListIngredientsResponse struct {
	Ingredients []IngredientResponse `json:"ingredients" doc:"Ingredients ordered by name"`
}

// ListIngredientsOutput wraps the ingredient list for Huma.
type ListIngredientsOutput struct {
	Body ListIngredientsResponse
}

// CreateIngredientRequest is the request body for creating an ingredient.
type CreateIngredientRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200" doc:"Ingredient name"`
	Unit     string `json:"unit,omitempty" validate:"omitempty,max=30" doc:"Default unit"`
	Category string `json:"category,omitempty" validate:"omitempty,max=60" doc:"Shopping category"`
}

// CreateIngredientInput wraps the create ingredient request for Huma.
type CreateIngredientInput struct {
	Body CreateIngredientRequest
}

// IngredientOutput wraps a single ingredient for Huma.
type IngredientOutput struct {
	Body IngredientResponse
}

// === Handlers ===

func (s *Server) handleListIngredients(ctx context.Context, _ *struct{}) (*ListIngredientsOutput, error) {
	ingredients, err := s.services.Ingredient.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		resp[i] = toIngredientResponse(ing)
	}
	return &ListIngredientsOutput{Body: ListIngredientsResponse{Ingredients: resp}}, nil
}

func (s *Server) handleCreateIngredient(ctx context.Context, input *CreateIngredientInput) (*IngredientOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	ing, err := s.services.Ingredient.CreateIngredient(ctx, input.Body.Name, input.Body.Unit, input.Body.Category)
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: toIngredientResponse(ing)}, nil
}

func (s *Server) handleGetIngredient(ctx context.Context, input *IDInput) (*IngredientOutput, error) {
	ing, err := s.services.Ingredient.GetIngredient(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: toIngredientResponse(ing)}, nil
}

func toIngredientResponse(ing *domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:        ing.ID,
		Name:      ing.Name,
		Unit:      ing.Unit,
		Category:  ing.Category,
		CreatedAt: ing.CreatedAt,
		UpdatedAt: ing.UpdatedAt,
	}
}
