package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerBlockedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBlockedIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/blocked-ingredients",
		Summary:     "List blocked ingredients",
		Description: "Returns the household's blocked ingredients",
		Tags:        []string{"Blocked ingredients"},
	}, s.handleListBlocked)

	huma.Register(s.api, huma.Operation{
		OperationID: "blockIngredient",
		Method:      http.MethodPut,
		Path:        "/api/v1/blocked-ingredients/{id}",
		Summary:     "Block ingredient",
		Description: "Excludes an ingredient from all future recipe selection",
		Tags:        []string{"Blocked ingredients"},
	}, s.handleBlockIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "unblockIngredient",
		Method:      http.MethodDelete,
		Path:        "/api/v1/blocked-ingredients/{id}",
		Summary:     "Unblock ingredient",
		Description: "Removes an ingredient from the blocked list",
		Tags:        []string{"Blocked ingredients"},
	}, s.handleUnblockIngredient)
}

// === DTOs ===

// BlockedIngredientResponse contains one blocked ingredient in API responses.
type BlockedIngredientResponse struct {
	IngredientID string    `json:"ingredient_id" doc:"Ingredient ID"`
	CreatedAt    time.Time `json:"created_at" doc:"When the block was added"`
}

// ListBlockedResponse contains all blocked ingredients.
type ListBlockedResponse struct {
	Blocked []BlockedIngredientResponse `json:"blocked" doc:"Blocked ingredients"`
}

// ListBlockedOutput wraps the blocked list for Huma.
type ListBlockedOutput struct {
	Body ListBlockedResponse
}

// === Handlers ===

func (s *Server) handleListBlocked(ctx context.Context, _ *struct{}) (*ListBlockedOutput, error) {
	blocked, err := s.services.Blocked.ListBlocked(ctx, s.householdUser)
	if err != nil {
		return nil, err
	}

	resp := make([]BlockedIngredientResponse, len(blocked))
	for i, b := range blocked {
		resp[i] = BlockedIngredientResponse{
			IngredientID: b.IngredientID,
			CreatedAt:    b.CreatedAt,
		}
	}
	return &ListBlockedOutput{Body: ListBlockedResponse{Blocked: resp}}, nil
}

func (s *Server) handleBlockIngredient(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := s.services.Blocked.Block(ctx, s.householdUser, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Ingredient blocked"}}, nil
}

func (s *Server) handleUnblockIngredient(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := s.services.Blocked.Unblock(ctx, s.householdUser, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Ingredient unblocked"}}, nil
}
