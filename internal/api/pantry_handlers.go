package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/service"
)

func (s *Server) registerPantryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPantry",
		Method:      http.MethodGet,
		Path:        "/api/v1/pantry",
		Summary:     "List pantry",
		Description: "Returns all pantry entries",
		Tags:        []string{"Pantry"},
	}, s.handleListPantry)

	huma.Register(s.api, huma.Operation{
		OperationID: "setPantryEntry",
		Method:      http.MethodPut,
		Path:        "/api/v1/pantry/{id}",
		Summary:     "Set pantry entry",
		Description: "Creates or replaces the pantry entry for an ingredient",
		Tags:        []string{"Pantry"},
	}, s.handleSetPantryEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "removePantryEntry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/pantry/{id}",
		Summary:     "Remove pantry entry",
		Description: "Removes the pantry entry for an ingredient",
		Tags:        []string{"Pantry"},
	}, s.handleRemovePantryEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "transferToPantry",
		Method:      http.MethodPost,
		Path:        "/api/v1/pantry/transfer",
		Summary:     "Transfer items into pantry",
		Description: "Adds a batch of items to the pantry as one undoable action",
		Tags:        []string{"Pantry"},
	}, s.handleTransferToPantry)
}

// === DTOs ===

// PantryEntryResponse contains one pantry entry in API responses.
type PantryEntryResponse struct {
	IngredientID string    `json:"ingredient_id" doc:"Ingredient ID"`
	Quantity     *float64  `json:"quantity,omitempty" doc:"Amount on hand, informational"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// ListPantryResponse contains the whole pantry.
type ListPantryResponse struct {
	Entries []PantryEntryResponse `json:"entries" doc:"Pantry entries"`
}

// ListPantryOutput wraps the pantry list for Huma.
type ListPantryOutput struct {
	Body ListPantryResponse
}

// SetPantryEntryRequest is the request body for setting a pantry entry.
type SetPantryEntryRequest struct {
	Quantity *float64 `json:"quantity,omitempty" doc:"Amount on hand, informational"`
}

// SetPantryEntryInput wraps the set pantry entry request for Huma.
type SetPantryEntryInput struct {
	ID   string `path:"id" doc:"Ingredient ID"`
	Body SetPantryEntryRequest
}

// PantryEntryOutput wraps a single pantry entry for Huma.
type PantryEntryOutput struct {
	Body PantryEntryResponse
}

// TransferItemRequest is one item in a pantry transfer.
type TransferItemRequest struct {
	IngredientID string   `json:"ingredient_id" validate:"required" doc:"Ingredient ID"`
	Quantity     *float64 `json:"quantity,omitempty" doc:"Amount to add onto the existing entry"`
}

// TransferRequest is the request body for a pantry transfer.
type TransferRequest struct {
	Items []TransferItemRequest `json:"items" validate:"required,min=1,dive" doc:"Items to move into the pantry"`
}

// TransferInput wraps the transfer request for Huma.
type TransferInput struct {
	Body TransferRequest
}

// === Handlers ===

func (s *Server) handleListPantry(ctx context.Context, _ *struct{}) (*ListPantryOutput, error) {
	entries, err := s.services.Pantry.ListPantry(ctx, s.householdUser)
	if err != nil {
		return nil, err
	}

	resp := make([]PantryEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toPantryEntryResponse(e)
	}
	return &ListPantryOutput{Body: ListPantryResponse{Entries: resp}}, nil
}

func (s *Server) handleSetPantryEntry(ctx context.Context, input *SetPantryEntryInput) (*PantryEntryOutput, error) {
	entry, err := s.services.Pantry.SetEntry(ctx, s.householdUser, input.ID, input.Body.Quantity)
	if err != nil {
		return nil, err
	}
	return &PantryEntryOutput{Body: toPantryEntryResponse(entry)}, nil
}

func (s *Server) handleRemovePantryEntry(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := s.services.Pantry.RemoveEntry(ctx, s.householdUser, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Pantry entry removed"}}, nil
}

func (s *Server) handleTransferToPantry(ctx context.Context, input *TransferInput) (*MessageOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	items := make([]service.TransferItem, len(input.Body.Items))
	for i, item := range input.Body.Items {
		items[i] = service.TransferItem{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		}
	}
	if err := s.services.Pantry.Transfer(ctx, s.householdUser, items); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Items transferred to pantry"}}, nil
}

func toPantryEntryResponse(e *domain.PantryEntry) PantryEntryResponse {
	return PantryEntryResponse{
		IngredientID: e.IngredientID,
		Quantity:     e.Quantity,
		UpdatedAt:    e.UpdatedAt,
	}
}
