package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/forkplan/forkplan-server/internal/errors"
	"github.com/forkplan/forkplan-server/internal/service"
)

func (s *Server) registerUndoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "undo",
		Method:      http.MethodPost,
		Path:        "/api/v1/undo",
		Summary:     "Undo last action",
		Description: "Reverses the most recent undoable action",
		Tags:        []string{"Undo"},
	}, s.handleUndo)

	huma.Register(s.api, huma.Operation{
		OperationID: "undoDepth",
		Method:      http.MethodGet,
		Path:        "/api/v1/undo",
		Summary:     "Undo history depth",
		Description: "Returns how many actions can currently be undone",
		Tags:        []string{"Undo"},
	}, s.handleUndoDepth)
}

// === DTOs ===

// UndoResponse describes the action that was reversed.
type UndoResponse struct {
	ID        string    `json:"id" doc:"Undo entry ID"`
	Kind      string    `json:"kind" doc:"swap, block_ingredient, or pantry_transfer"`
	CreatedAt time.Time `json:"created_at" doc:"When the original action happened"`
	Depth     int       `json:"depth" doc:"Remaining undoable actions"`
}

// UndoOutput wraps the undo response for Huma.
type UndoOutput struct {
	Body UndoResponse
}

// UndoDepthResponse reports the current undo history depth.
type UndoDepthResponse struct {
	Depth int `json:"depth" doc:"Undoable actions available"`
}

// UndoDepthOutput wraps the depth response for Huma.
type UndoDepthOutput struct {
	Body UndoDepthResponse
}

// === Handlers ===

func (s *Server) handleUndo(ctx context.Context, _ *struct{}) (*UndoOutput, error) {
	entry, err := s.services.Undo.Undo(ctx)
	if errors.Is(err, service.ErrNothingToUndo) {
		return nil, domainerrors.Conflict("nothing to undo")
	}
	if err != nil {
		return nil, err
	}

	return &UndoOutput{
		Body: UndoResponse{
			ID:        entry.ID,
			Kind:      string(entry.Kind),
			CreatedAt: entry.CreatedAt,
			Depth:     s.services.Undo.Depth(),
		},
	}, nil
}

func (s *Server) handleUndoDepth(_ context.Context, _ *struct{}) (*UndoDepthOutput, error) {
	return &UndoDepthOutput{Body: UndoDepthResponse{Depth: s.services.Undo.Depth()}}, nil
}
