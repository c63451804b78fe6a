package domain

import "time"

// UndoKind discriminates the closed set of undoable mutations.
type UndoKind string

// Undoable mutation kinds.
const (
	UndoSwap            UndoKind = "swap"
	UndoBlockIngredient UndoKind = "block_ingredient"
	UndoPantryTransfer  UndoKind = "pantry_transfer"
)

// UndoEntry is one element of the undo journal: a tagged union where exactly
// one of the payload pointers matching Kind is set.
type UndoEntry struct {
	CreatedAt       time.Time            `json:"created_at"`
	Swap            *SwapUndo            `json:"swap,omitempty"`
	BlockIngredient *BlockIngredientUndo `json:"block_ingredient,omitempty"`
	PantryTransfer  *PantryTransferUndo  `json:"pantry_transfer,omitempty"`
	ID              string               `json:"id"`
	Kind            UndoKind             `json:"kind"`
}

// SwapUndo reverses a slot replacement. SlotIDs is the full set updated at
// swap time, including propagated leftover slots.
type SwapUndo struct {
	SlotIDs      []string `json:"slot_ids"`
	PrevRecipeID string   `json:"prev_recipe_id"`
	NextRecipeID string   `json:"next_recipe_id"`
}

// BlockIngredientUndo reverses blocking an ingredient. Name is carried for
// user-facing messaging only.
type BlockIngredientUndo struct {
	UserID       string `json:"user_id"`
	IngredientID string `json:"ingredient_id"`
	Name         string `json:"name"`
}

// PantryTransferUndo reverses a bulk pantry quantity change.
type PantryTransferUndo struct {
	UserID string               `json:"user_id"`
	Items  []PantryTransferItem `json:"items"`
}

// PantryTransferItem records one ingredient's before/after quantities.
// Existed distinguishes "restore previous quantity" from "delete the row".
type PantryTransferItem struct {
	IngredientID string   `json:"ingredient_id"`
	PrevQuantity *float64 `json:"prev_quantity,omitempty"`
	NextQuantity *float64 `json:"next_quantity,omitempty"`
	Existed      bool     `json:"existed"`
}
