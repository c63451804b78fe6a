package domain

import "time"

// PreferenceKind is the polarity of a user's opinion on a recipe.
type PreferenceKind string

// Preference kinds. Absence of a preference row means neutral.
const (
	PreferenceFavorite PreferenceKind = "favorite"
	PreferenceDislike  PreferenceKind = "dislike"
)

// Valid reports whether k is a known preference kind.
func (k PreferenceKind) Valid() bool {
	return k == PreferenceFavorite || k == PreferenceDislike
}

// Preference records one user's opinion about one recipe.
// At most one row exists per (user, recipe).
type Preference struct {
	UpdatedAt time.Time      `json:"updated_at"`
	UserID    string         `json:"user_id"`
	RecipeID  string         `json:"recipe_id"`
	Kind      PreferenceKind `json:"kind"`
}

// BlockedIngredient excludes an ingredient from all future recipe selections
// for a user. A recipe containing any blocked ingredient is never offered.
type BlockedIngredient struct {
	CreatedAt    time.Time `json:"created_at"`
	UserID       string    `json:"user_id"`
	IngredientID string    `json:"ingredient_id"`
}

// PantryEntry marks an ingredient as on hand. Quantity is informational;
// presence of the row alone counts as "have" for pantry-match scoring.
type PantryEntry struct {
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       string    `json:"user_id"`
	IngredientID string    `json:"ingredient_id"`
	Quantity     *float64  `json:"quantity,omitempty"`
}
