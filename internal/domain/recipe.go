package domain

import "time"

// Recipe is a dish in the household catalog. Recipes are reference data from
// the planner's perspective: the engine reads them but never mutates them.
type Recipe struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MealType     MealType  `json:"meal_type"`
	BaseServings int       `json:"base_servings"` // Serving count the step amounts are written for (> 0)
	Steps        []string  `json:"steps"`         // Ordered preparation steps
	Tags         []string  `json:"tags"`          // Free-text tags ("quick", "vegetarian", ...)
}

// Ingredient is a unit of reference data shared by recipes and the pantry.
type Ingredient struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`               // Default unit of measure ("g", "ml", "pcs")
	Category  string    `json:"category,omitempty"` // Optional grouping ("dairy", "produce")
}

// RecipeIngredient links a recipe to one of its ingredients. A nil Amount
// means "to taste" / unspecified. Unit, when set, overrides the ingredient's
// default unit for this recipe only.
type RecipeIngredient struct {
	RecipeID     string   `json:"recipe_id"`
	IngredientID string   `json:"ingredient_id"`
	Amount       *float64 `json:"amount,omitempty"`
	Unit         string   `json:"unit,omitempty"`
}
