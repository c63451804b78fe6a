package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
)

const ingredientColumns = `id, name, unit, category, created_at, updated_at`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var (
		category  sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&ing.ID,
		&ing.Name,
		&ing.Unit,
		&category,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ing.Category = category.String

	ing.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ing.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ing, nil
}

// CreateIngredient inserts a new ingredient.
// Returns store.ErrAlreadyExists on duplicate id.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, unit, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ing.ID,
		ing.Name,
		ing.Unit,
		nullString(ing.Category),
		formatTime(ing.CreatedAt),
		formatTime(ing.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetIngredient retrieves an ingredient by id.
// Returns store.ErrNotFound if the ingredient does not exist.
func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, id)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns all ingredients ordered by name.
func (s *Store) ListIngredients(ctx context.Context) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// LinkRecipeIngredient associates an ingredient with a recipe.
// Returns store.ErrAlreadyExists if the pair is already linked.
func (s *Store) LinkRecipeIngredient(ctx context.Context, link *domain.RecipeIngredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit)
		VALUES (?, ?, ?, ?)`,
		link.RecipeID,
		link.IngredientID,
		nullFloat(link.Amount),
		nullString(link.Unit),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListRecipeIngredients returns every recipe-ingredient join row.
// The planner groups them into per-recipe ingredient sets.
func (s *Store) ListRecipeIngredients(ctx context.Context) ([]*domain.RecipeIngredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipe_id, ingredient_id, amount, unit FROM recipe_ingredients`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLinks(rows)
}

// ListIngredientsForRecipe returns the join rows of one recipe.
func (s *Store) ListIngredientsForRecipe(ctx context.Context, recipeID string) ([]*domain.RecipeIngredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipe_id, ingredient_id, amount, unit FROM recipe_ingredients WHERE recipe_id = ?`,
		recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLinks(rows)
}

func collectLinks(rows *sql.Rows) ([]*domain.RecipeIngredient, error) {
	var links []*domain.RecipeIngredient
	for rows.Next() {
		var (
			link   domain.RecipeIngredient
			amount sql.NullFloat64
			unit   sql.NullString
		)
		if err := rows.Scan(&link.RecipeID, &link.IngredientID, &amount, &unit); err != nil {
			return nil, err
		}
		link.Amount = floatPtr(amount)
		link.Unit = unit.String
		links = append(links, &link)
	}
	return links, rows.Err()
}
