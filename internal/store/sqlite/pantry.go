package sqlite

import (
	"context"
	"database/sql"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
)

func scanPantryEntry(scanner interface{ Scan(dest ...any) error }) (*domain.PantryEntry, error) {
	var (
		e         domain.PantryEntry
		quantity  sql.NullFloat64
		updatedAt string
	)

	err := scanner.Scan(&e.UserID, &e.IngredientID, &quantity, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.Quantity = floatPtr(quantity)
	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListPantry returns all pantry rows for a user.
func (s *Store) ListPantry(ctx context.Context, userID string) ([]*domain.PantryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, ingredient_id, quantity, updated_at
		FROM pantry_entries WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.PantryEntry
	for rows.Next() {
		e, err := scanPantryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetPantryEntry retrieves one pantry row.
// Returns store.ErrNotFound if the ingredient is not in the pantry.
func (s *Store) GetPantryEntry(ctx context.Context, userID, ingredientID string) (*domain.PantryEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, ingredient_id, quantity, updated_at
		FROM pantry_entries WHERE user_id = ? AND ingredient_id = ?`,
		userID, ingredientID)

	e, err := scanPantryEntry(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpsertPantryEntry writes a pantry row, replacing any existing row for the
// same (user, ingredient) pair.
func (s *Store) UpsertPantryEntry(ctx context.Context, e *domain.PantryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pantry_entries (user_id, ingredient_id, quantity, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, ingredient_id) DO UPDATE SET
			quantity = excluded.quantity,
			updated_at = excluded.updated_at`,
		e.UserID,
		e.IngredientID,
		nullFloat(e.Quantity),
		formatTime(e.UpdatedAt),
	)
	return err
}

// DeletePantryEntry removes an ingredient from a user's pantry.
// Returns store.ErrNotFound if the row did not exist.
func (s *Store) DeletePantryEntry(ctx context.Context, userID, ingredientID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pantry_entries WHERE user_id = ? AND ingredient_id = ?`,
		userID, ingredientID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
