package sqlite

import (
	"context"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
)

// ListBlockedIngredients returns all blocked-ingredient rows for a user.
func (s *Store) ListBlockedIngredients(ctx context.Context, userID string) ([]*domain.BlockedIngredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, ingredient_id, created_at
		FROM blocked_ingredients WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocked []*domain.BlockedIngredient
	for rows.Next() {
		var (
			b         domain.BlockedIngredient
			createdAt string
		)
		if err := rows.Scan(&b.UserID, &b.IngredientID, &createdAt); err != nil {
			return nil, err
		}
		b.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, &b)
	}
	return blocked, rows.Err()
}

// BlockIngredient adds an ingredient to a user's blocked set. Blocking an
// already blocked ingredient is a no-op.
func (s *Store) BlockIngredient(ctx context.Context, b *domain.BlockedIngredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blocked_ingredients (user_id, ingredient_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, ingredient_id) DO NOTHING`,
		b.UserID,
		b.IngredientID,
		formatTime(b.CreatedAt),
	)
	return err
}

// UnblockIngredient removes an ingredient from a user's blocked set.
// Returns store.ErrNotFound if the ingredient was not blocked.
func (s *Store) UnblockIngredient(ctx context.Context, userID, ingredientID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM blocked_ingredients WHERE user_id = ? AND ingredient_id = ?`,
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
