package sqlite

import (
	"context"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
)

// ListPreferences returns all preference rows for a user.
func (s *Store) ListPreferences(ctx context.Context, userID string) ([]*domain.Preference, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, recipe_id, kind, updated_at
		FROM preferences WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []*domain.Preference
	for rows.Next() {
		var (
			p         domain.Preference
			kind      string
			updatedAt string
		)
		if err := rows.Scan(&p.UserID, &p.RecipeID, &kind, &updatedAt); err != nil {
			return nil, err
		}
		p.Kind = domain.PreferenceKind(kind)
		p.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, &p)
	}
	return prefs, rows.Err()
}

// UpsertPreference writes a user's preference for a recipe, replacing any
// existing row for the same (user, recipe) pair.
func (s *Store) UpsertPreference(ctx context.Context, p *domain.Preference) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, recipe_id, kind, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, recipe_id) DO UPDATE SET
			kind = excluded.kind,
			updated_at = excluded.updated_at`,
		p.UserID,
		p.RecipeID,
		string(p.Kind),
		formatTime(p.UpdatedAt),
	)
	return err
}

// DeletePreference resets a user's preference for a recipe to neutral.
// Returns store.ErrNotFound if no preference row existed.
func (s *Store) DeletePreference(ctx context.Context, userID, recipeID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
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
