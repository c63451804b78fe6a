package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
)

const slotColumns = `id, plan_id, date, meal_type, recipe_id, servings`

func scanSlot(scanner interface{ Scan(dest ...any) error }) (*domain.Slot, error) {
	var sl domain.Slot

	var (
		date     string
		mealType string
		recipeID sql.NullString
	)

	err := scanner.Scan(&sl.ID, &sl.PlanID, &date, &mealType, &recipeID, &sl.Servings)
	if err != nil {
		return nil, err
	}

	sl.MealType = domain.MealType(mealType)
	sl.RecipeID = recipeID.String
	sl.Date, err = parseDate(date)
	if err != nil {
		return nil, err
	}
	return &sl, nil
}

// BulkInsertSlots inserts all slots in a single transaction. A failed insert
// rolls the whole batch back, so a plan is never partially persisted.
func (s *Store) BulkInsertSlots(ctx context.Context, slots []*domain.Slot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO slots (id, plan_id, date, meal_type, recipe_id, servings)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sl := range slots {
		_, err := stmt.ExecContext(ctx,
			sl.ID,
			sl.PlanID,
			formatDate(sl.Date),
			string(sl.MealType),
			nullString(sl.RecipeID),
			sl.Servings,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSlot retrieves a slot by id.
// Returns store.ErrNotFound if the slot does not exist.
func (s *Store) GetSlot(ctx context.Context, id string) (*domain.Slot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+slotColumns+` FROM slots WHERE id = ?`, id)

	sl, err := scanSlot(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sl, nil
}

// ListSlotsByPlan returns all slots of a plan ordered by date, with meal
// types in fill order within a day.
func (s *Store) ListSlotsByPlan(ctx context.Context, planID string) ([]*domain.Slot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+slotColumns+` FROM slots
		WHERE plan_id = ?
		ORDER BY date, CASE meal_type
			WHEN 'breakfast' THEN 0
			WHEN 'lunch' THEN 1
			ELSE 2
		END`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSlots(rows)
}

// UpdateSlotRecipes assigns recipeID to every listed slot in one
// transaction. Used for replacement propagation and undo, where a batch run
// must change atomically.
func (s *Store) UpdateSlotRecipes(ctx context.Context, slotIDs []string, recipeID string) error {
	if len(slotIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE slots SET recipe_id = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range slotIDs {
		res, err := stmt.ExecContext(ctx, nullString(recipeID), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound.WithMessage("slot not found: " + id)
		}
	}
	return tx.Commit()
}

// ListCookSlotsInRange returns cook slots with an assigned recipe dated in
// [from, to), across all plans. Seeds the cooldown tracker with pre-plan
// history.
func (s *Store) ListCookSlotsInRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+slotColumns+` FROM slots
		WHERE servings > 0 AND recipe_id IS NOT NULL
		  AND date >= ? AND date < ?
		ORDER BY date`,
		formatDate(from), formatDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSlots(rows)
}

func collectSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	var slots []*domain.Slot
	for rows.Next() {
		sl, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}
