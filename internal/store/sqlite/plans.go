package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
)

const planColumns = `id, start_date, days, created_at`

func scanPlan(scanner interface{ Scan(dest ...any) error }) (*domain.MealPlan, error) {
	var p domain.MealPlan

	var (
		startDate string
		createdAt string
	)

	err := scanner.Scan(&p.ID, &startDate, &p.Days, &createdAt)
	if err != nil {
		return nil, err
	}

	p.StartDate, err = parseDate(startDate)
	if err != nil {
		return nil, err
	}
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlan inserts a new meal plan.
// Returns store.ErrAlreadyExists on duplicate id.
func (s *Store) CreatePlan(ctx context.Context, p *domain.MealPlan) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meal_plans (id, start_date, days, created_at)
		VALUES (?, ?, ?, ?)`,
		p.ID,
		formatDate(p.StartDate),
		p.Days,
		formatTime(p.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPlan retrieves a plan by id.
// Returns store.ErrNotFound if the plan does not exist.
func (s *Store) GetPlan(ctx context.Context, id string) (*domain.MealPlan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM meal_plans WHERE id = ?`, id)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans returns all plans, newest start date first.
func (s *Store) ListPlans(ctx context.Context) ([]*domain.MealPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM meal_plans ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.MealPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan; its slots cascade.
// Returns store.ErrNotFound if the plan does not exist.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id)
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
