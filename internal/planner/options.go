package planner

import (
	"errors"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// Generation limits enforced by Options.Validate. The HTTP layer validates
// the same ranges on the request DTO; this is the engine's own guard.
const (
	MaxDays         = 31
	MaxPeople       = 20
	MaxLunchSpan    = 7
	MaxCooldownDays = 60
)

// Options is the recognized generation configuration surface.
type Options struct {
	StartDate     time.Time
	Days          int // 1..31
	People        int // 1..20, serving count per person-meal
	LunchSpanDays int // 1..7, cook-once-eat-N cadence for the batched meal
	CooldownDays  int // 0..60, 0 disables repetition cooldown
	PreferPantry  bool
	Desired       Desired
	// BatchMealType is the meal type cooked in multi-day batches.
	// Zero value defaults to lunch.
	BatchMealType domain.MealType
}

// Validate checks option ranges and applies defaults.
func (o *Options) Validate() error {
	if o.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	if o.Days < 1 || o.Days > MaxDays {
		return errors.New("day count must be between 1 and 31")
	}
	if o.People < 1 || o.People > MaxPeople {
		return errors.New("people count must be between 1 and 20")
	}
	if o.LunchSpanDays < 1 || o.LunchSpanDays > MaxLunchSpan {
		return errors.New("lunch span must be between 1 and 7 days")
	}
	if o.CooldownDays < 0 || o.CooldownDays > MaxCooldownDays {
		return errors.New("cooldown must be between 0 and 60 days")
	}
	if o.BatchMealType == "" {
		o.BatchMealType = domain.MealLunch
	}
	if !o.BatchMealType.Valid() {
		return errors.New("invalid batch meal type")
	}
	o.StartDate = domain.NormalizeDate(o.StartDate)
	return nil
}
