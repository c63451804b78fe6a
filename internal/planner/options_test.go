package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
)

func validOptions() Options {
	return Options{
		StartDate:     testDate(0),
		Days:          7,
		People:        2,
		LunchSpanDays: 2,
		CooldownDays:  14,
	}
}

func TestOptionsValidate_RangeChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		ok     bool
	}{
		{"valid defaults", func(o *Options) {}, true},
		{"zero start date", func(o *Options) { o.StartDate = time.Time{} }, false},
		{"zero days", func(o *Options) { o.Days = 0 }, false},
		{"too many days", func(o *Options) { o.Days = 32 }, false},
		{"max days", func(o *Options) { o.Days = 31 }, true},
		{"zero people", func(o *Options) { o.People = 0 }, false},
		{"too many people", func(o *Options) { o.People = 21 }, false},
		{"zero lunch span", func(o *Options) { o.LunchSpanDays = 0 }, false},
		{"lunch span over a week", func(o *Options) { o.LunchSpanDays = 8 }, false},
		{"negative cooldown", func(o *Options) { o.CooldownDays = -1 }, false},
		{"cooldown over limit", func(o *Options) { o.CooldownDays = 61 }, false},
		{"cooldown disabled", func(o *Options) { o.CooldownDays = 0 }, true},
		{"unknown batch meal type", func(o *Options) { o.BatchMealType = "supper" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestOptionsValidate_DefaultsBatchMealTypeToLunch(t *testing.T) {
	opts := validOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, domain.MealLunch, opts.BatchMealType)
}

func TestOptionsValidate_KeepsExplicitBatchMealType(t *testing.T) {
	opts := validOptions()
	opts.BatchMealType = domain.MealDinner
	require.NoError(t, opts.Validate())
	assert.Equal(t, domain.MealDinner, opts.BatchMealType)
}

func TestOptionsValidate_NormalizesStartDate(t *testing.T) {
	opts := validOptions()
	opts.StartDate = time.Date(2026, 1, 5, 23, 59, 1, 0, time.UTC)
	require.NoError(t, opts.Validate())
	assert.Equal(t, testDate(0), opts.StartDate)
}
