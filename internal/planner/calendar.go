package planner

import (
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// Calendar is the expanded date grid of a plan: one entry per day, in order,
// each day owning one slot per meal type.
type Calendar struct {
	Start time.Time
	Dates []time.Time
}

// BuildCalendar expands a start date and day count into an ordered calendar.
func BuildCalendar(start time.Time, days int) *Calendar {
	start = domain.NormalizeDate(start)
	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return &Calendar{Start: start, Dates: dates}
}

// DayIndex returns the zero-based index of date within the calendar.
func (c *Calendar) DayIndex(date time.Time) int {
	return domain.DayDistance(c.Start, date)
}
