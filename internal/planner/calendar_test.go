package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar_OrderedConsecutiveDates(t *testing.T) {
	cal := BuildCalendar(testDate(0), 7)

	require.Len(t, cal.Dates, 7)
	assert.Equal(t, testDate(0), cal.Start)
	for i, d := range cal.Dates {
		assert.Equal(t, testDate(i), d, "day %d", i)
	}
}

func TestBuildCalendar_NormalizesStartToMidnightUTC(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	noisy := time.Date(2026, 1, 5, 18, 30, 12, 0, loc)

	cal := BuildCalendar(noisy, 2)

	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), cal.Start)
	assert.Equal(t, time.UTC, cal.Dates[1].Location())
}

func TestCalendar_DayIndex(t *testing.T) {
	cal := BuildCalendar(testDate(0), 5)

	assert.Equal(t, 0, cal.DayIndex(testDate(0)))
	assert.Equal(t, 4, cal.DayIndex(testDate(4)))
	assert.Equal(t, -3, cal.DayIndex(testDate(-3)))
}

func TestBuildCalendar_CrossesMonthBoundary(t *testing.T) {
	cal := BuildCalendar(time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), 4)

	assert.Equal(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), cal.Dates[3])
}
