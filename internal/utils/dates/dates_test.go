package dates_test

import (
	"testing"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/utils/dates"
	"github.com/stretchr/testify/assert"
)

func TestDayOf_CrossesMidnightBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 03:30 UTC is still the previous evening in New York.
	instant := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC)
	day := dates.DayOf(instant, loc)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), day)
}

func TestPrevDay_AcrossMonthStart(t *testing.T) {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), dates.PrevDay(d))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, dates.SameDay(a, b))
	assert.False(t, dates.SameDay(a, c))
}

func TestMonthRange(t *testing.T) {
	from, to := dates.MonthRange(2025, time.December, time.UTC)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
}
