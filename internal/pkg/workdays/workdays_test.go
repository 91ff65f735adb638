package workdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBetween_ExcludesWeekends(t *testing.T) {
	// Mon 2024-01-01 through Sun 2024-01-14: two full weeks.
	dates := Between(date(2024, time.January, 1), date(2024, time.January, 14))

	require.Len(t, dates, 10)
	for _, d := range dates {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
	assert.Equal(t, date(2024, time.January, 1), dates[0])
	assert.Equal(t, date(2024, time.January, 12), dates[len(dates)-1])
}

func TestBetween_SingleSaturday(t *testing.T) {
	// 2024-01-06 is a Saturday.
	dates := Between(date(2024, time.January, 6), date(2024, time.January, 6))
	assert.Empty(t, dates)
}

func TestBetween_SingleWeekday(t *testing.T) {
	dates := Between(date(2024, time.January, 3), date(2024, time.January, 3))
	require.Len(t, dates, 1)
	assert.Equal(t, date(2024, time.January, 3), dates[0])
}

func TestBetween_EndBeforeStart(t *testing.T) {
	dates := Between(date(2024, time.January, 10), date(2024, time.January, 1))
	assert.Empty(t, dates)
}

func TestBetween_LengthNeverExceedsRange(t *testing.T) {
	start := date(2024, time.March, 1)
	end := date(2024, time.April, 30)
	dates := Between(start, end)
	assert.LessOrEqual(t, len(dates), InclusiveDays(start, end))

	// Every date appears exactly once.
	seen := make(map[string]bool)
	for _, d := range dates {
		key := d.Format("2006-01-02")
		assert.False(t, seen[key], "duplicate date %s", key)
		seen[key] = true
	}
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", date(2024, time.May, 1), date(2024, time.May, 1), 1},
		{"five days", date(2024, time.May, 1), date(2024, time.May, 5), 5},
		{"across month", date(2024, time.January, 30), date(2024, time.February, 2), 4},
		{"end before start", date(2024, time.May, 5), date(2024, time.May, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InclusiveDays(tt.start, tt.end))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}

func TestTruncate_DropsTimeOfDay(t *testing.T) {
	ts := time.Date(2024, time.June, 15, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2024, time.June, 15), Truncate(ts))
}
