package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingDates_FromMidweek(t *testing.T) {
	// Wednesday, May 29, 2024
	now := time.Date(2024, 5, 29, 15, 30, 0, 0, time.UTC)

	dates, err := UpcomingDates(now, time.Saturday, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-01", "2024-06-08", "2024-06-15"}, dates)
}

func TestUpcomingDates_TodayIsTheWeekday(t *testing.T) {
	// Saturday, June 1, 2024, late in the evening
	now := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	dates, err := UpcomingDates(now, time.Saturday, 2)
	require.NoError(t, err)

	require.Len(t, dates, 2)
	assert.Equal(t, "2024-06-01", dates[0], "today counts when it is the roster weekday")
	assert.Equal(t, "2024-06-08", dates[1])
}

func TestUpcomingDates_UsesLocalCalendarDate(t *testing.T) {
	// Saturday 00:30 in UTC+8 is still Friday in UTC
	loc := time.FixedZone("UTC+8", 8*60*60)
	now := time.Date(2024, 6, 1, 0, 30, 0, 0, loc)

	dates, err := UpcomingDates(now, time.Saturday, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-01"}, dates)
}

func TestUpcomingDates_Properties(t *testing.T) {
	weekdays := []time.Weekday{time.Sunday, time.Wednesday, time.Saturday}

	for day := 0; day < 14; day++ {
		now := time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		for _, wd := range weekdays {
			dates, err := UpcomingDates(now, wd, 10)
			require.NoError(t, err)
			require.Len(t, dates, 10)

			seen := make(map[string]bool)
			var prev time.Time
			for i, s := range dates {
				d, err := time.Parse(DateLayout, s)
				require.NoError(t, err)

				assert.Equal(t, wd, d.Weekday(), "date %s should be a %s", s, wd)
				assert.False(t, seen[s], "date %s repeated", s)
				seen[s] = true

				if i == 0 {
					assert.False(t, d.Before(today), "first date %s is before today %s", s, today.Format(DateLayout))
					assert.True(t, d.Sub(today) < 7*24*time.Hour, "first date %s is not the nearest occurrence", s)
				} else {
					assert.Equal(t, 7*24*time.Hour, d.Sub(prev))
				}
				prev = d
			}
		}
	}
}

func TestUpcomingDates_NonPositiveCount(t *testing.T) {
	now := time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC)

	for _, count := range []int{0, -3} {
		dates, err := UpcomingDates(now, time.Saturday, count)
		require.NoError(t, err)
		assert.Empty(t, dates)
	}
}

func TestUpcomingDates_UnknownWeekday(t *testing.T) {
	now := time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC)

	dates, err := UpcomingDates(now, time.Weekday(9), 3)
	require.Error(t, err)
	assert.Nil(t, dates)
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		code     string
		expected time.Weekday
	}{
		{"SA", time.Saturday},
		{"su", time.Sunday},
		{" MO ", time.Monday},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			wd, err := ParseWeekday(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, wd)
		})
	}

	_, err := ParseWeekday("Saturday")
	assert.Error(t, err)
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-06-01"))
	assert.False(t, IsValidDate("2024-6-1"))
	assert.False(t, IsValidDate("2024-02-30"))
	assert.False(t, IsValidDate(""))
}
