package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDueDate(t *testing.T) {
	from := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		recurrence Recurrence
		want       time.Time
		ok         bool
	}{
		{"none", RecurrenceNone, time.Time{}, false},
		{"unknown", Recurrence("yearly"), time.Time{}, false},
		{"daily", RecurrenceDaily, time.Date(2026, time.March, 11, 9, 30, 0, 0, time.UTC), true},
		{"weekly", RecurrenceWeekly, time.Date(2026, time.March, 17, 9, 30, 0, 0, time.UTC), true},
		{"monthly", RecurrenceMonthly, time.Date(2026, time.April, 10, 9, 30, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.recurrence.NextDueDate(from)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			if ok {
				assert.True(t, got.After(from))
			}
		})
	}
}

func TestNextDueDate_MonthlyClampsToEndOfMonth(t *testing.T) {
	cases := map[string]struct {
		from time.Time
		want time.Time
	}{
		"common year": {
			from: time.Date(2026, time.January, 31, 8, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.February, 28, 8, 0, 0, 0, time.UTC),
		},
		"leap year": {
			from: time.Date(2028, time.January, 31, 8, 0, 0, 0, time.UTC),
			want: time.Date(2028, time.February, 29, 8, 0, 0, 0, time.UTC),
		},
		"thirty day month": {
			from: time.Date(2026, time.March, 31, 8, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 30, 8, 0, 0, 0, time.UTC),
		},
		"year boundary": {
			from: time.Date(2026, time.December, 15, 8, 0, 0, 0, time.UTC),
			want: time.Date(2027, time.January, 15, 8, 0, 0, 0, time.UTC),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := RecurrenceMonthly.NextDueDate(tc.from)
			require.True(t, ok)
			assert.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestNextDueDate_WeeklyKeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// DST starts on 2026-03-08 in New York.
	from := time.Date(2026, time.March, 5, 9, 0, 0, 0, loc)
	got, ok := RecurrenceWeekly.NextDueDate(from)
	require.True(t, ok)

	assert.Equal(t, 12, got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 167*time.Hour, got.Sub(from))
}

func TestStatusNext(t *testing.T) {
	next, ok := StatusTodo.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, next)

	next, ok = StatusInProgress.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusDone, next)

	next, ok = StatusDone.Next()
	assert.False(t, ok)
	assert.Equal(t, StatusDone, next)
}

func TestStatusInfoAndRank(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Info().Title)
	assert.Equal(t, "green", StatusDone.Info().Color)
	assert.Less(t, StatusTodo.Rank(), StatusInProgress.Rank())
	assert.Less(t, StatusInProgress.Rank(), StatusDone.Rank())
	assert.False(t, Status("blocked").Valid())
}

func TestWeekdayShortName(t *testing.T) {
	assert.Equal(t, "Sun", WeekdayShortName(1))
	assert.Equal(t, "Sat", WeekdayShortName(7))
	assert.Equal(t, "", WeekdayShortName(0))
	assert.Equal(t, 6, DayOfWeekOf(time.Friday))
}
