package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
		{2027, date(2027, time.March, 28)},
	}

	for _, tc := range tests {
		got := EasterSunday(tc.year)
		assert.Equalf(t, tc.want, got, "year %d", tc.year)
	}
}

func TestGermanHolidays(t *testing.T) {
	holidays := GermanHolidays(2026)
	require.Len(t, holidays, 9)

	assert.Contains(t, holidays, date(2026, time.January, 1))
	assert.Contains(t, holidays, date(2026, time.December, 25))
	// Easter 2026 is April 5: Good Friday Apr 3, Easter Monday Apr 6,
	// Ascension May 14, Whit Monday May 25.
	assert.Contains(t, holidays, date(2026, time.April, 3))
	assert.Contains(t, holidays, date(2026, time.April, 6))
	assert.Contains(t, holidays, date(2026, time.May, 14))
	assert.Contains(t, holidays, date(2026, time.May, 25))
}

func TestMinSelectableDate(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  time.Time
	}{
		{
			name:  "monday start",
			today: date(2026, time.August, 31), // Monday
			want:  date(2026, time.September, 7),
		},
		{
			name:  "friday start skips two weekends",
			today: date(2026, time.September, 4), // Friday
			want:  date(2026, time.September, 11),
		},
		{
			name:  "saturday start",
			today: date(2026, time.September, 5),
			want:  date(2026, time.September, 11),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MinSelectableDate(tc.today)
			assert.Equal(t, tc.want, got)

			wd := got.Weekday()
			assert.NotEqual(t, time.Saturday, wd)
			assert.NotEqual(t, time.Sunday, wd)
		})
	}
}

func TestMinSelectableDateAlwaysWeekday(t *testing.T) {
	today := date(2026, time.January, 1)
	for i := 0; i < 365; i++ {
		got := MinSelectableDate(today.AddDate(0, 0, i))
		wd := got.Weekday()
		assert.NotEqualf(t, time.Saturday, wd, "today=%s", today.AddDate(0, 0, i))
		assert.NotEqualf(t, time.Sunday, wd, "today=%s", today.AddDate(0, 0, i))
	}
}

func TestIsDateBlocked(t *testing.T) {
	today := date(2026, time.September, 1) // Tuesday

	t.Run("weekends blocked", func(t *testing.T) {
		for d := 1; d <= 30; d++ {
			day := date(2026, time.September, d)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				assert.Truef(t, IsDateBlocked(day, today), "day %s", day)
			}
		}
	})

	t.Run("before lead time blocked", func(t *testing.T) {
		assert.True(t, IsDateBlocked(date(2026, time.September, 2), today))
		assert.True(t, IsDateBlocked(today, today))
		// Min selectable from Tue Sep 1 is Tue Sep 8.
		assert.False(t, IsDateBlocked(date(2026, time.September, 8), today))
	})

	t.Run("holidays blocked across year boundary", func(t *testing.T) {
		winter := date(2026, time.December, 1)
		assert.True(t, IsDateBlocked(date(2026, time.December, 25), winter))
		assert.True(t, IsDateBlocked(date(2027, time.January, 1), winter))
	})
}

func TestSelectableDates(t *testing.T) {
	today := date(2026, time.September, 1)
	got := SelectableDates(date(2026, time.September, 1), date(2026, time.September, 14), today)

	// Sep 8-11 (Tue-Fri) and Sep 14 (Mon).
	require.Len(t, got, 5)
	assert.Equal(t, date(2026, time.September, 8), got[0])
	assert.Equal(t, date(2026, time.September, 14), got[4])
}
