package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCycle(t *testing.T) {
	for _, raw := range []string{"daily", "weekly", "monthly", "yearly"} {
		c, err := ParseCycle(raw)
		require.NoError(t, err)
		require.Equal(t, Cycle(raw), c)
	}

	_, err := ParseCycle("fortnightly")
	require.ErrorIs(t, err, ErrUnknownCycle)
}

func TestNextDueDate(t *testing.T) {
	t.Run("future start date is the first occurrence", func(t *testing.T) {
		for _, c := range []Cycle{Daily, Weekly, Monthly, Yearly} {
			due, err := NextDueDate(date(2024, 6, 1), c, date(2024, 3, 15))
			require.NoError(t, err)
			require.Equal(t, date(2024, 6, 1), due, "cycle %s", c)
		}
	})

	t.Run("daily is the day after the reference", func(t *testing.T) {
		due, err := NextDueDate(date(2024, 1, 1), Daily, date(2024, 3, 15))
		require.NoError(t, err)
		require.Equal(t, date(2024, 3, 16), due)
	})

	t.Run("daily rolls over month boundaries", func(t *testing.T) {
		due, err := NextDueDate(date(2024, 1, 1), Daily, date(2024, 2, 29))
		require.NoError(t, err)
		require.Equal(t, date(2024, 3, 1), due)
	})

	t.Run("weekly advances by the weekday offset", func(t *testing.T) {
		// 2024-03-15 is a Friday (weekday 5): (7-5)%7+1 = 3 days.
		due, err := NextDueDate(date(2024, 1, 1), Weekly, date(2024, 3, 15))
		require.NoError(t, err)
		require.Equal(t, date(2024, 3, 18), due)

		// 2024-03-17 is a Sunday (weekday 0): (7-0)%7+1 = 1 day.
		due, err = NextDueDate(date(2024, 1, 1), Weekly, date(2024, 3, 17))
		require.NoError(t, err)
		require.Equal(t, date(2024, 3, 18), due)
	})

	t.Run("monthly anchors to the start day", func(t *testing.T) {
		due, err := NextDueDate(date(2024, 1, 10), Monthly, date(2024, 3, 5))
		require.NoError(t, err)
		require.Equal(t, date(2024, 3, 10), due)

		// Reference on or past the anchor day pushes to the next month.
		due, err = NextDueDate(date(2024, 1, 10), Monthly, date(2024, 3, 10))
		require.NoError(t, err)
		require.Equal(t, date(2024, 4, 10), due)
	})

	t.Run("monthly clamps to short months", func(t *testing.T) {
		due, err := NextDueDate(date(2024, 1, 31), Monthly, date(2024, 2, 15))
		require.NoError(t, err)
		require.Equal(t, date(2024, 2, 29), due)

		due, err = NextDueDate(date(2023, 1, 31), Monthly, date(2023, 2, 15))
		require.NoError(t, err)
		require.Equal(t, date(2023, 2, 28), due)

		due, err = NextDueDate(date(2024, 1, 31), Monthly, date(2024, 4, 1))
		require.NoError(t, err)
		require.Equal(t, date(2024, 4, 30), due)
	})

	t.Run("monthly handles December rollover", func(t *testing.T) {
		due, err := NextDueDate(date(2024, 1, 15), Monthly, date(2024, 12, 20))
		require.NoError(t, err)
		require.Equal(t, date(2025, 1, 15), due)
	})

	t.Run("yearly anchors to the start month and day", func(t *testing.T) {
		due, err := NextDueDate(date(2023, 6, 10), Yearly, date(2024, 3, 1))
		require.NoError(t, err)
		require.Equal(t, date(2024, 6, 10), due)

		due, err = NextDueDate(date(2023, 6, 10), Yearly, date(2024, 6, 10))
		require.NoError(t, err)
		require.Equal(t, date(2025, 6, 10), due)
	})

	t.Run("yearly clamps Feb 29 in non-leap years", func(t *testing.T) {
		due, err := NextDueDate(date(2024, 2, 29), Yearly, date(2025, 1, 1))
		require.NoError(t, err)
		require.Equal(t, date(2025, 2, 28), due)
	})

	t.Run("result is always strictly after the reference", func(t *testing.T) {
		start := date(2024, 1, 31)
		for _, c := range []Cycle{Daily, Weekly, Monthly, Yearly} {
			ref := start
			for i := 0; i < 24; i++ {
				due, err := NextDueDate(start, c, ref)
				require.NoError(t, err)
				require.True(t, due.After(ref), "cycle %s: %s not after %s", c, due, ref)
				ref = due
			}
		}
	})

	t.Run("rejects unknown cycles", func(t *testing.T) {
		_, err := NextDueDate(date(2024, 1, 1), Cycle("hourly"), date(2024, 3, 1))
		require.ErrorIs(t, err, ErrUnknownCycle)
	})

	t.Run("ignores the time of day", func(t *testing.T) {
		noon := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
		due, err := NextDueDate(date(2024, 1, 1), Daily, noon)
		require.NoError(t, err)
		require.Equal(t, date(2024, 3, 16), due)
	})
}
