package kernel_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayFromTime(t *testing.T) {
	t.Run("truncates_to_local_calendar_day", func(t *testing.T) {
		moment := time.Date(2025, 10, 25, 23, 59, 58, 0, time.Local)

		day := kernel.DayFromTime(moment)

		require.NoError(t, day.Validate())
		assert.Equal(t, "2025-10-25", day.String())
	})

	t.Run("same_day_times_map_to_equal_days", func(t *testing.T) {
		morning := kernel.DayFromTime(time.Date(2025, 10, 25, 1, 0, 0, 0, time.Local))
		evening := kernel.DayFromTime(time.Date(2025, 10, 25, 22, 0, 0, 0, time.Local))

		assert.True(t, morning.IsEqual(evening))
	})
}

func TestDayFromString(t *testing.T) {
	t.Run("parses_canonical_form", func(t *testing.T) {
		day, err := kernel.DayFromString("2025-10-25")

		require.NoError(t, err)
		assert.Equal(t, "2025-10-25", day.String())
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		_, err := kernel.DayFromString("25/10/2025")
		require.Error(t, err)
	})
}

func TestDay_Before(t *testing.T) {
	earlier, _ := kernel.DayFromString("2025-10-24")
	later, _ := kernel.DayFromString("2025-10-25")

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.False(t, earlier.Before(earlier))
}

func TestDay_AddDays(t *testing.T) {
	t.Run("shifts_backwards_across_month_boundary", func(t *testing.T) {
		day, _ := kernel.DayFromString("2025-11-01")

		assert.Equal(t, "2025-10-30", day.AddDays(-2).String())
	})
}

func TestDay_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var day kernel.Day
		require.ErrorIs(t, day.Validate(), kernel.ErrDayIsNotConstructed)
	})
}
