package earnings_test

import (
	"testing"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("starts_at_zero", func(t *testing.T) {
		r, err := earnings.NewRecord(kernel.NewUUID(), kernel.Today())

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, 0, r.JobsCompleted())
		assert.Equal(t, "0.00", r.TotalEarned().String())
	})

	t.Run("rejects_zero_courier_id", func(t *testing.T) {
		_, err := earnings.NewRecord(kernel.UUID{}, kernel.Today())
		require.Error(t, err)
	})

	t.Run("rejects_zero_day", func(t *testing.T) {
		var day kernel.Day
		_, err := earnings.NewRecord(kernel.NewUUID(), day)
		require.Error(t, err)
	})
}

func TestRecord_Apply(t *testing.T) {
	t.Run("single_confirmed_course", func(t *testing.T) {
		r, _ := earnings.NewRecord(kernel.NewUUID(), kernel.Today())
		reward, _ := kernel.MoneyFromString("10.00")

		require.NoError(t, r.Apply(reward))

		assert.Equal(t, 1, r.JobsCompleted())
		assert.Equal(t, "10.00", r.TotalEarned().String())
	})

	t.Run("two_courses_accumulate", func(t *testing.T) {
		r, _ := earnings.NewRecord(kernel.NewUUID(), kernel.Today())
		first, _ := kernel.MoneyFromString("5.00")
		second, _ := kernel.MoneyFromString("7.50")

		require.NoError(t, r.Apply(first))
		require.NoError(t, r.Apply(second))

		assert.Equal(t, 2, r.JobsCompleted())
		assert.Equal(t, "12.50", r.TotalEarned().String())
	})

	t.Run("rejects_unconstructed_reward", func(t *testing.T) {
		r, _ := earnings.NewRecord(kernel.NewUUID(), kernel.Today())

		require.Error(t, r.Apply(kernel.Money{}))
		assert.Equal(t, 0, r.JobsCompleted())
	})

	t.Run("nil_record_fails", func(t *testing.T) {
		var r *earnings.Record
		reward, _ := kernel.MoneyFromString("1.00")
		require.ErrorIs(t, r.Apply(reward), earnings.ErrRecordIsNotConstructed)
	})
}

func TestRestoreRecord(t *testing.T) {
	t.Run("restores_counters", func(t *testing.T) {
		total, _ := kernel.MoneyFromString("12.50")

		r, err := earnings.RestoreRecord(kernel.NewUUID(), kernel.Today(), 2, total)

		require.NoError(t, err)
		assert.Equal(t, 2, r.JobsCompleted())
		assert.Equal(t, "12.50", r.TotalEarned().String())
	})

	t.Run("rejects_negative_counter", func(t *testing.T) {
		total, _ := kernel.MoneyFromString("1.00")
		_, err := earnings.RestoreRecord(kernel.NewUUID(), kernel.Today(), -1, total)
		require.Error(t, err)
	})
}
