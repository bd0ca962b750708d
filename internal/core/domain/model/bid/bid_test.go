package bid_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBid(t *testing.T) {
	courseID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	now := time.Now()

	t.Run("creates_valid_bid", func(t *testing.T) {
		b, err := bid.NewBid(courseID, courierID, now)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.True(t, b.CourseID().IsEqual(courseID))
		assert.True(t, b.CourierID().IsEqual(courierID))
		assert.Equal(t, now, b.BidAt())
	})

	t.Run("rejects_zero_course_id", func(t *testing.T) {
		_, err := bid.NewBid(kernel.UUID{}, courierID, now)
		require.Error(t, err)
	})

	t.Run("rejects_zero_courier_id", func(t *testing.T) {
		_, err := bid.NewBid(courseID, kernel.UUID{}, now)
		require.Error(t, err)
	})

	t.Run("rejects_zero_timestamp", func(t *testing.T) {
		_, err := bid.NewBid(courseID, courierID, time.Time{})
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var b bid.Bid
		require.ErrorIs(t, b.Validate(), bid.ErrBidIsNotConstructed)
	})
}

func TestBid_Earlier(t *testing.T) {
	courseID := kernel.NewUUID()
	base := time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)

	t.Run("earlier_timestamp_ranks_first", func(t *testing.T) {
		early, _ := bid.NewBid(courseID, kernel.NewUUID(), base)
		late, _ := bid.NewBid(courseID, kernel.NewUUID(), base.Add(300*time.Millisecond))

		assert.True(t, early.Earlier(late))
		assert.False(t, late.Earlier(early))
	})

	t.Run("equal_timestamps_break_tie_on_courier_id", func(t *testing.T) {
		smaller, _ := kernel.UUIDFromString("00000000-0000-4000-8000-000000000001")
		bigger, _ := kernel.UUIDFromString("ffffffff-ffff-4fff-bfff-ffffffffffff")

		a, _ := bid.NewBid(courseID, smaller, base)
		b, _ := bid.NewBid(courseID, bigger, base)

		assert.True(t, a.Earlier(b))
		assert.False(t, b.Earlier(a))
	})
}
