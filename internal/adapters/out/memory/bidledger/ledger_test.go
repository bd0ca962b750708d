package bidledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory/bidledger"
	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBid(t *testing.T, courseID, courierID kernel.UUID, at time.Time) bid.Bid {
	t.Helper()
	b, err := bid.NewBid(courseID, courierID, at)
	require.NoError(t, err)
	return b
}

func TestLedger_Record(t *testing.T) {
	ctx := context.Background()
	courseID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	now := time.Now()

	t.Run("first_bid_is_recorded", func(t *testing.T) {
		ledger := bidledger.NewLedger()

		recorded, err := ledger.Record(ctx, mustBid(t, courseID, courierID, now))

		require.NoError(t, err)
		assert.True(t, recorded)
	})

	t.Run("repeat_bid_is_ignored", func(t *testing.T) {
		ledger := bidledger.NewLedger()

		_, err := ledger.Record(ctx, mustBid(t, courseID, courierID, now))
		require.NoError(t, err)
		recorded, err := ledger.Record(ctx, mustBid(t, courseID, courierID, now.Add(time.Second)))
		require.NoError(t, err)
		assert.False(t, recorded)

		snapshot, err := ledger.Snapshot(ctx, courseID)
		require.NoError(t, err)
		require.Len(t, snapshot, 1)
		assert.True(t, snapshot[0].BidAt().Equal(now))
	})

	t.Run("same_courier_different_courses", func(t *testing.T) {
		ledger := bidledger.NewLedger()
		otherCourse := kernel.NewUUID()

		first, err := ledger.Record(ctx, mustBid(t, courseID, courierID, now))
		require.NoError(t, err)
		second, err := ledger.Record(ctx, mustBid(t, otherCourse, courierID, now))
		require.NoError(t, err)

		assert.True(t, first)
		assert.True(t, second)
	})

	t.Run("rejects_unconstructed_bid", func(t *testing.T) {
		ledger := bidledger.NewLedger()
		_, err := ledger.Record(ctx, bid.Bid{})
		require.Error(t, err)
	})
}

func TestLedger_Snapshot(t *testing.T) {
	ctx := context.Background()
	courseID := kernel.NewUUID()
	now := time.Now()

	t.Run("empty_course_yields_empty_snapshot", func(t *testing.T) {
		ledger := bidledger.NewLedger()

		snapshot, err := ledger.Snapshot(ctx, courseID)

		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("sorted_earliest_first", func(t *testing.T) {
		ledger := bidledger.NewLedger()
		late := mustBid(t, courseID, kernel.NewUUID(), now.Add(2*time.Second))
		early := mustBid(t, courseID, kernel.NewUUID(), now)
		middle := mustBid(t, courseID, kernel.NewUUID(), now.Add(time.Second))

		for _, b := range []bid.Bid{late, early, middle} {
			_, err := ledger.Record(ctx, b)
			require.NoError(t, err)
		}

		snapshot, err := ledger.Snapshot(ctx, courseID)
		require.NoError(t, err)
		require.Len(t, snapshot, 3)
		assert.True(t, snapshot[0].CourierID().IsEqual(early.CourierID()))
		assert.True(t, snapshot[1].CourierID().IsEqual(middle.CourierID()))
		assert.True(t, snapshot[2].CourierID().IsEqual(late.CourierID()))
	})

	t.Run("snapshot_is_a_copy", func(t *testing.T) {
		ledger := bidledger.NewLedger()
		_, err := ledger.Record(ctx, mustBid(t, courseID, kernel.NewUUID(), now))
		require.NoError(t, err)

		snapshot, err := ledger.Snapshot(ctx, courseID)
		require.NoError(t, err)

		_, err = ledger.Record(ctx, mustBid(t, courseID, kernel.NewUUID(), now.Add(time.Second)))
		require.NoError(t, err)

		assert.Len(t, snapshot, 1)
	})
}

func TestLedger_Clear(t *testing.T) {
	ctx := context.Background()
	courseID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	now := time.Now()

	t.Run("removes_all_bids_for_course", func(t *testing.T) {
		ledger := bidledger.NewLedger()
		_, err := ledger.Record(ctx, mustBid(t, courseID, courierID, now))
		require.NoError(t, err)

		require.NoError(t, ledger.Clear(ctx, courseID))

		snapshot, err := ledger.Snapshot(ctx, courseID)
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("courier_can_bid_again_after_clear", func(t *testing.T) {
		ledger := bidledger.NewLedger()
		_, err := ledger.Record(ctx, mustBid(t, courseID, courierID, now))
		require.NoError(t, err)
		require.NoError(t, ledger.Clear(ctx, courseID))

		recorded, err := ledger.Record(ctx, mustBid(t, courseID, courierID, now.Add(time.Second)))
		require.NoError(t, err)
		assert.True(t, recorded)
	})

	t.Run("clearing_unknown_course_is_a_noop", func(t *testing.T) {
		ledger := bidledger.NewLedger()
		require.NoError(t, ledger.Clear(ctx, kernel.NewUUID()))
	})
}

func TestLedger_ConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	ledger := bidledger.NewLedger()
	courseID := kernel.NewUUID()
	now := time.Now()

	const couriers = 32
	var wg sync.WaitGroup
	for i := 0; i < couriers; i++ {
		courierID := kernel.NewUUID()
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			b := mustBid(t, courseID, courierID, now.Add(time.Duration(offset)*time.Millisecond))
			_, err := ledger.Record(ctx, b)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	snapshot, err := ledger.Snapshot(ctx, courseID)
	require.NoError(t, err)
	assert.Len(t, snapshot, couriers)
}
