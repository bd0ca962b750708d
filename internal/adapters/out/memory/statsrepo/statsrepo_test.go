package statsrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory/statsrepo"
	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmedCourse(t *testing.T, decidedAt time.Time) *course.Course {
	t.Helper()
	reward, err := kernel.MoneyFromString("10.00")
	require.NoError(t, err)
	c, err := course.NewCourse(kernel.NewUUID(), "Le Bistrot", "12 Rue de la Paix", reward, decidedAt.Add(-time.Minute))
	require.NoError(t, err)
	require.NoError(t, c.Select(kernel.NewUUID(), decidedAt.Add(-time.Second)))
	require.NoError(t, c.Confirm(decidedAt))
	return c
}

func TestStore_Earnings(t *testing.T) {
	ctx := context.Background()

	t.Run("get_missing_record_returns_not_found", func(t *testing.T) {
		store := statsrepo.NewStore()

		_, err := store.Get(ctx, kernel.NewUUID(), kernel.Today())

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("save_then_get_round_trips", func(t *testing.T) {
		store := statsrepo.NewStore()
		courierID := kernel.NewUUID()
		day := kernel.Today()
		record, err := earnings.NewRecord(courierID, day)
		require.NoError(t, err)
		reward, _ := kernel.MoneyFromString("7.25")
		require.NoError(t, record.Apply(reward))

		require.NoError(t, store.Save(ctx, record))

		got, err := store.Get(ctx, courierID, day)
		require.NoError(t, err)
		assert.Equal(t, 1, got.JobsCompleted())
		assert.Equal(t, "7.25", got.TotalEarned().String())
	})

	t.Run("get_returns_a_copy", func(t *testing.T) {
		store := statsrepo.NewStore()
		courierID := kernel.NewUUID()
		day := kernel.Today()
		record, _ := earnings.NewRecord(courierID, day)
		require.NoError(t, store.Save(ctx, record))

		got, err := store.Get(ctx, courierID, day)
		require.NoError(t, err)
		reward, _ := kernel.MoneyFromString("3.00")
		require.NoError(t, got.Apply(reward))

		stored, err := store.Get(ctx, courierID, day)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.JobsCompleted())
	})
}

func TestStore_PruneBefore(t *testing.T) {
	ctx := context.Background()
	store := statsrepo.NewStore()
	courierID := kernel.NewUUID()
	today := kernel.Today()
	stale := today.AddDays(-2)

	staleRecord, err := earnings.NewRecord(courierID, stale)
	require.NoError(t, err)
	freshRecord, err := earnings.NewRecord(courierID, today)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, staleRecord))
	require.NoError(t, store.Save(ctx, freshRecord))

	pruned, err := store.PruneBefore(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	_, err = store.Get(ctx, courierID, stale)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = store.Get(ctx, courierID, today)
	assert.NoError(t, err)
}

func TestStore_AllocationLog(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("rejects_non_terminal_course", func(t *testing.T) {
		store := statsrepo.NewStore()
		reward, _ := kernel.MoneyFromString("10.00")
		pending, err := course.NewCourse(kernel.NewUUID(), "Le Bistrot", "12 Rue de la Paix", reward, now)
		require.NoError(t, err)

		assert.Error(t, store.Add(ctx, pending))
	})

	t.Run("confirmed_courses_ordered_by_decision_time", func(t *testing.T) {
		store := statsrepo.NewStore()
		day := kernel.DayFromTime(now)
		late := confirmedCourse(t, now.Add(time.Hour))
		early := confirmedCourse(t, now)
		require.NoError(t, store.Add(ctx, late))
		require.NoError(t, store.Add(ctx, early))

		got, err := store.GetConfirmedByDay(ctx, day)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].ID().IsEqual(early.ID()))
		assert.True(t, got[1].ID().IsEqual(late.ID()))
	})

	t.Run("filters_by_decision_day", func(t *testing.T) {
		store := statsrepo.NewStore()
		require.NoError(t, store.Add(ctx, confirmedCourse(t, now)))

		got, err := store.GetConfirmedByDay(ctx, kernel.DayFromTime(now).AddDays(-1))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()
	store := statsrepo.NewStore()
	factory := statsrepo.NewUnitOfWorkFactory(store)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	courierID := kernel.NewUUID()
	day := kernel.Today()
	record, err := earnings.NewRecord(courierID, day)
	require.NoError(t, err)
	require.NoError(t, uow.EarningsRepository().Save(ctx, record))
	require.NoError(t, uow.AllocationLogRepository().Add(ctx, confirmedCourse(t, time.Now())))
	require.NoError(t, uow.Commit(ctx))

	_, err = store.Get(ctx, courierID, day)
	assert.NoError(t, err)
}

func TestUnitOfWork_CommitWithoutBegin_Fails(t *testing.T) {
	ctx := context.Background()
	factory := statsrepo.NewUnitOfWorkFactory(statsrepo.NewStore())

	uow := factory.Create()

	assert.ErrorIs(t, uow.Commit(ctx), statsrepo.ErrNoActiveTransaction)
	assert.ErrorIs(t, uow.Rollback(ctx), statsrepo.ErrNoActiveTransaction)
}

// Concurrent increments of one (courier, day) key must all land: each unit
// of work holds the store from Begin to Commit, so no Get can observe a
// count another in-flight unit of work is about to overwrite.
func TestUnitOfWork_ConcurrentIncrementsAllLand(t *testing.T) {
	ctx := context.Background()
	store := statsrepo.NewStore()
	factory := statsrepo.NewUnitOfWorkFactory(store)

	courierID := kernel.NewUUID()
	day := kernel.Today()
	reward, err := kernel.MoneyFromString("5.00")
	require.NoError(t, err)

	const workers = 16
	errc := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errc <- func() error {
				uow := factory.Create()
				if beginErr := uow.Begin(ctx); beginErr != nil {
					return beginErr
				}
				defer func() { _ = uow.Rollback(ctx) }()

				record, getErr := uow.EarningsRepository().Get(ctx, courierID, day)
				if errors.Is(getErr, errs.ErrObjectNotFound) {
					record, getErr = earnings.NewRecord(courierID, day)
				}
				if getErr != nil {
					return getErr
				}
				if applyErr := record.Apply(reward); applyErr != nil {
					return applyErr
				}
				if saveErr := uow.EarningsRepository().Save(ctx, record); saveErr != nil {
					return saveErr
				}
				return uow.Commit(ctx)
			}()
		}()
	}
	wg.Wait()
	close(errc)
	for workerErr := range errc {
		require.NoError(t, workerErr)
	}

	got, err := store.Get(ctx, courierID, day)
	require.NoError(t, err)
	assert.Equal(t, workers, got.JobsCompleted())
	assert.Equal(t, "80.00", got.TotalEarned().String())
}
