package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("creates_valid_courier", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.NewCourier(id, "Auguste Tanguy")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Auguste Tanguy", c.Name())
	})

	t.Run("rejects_zero_id", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.UUID{}, "Auguste Tanguy")
		require.Error(t, err)
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "")
		require.Error(t, err)
	})

	t.Run("nil_courier_fails_validation", func(t *testing.T) {
		var c *courier.Courier
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestCourier_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, _ := courier.NewCourier(id, "Auguste Tanguy")
	b, _ := courier.NewCourier(id, "Different Name")
	c, _ := courier.NewCourier(kernel.NewUUID(), "Auguste Tanguy")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}
