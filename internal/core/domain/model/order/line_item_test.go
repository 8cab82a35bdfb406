package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

func mustMoney(t *testing.T, value string) kernel.Money {
	t.Helper()
	money, err := kernel.MoneyFromString(value)
	require.NoError(t, err)
	return money
}

func TestNewLineItem(t *testing.T) {
	t.Run("should create line item snapshot", func(t *testing.T) {
		// Given
		productID := kernel.NewUUID()
		price := mustMoney(t, "12.50")

		// When
		item, err := order.NewLineItem(productID, "Margherita", 2, price, "https://cdn.example/margherita.png")

		// Then
		require.NoError(t, err)
		assert.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, "Margherita", item.Name())
		assert.Equal(t, 2, item.Quantity())
		assert.True(t, item.UnitPrice().IsEqual(price))
		assert.Equal(t, "https://cdn.example/margherita.png", item.ImageURL())
	})

	t.Run("should allow empty image URL", func(t *testing.T) {
		// When
		item, err := order.NewLineItem(kernel.NewUUID(), "Margherita", 1, mustMoney(t, "12.50"), "")

		// Then
		require.NoError(t, err)
		assert.Empty(t, item.ImageURL())
	})

	t.Run("should reject invalid product ID", func(t *testing.T) {
		// When
		_, err := order.NewLineItem(kernel.UUID{}, "Margherita", 1, mustMoney(t, "12.50"), "")

		// Then
		assert.Error(t, err)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		// When
		_, err := order.NewLineItem(kernel.NewUUID(), "", 1, mustMoney(t, "12.50"), "")

		// Then
		assert.Error(t, err)
	})

	t.Run("should reject quantity below one", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			// When
			_, err := order.NewLineItem(kernel.NewUUID(), "Margherita", quantity, mustMoney(t, "12.50"), "")

			// Then
			assert.Error(t, err)
		}
	})

	t.Run("should reject zero unit price", func(t *testing.T) {
		// When
		_, err := order.NewLineItem(kernel.NewUUID(), "Margherita", 1, kernel.ZeroMoney(), "")

		// Then
		assert.Error(t, err)
	})

	t.Run("should reject unconstructed unit price", func(t *testing.T) {
		// When
		_, err := order.NewLineItem(kernel.NewUUID(), "Margherita", 1, kernel.Money{}, "")

		// Then
		assert.Error(t, err)
	})
}

func TestLineItemTotal(t *testing.T) {
	t.Run("should multiply unit price by quantity", func(t *testing.T) {
		// Given
		item, err := order.NewLineItem(kernel.NewUUID(), "Margherita", 3, mustMoney(t, "12.50"), "")
		require.NoError(t, err)

		// When
		total := item.Total()

		// Then
		assert.True(t, total.IsEqual(mustMoney(t, "37.50")))
	})
}

func TestLineItemValidate(t *testing.T) {
	t.Run("should fail for zero value line item", func(t *testing.T) {
		// Given
		var item order.LineItem

		// Then
		assert.ErrorIs(t, item.Validate(), order.ErrLineItemIsNotConstructed)
	})
}
