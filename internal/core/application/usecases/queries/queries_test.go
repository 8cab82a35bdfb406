package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
)

func TestNewGetOrderByIDQuery(t *testing.T) {
	t.Run("should create query with valid order ID", func(t *testing.T) {
		// Given
		orderID := kernel.NewUUID()

		// When
		query, err := queries.NewGetOrderByIDQuery(orderID)

		// Then
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(orderID))
	})

	t.Run("should reject invalid order ID", func(t *testing.T) {
		// When
		_, err := queries.NewGetOrderByIDQuery(kernel.UUID{})

		// Then
		assert.Error(t, err)
	})

	t.Run("should fail validation for zero value query", func(t *testing.T) {
		assert.ErrorIs(t,
			queries.GetOrderByIDQuery{}.Validate(),
			queries.ErrGetOrderByIDQueryIsNotConstructed)
	})
}

func TestNewGetOrdersQuery(t *testing.T) {
	t.Run("should create unscoped query", func(t *testing.T) {
		// When
		query := queries.NewGetOrdersQuery()

		// Then
		assert.NoError(t, query.Validate())
		assert.Nil(t, query.CustomerID())
	})

	t.Run("should create customer scoped query", func(t *testing.T) {
		// Given
		customerID := kernel.NewUUID()

		// When
		query, err := queries.NewGetOrdersByCustomerQuery(customerID)

		// Then
		require.NoError(t, err)
		require.NotNil(t, query.CustomerID())
		assert.True(t, query.CustomerID().IsEqual(customerID))
	})

	t.Run("should reject invalid customer ID", func(t *testing.T) {
		// When
		_, err := queries.NewGetOrdersByCustomerQuery(kernel.UUID{})

		// Then
		assert.Error(t, err)
	})
}

func TestNewGetAllCouriersQuery(t *testing.T) {
	t.Run("should create query", func(t *testing.T) {
		assert.NoError(t, queries.NewGetAllCouriersQuery().Validate())
	})

	t.Run("should fail validation for zero value query", func(t *testing.T) {
		assert.ErrorIs(t,
			queries.GetAllCouriersQuery{}.Validate(),
			queries.ErrGetAllCouriersQueryIsNotConstructed)
	})
}
