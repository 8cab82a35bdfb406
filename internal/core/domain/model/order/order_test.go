package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

func buildItems(t *testing.T) []order.LineItem {
	t.Helper()

	pizza, err := order.NewLineItem(kernel.NewUUID(), "Margherita", 2, mustMoney(t, "12.50"), "")
	require.NoError(t, err)

	cola, err := order.NewLineItem(kernel.NewUUID(), "Cola", 1, mustMoney(t, "2.50"), "")
	require.NoError(t, err)

	return []order.LineItem{pizza, cola}
}

func buildPricing(t *testing.T) order.Pricing {
	t.Helper()

	// 2 x 12.50 + 1 x 2.50 = 27.50 items, plus tax and delivery fee
	pricing, err := order.NewPricing(
		mustMoney(t, "27.50"),
		mustMoney(t, "2.20"),
		mustMoney(t, "4.99"),
		mustMoney(t, "34.69"),
	)
	require.NoError(t, err)
	return pricing
}

func buildAddress(t *testing.T) order.Address {
	t.Helper()

	address, err := order.NewAddress("12 Baker Street", "London", "NW1 6XE", "UK")
	require.NoError(t, err)
	return address
}

func buildOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		buildItems(t),
		buildAddress(t),
		order.PaymentOnline,
		buildPricing(t),
	)
	require.NoError(t, err)
	return aggregate
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in Placed status with version 1", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		customerID := kernel.NewUUID()

		// When
		aggregate, err := order.NewOrder(
			id, customerID, buildItems(t), buildAddress(t), order.PaymentOnline, buildPricing(t))

		// Then
		require.NoError(t, err)
		assert.NoError(t, aggregate.Validate())
		assert.True(t, aggregate.ID().IsEqual(id))
		assert.True(t, aggregate.CustomerID().IsEqual(customerID))
		assert.Equal(t, order.Placed, aggregate.Status())
		assert.Equal(t, 1, aggregate.Version())
		assert.False(t, aggregate.IsPaid())
		assert.Nil(t, aggregate.PaidAt())
		assert.Empty(t, aggregate.PaymentReference())
		assert.Nil(t, aggregate.Courier())
		assert.False(t, aggregate.IsDelivered())
		assert.Nil(t, aggregate.DeliveredAt())
		assert.Len(t, aggregate.Items(), 2)
	})

	t.Run("should accept a checkout whose totals add up exactly", func(t *testing.T) {
		// Given 2 x 100.00 + 1 x 50.00 with 12.50 tax and free delivery
		first, err := order.NewLineItem(kernel.NewUUID(), "Thali", 2, mustMoney(t, "100.00"), "")
		require.NoError(t, err)
		second, err := order.NewLineItem(kernel.NewUUID(), "Lassi", 1, mustMoney(t, "50.00"), "")
		require.NoError(t, err)

		pricing, err := order.NewPricing(
			mustMoney(t, "250.00"),
			mustMoney(t, "12.50"),
			kernel.ZeroMoney(),
			mustMoney(t, "262.50"),
		)
		require.NoError(t, err)

		// When
		aggregate, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{first, second},
			buildAddress(t), order.PaymentOnline, pricing)

		// Then
		require.NoError(t, err)
		assert.True(t, aggregate.Pricing().Total().IsEqual(mustMoney(t, "262.50")))
	})

	t.Run("should reject empty line items", func(t *testing.T) {
		// When
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, buildAddress(t), order.PaymentOnline, buildPricing(t))

		// Then
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrLineItemsAreRequired)
	})

	t.Run("should reject pricing whose items total does not match the line items", func(t *testing.T) {
		// Given a consistent pricing that disagrees with the items sum of 27.50
		pricing, err := order.NewPricing(
			mustMoney(t, "30.00"),
			mustMoney(t, "2.20"),
			mustMoney(t, "4.99"),
			mustMoney(t, "37.19"),
		)
		require.NoError(t, err)

		// When
		_, err = order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), buildItems(t), buildAddress(t), order.PaymentOnline, pricing)

		// Then
		require.Error(t, err)
		assert.ErrorContains(t, err, "items total")
	})

	t.Run("should reject invalid payment method", func(t *testing.T) {
		// When
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), buildItems(t), buildAddress(t),
			order.PaymentMethodUnknown, buildPricing(t))

		// Then
		assert.Error(t, err)
	})

	t.Run("should join multiple violations into one error", func(t *testing.T) {
		// When
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.UUID{}, nil, order.Address{}, order.PaymentMethodUnknown, buildPricing(t))

		// Then
		require.Error(t, err)
		assert.ErrorContains(t, err, "line items")
		assert.ErrorContains(t, err, "address")
	})

	t.Run("should not share the items slice with the caller", func(t *testing.T) {
		// Given
		items := buildItems(t)
		aggregate, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), items, buildAddress(t), order.PaymentOnline, buildPricing(t))
		require.NoError(t, err)

		// When
		items[0] = order.LineItem{}

		// Then
		assert.NoError(t, aggregate.Items()[0].Validate())
	})
}

func TestOrderConfirmPayment(t *testing.T) {
	t.Run("should record payment and bump version", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)

		// When
		err := aggregate.ConfirmPayment("pay_8827")

		// Then
		require.NoError(t, err)
		assert.True(t, aggregate.IsPaid())
		assert.NotNil(t, aggregate.PaidAt())
		assert.Equal(t, "pay_8827", aggregate.PaymentReference())
		assert.Equal(t, 2, aggregate.Version())
	})

	t.Run("should be a no-op when confirming the same reference again", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)
		require.NoError(t, aggregate.ConfirmPayment("pay_8827"))
		paidAt := aggregate.PaidAt()
		version := aggregate.Version()

		// When
		err := aggregate.ConfirmPayment("pay_8827")

		// Then
		require.NoError(t, err)
		assert.Equal(t, paidAt, aggregate.PaidAt())
		assert.Equal(t, version, aggregate.Version())
	})

	t.Run("should reject a conflicting gateway reference", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)
		require.NoError(t, aggregate.ConfirmPayment("pay_8827"))

		// When
		err := aggregate.ConfirmPayment("pay_9999")

		// Then
		require.ErrorIs(t, err, order.ErrOrderAlreadyPaid)

		var paidErr *order.AlreadyPaidError
		require.ErrorAs(t, err, &paidErr)
		assert.Equal(t, "pay_9999", paidErr.Reference)
		assert.Equal(t, "pay_8827", aggregate.PaymentReference())
	})

	t.Run("should reject empty reference", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)

		// When
		err := aggregate.ConfirmPayment("")

		// Then
		require.Error(t, err)
		assert.False(t, aggregate.IsPaid())
	})
}

func TestOrderAdvanceStatus(t *testing.T) {
	t.Run("should walk the lifecycle step by step", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)

		// When / Then
		for _, next := range []order.Status{
			order.Cooking, order.Ready, order.OutForDelivery, order.Delivered,
		} {
			require.NoError(t, aggregate.AdvanceStatus(next))
			assert.Equal(t, next, aggregate.Status())
		}
		assert.Equal(t, 5, aggregate.Version())
	})

	t.Run("should leave the order unchanged on invalid transition", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)

		// When
		err := aggregate.AdvanceStatus(order.Ready)

		// Then
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Placed, aggregate.Status())
		assert.Equal(t, 1, aggregate.Version())
	})

	t.Run("should record delivery when the last step is walked", func(t *testing.T) {
		// Given an order out for delivery with a courier
		aggregate := buildOrder(t)
		require.NoError(t, aggregate.AssignCourier(kernel.NewUUID()))
		require.NoError(t, aggregate.AdvanceStatus(order.Cooking))
		require.NoError(t, aggregate.AdvanceStatus(order.Ready))
		require.NoError(t, aggregate.AdvanceStatus(order.OutForDelivery))

		// When
		err := aggregate.AdvanceStatus(order.Delivered)

		// Then the lifecycle is closed, not just the status field
		require.NoError(t, err)
		assert.True(t, aggregate.IsDelivered())
		assert.NotNil(t, aggregate.DeliveredAt())
		assert.ErrorIs(t, aggregate.MarkDelivered(), order.ErrInvalidTransition)
	})
}

func TestOrderAssignCourier(t *testing.T) {
	t.Run("should assign courier and bump version", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)
		courierID := kernel.NewUUID()

		// When
		err := aggregate.AssignCourier(courierID)

		// Then
		require.NoError(t, err)
		require.NotNil(t, aggregate.Courier())
		assert.True(t, aggregate.Courier().IsEqual(courierID))
		assert.Equal(t, 2, aggregate.Version())
	})

	t.Run("should reject a second assignment", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, aggregate.AssignCourier(first))

		// When
		err := aggregate.AssignCourier(kernel.NewUUID())

		// Then
		require.ErrorIs(t, err, order.ErrCourierAlreadyAssigned)

		var assignedErr *order.AlreadyAssignedError
		require.ErrorAs(t, err, &assignedErr)
		assert.Equal(t, first.String(), assignedErr.CourierID)
		assert.True(t, aggregate.Courier().IsEqual(first))
	})

	t.Run("should reject assignment to a delivered order", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)
		require.NoError(t, aggregate.MarkDelivered())

		// When
		err := aggregate.AssignCourier(kernel.NewUUID())

		// Then
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject invalid courier ID", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)

		// When
		err := aggregate.AssignCourier(kernel.UUID{})

		// Then
		require.Error(t, err)
		assert.Nil(t, aggregate.Courier())
	})
}

func TestOrderMarkDelivered(t *testing.T) {
	t.Run("should close the lifecycle from OutForDelivery", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)
		require.NoError(t, aggregate.AdvanceStatus(order.Cooking))
		require.NoError(t, aggregate.AdvanceStatus(order.Ready))
		require.NoError(t, aggregate.AdvanceStatus(order.OutForDelivery))

		// When
		err := aggregate.MarkDelivered()

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, aggregate.Status())
		assert.True(t, aggregate.IsDelivered())
		assert.NotNil(t, aggregate.DeliveredAt())
	})

	t.Run("should jump straight to Delivered from Placed", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)

		// When
		err := aggregate.MarkDelivered()

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, aggregate.Status())
		assert.Equal(t, 2, aggregate.Version())
	})

	t.Run("should reject delivering twice", func(t *testing.T) {
		// Given
		aggregate := buildOrder(t)
		require.NoError(t, aggregate.MarkDelivered())
		deliveredAt := aggregate.DeliveredAt()

		// When
		err := aggregate.MarkDelivered()

		// Then
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, deliveredAt, aggregate.DeliveredAt())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reconstruct persisted lifecycle state", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		customerID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		paidAt := time.Now().UTC().Add(-time.Hour)
		createdAt := time.Now().UTC().Add(-2 * time.Hour)
		updatedAt := time.Now().UTC().Add(-time.Minute)

		// When
		aggregate, err := order.RestoreOrder(
			id, customerID, buildItems(t), buildAddress(t), order.PaymentOnline, buildPricing(t),
			order.OutForDelivery,
			true, &paidAt, "pay_8827",
			&courierID,
			false, nil,
			7, createdAt, updatedAt,
		)

		// Then
		require.NoError(t, err)
		assert.NoError(t, aggregate.Validate())
		assert.Equal(t, order.OutForDelivery, aggregate.Status())
		assert.True(t, aggregate.IsPaid())
		assert.Equal(t, "pay_8827", aggregate.PaymentReference())
		require.NotNil(t, aggregate.Courier())
		assert.True(t, aggregate.Courier().IsEqual(courierID))
		assert.Equal(t, 7, aggregate.Version())
		assert.Equal(t, createdAt, aggregate.CreatedAt())
		assert.Equal(t, updatedAt, aggregate.UpdatedAt())
	})

	t.Run("should allow nil courier for unassigned orders", func(t *testing.T) {
		// When
		aggregate, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), buildItems(t), buildAddress(t),
			order.PaymentCashOnDelivery, buildPricing(t),
			order.Placed,
			false, nil, "",
			nil,
			false, nil,
			1, time.Now().UTC(), time.Now().UTC(),
		)

		// Then
		require.NoError(t, err)
		assert.Nil(t, aggregate.Courier())
	})

	t.Run("should reject invalid version", func(t *testing.T) {
		// When
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), buildItems(t), buildAddress(t),
			order.PaymentOnline, buildPricing(t),
			order.Placed,
			false, nil, "",
			nil,
			false, nil,
			0, time.Now().UTC(), time.Now().UTC(),
		)

		// Then
		assert.Error(t, err)
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		// When
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), buildItems(t), buildAddress(t),
			order.PaymentOnline, buildPricing(t),
			order.Unknown,
			false, nil, "",
			nil,
			false, nil,
			1, time.Now().UTC(), time.Now().UTC(),
		)

		// Then
		assert.Error(t, err)
	})
}

func TestOrderValidate(t *testing.T) {
	t.Run("should fail for nil and zero value orders", func(t *testing.T) {
		var nilOrder *order.Order
		assert.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

		assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderIsEqual(t *testing.T) {
	t.Run("should compare orders by identifier", func(t *testing.T) {
		// Given
		first := buildOrder(t)
		second := buildOrder(t)

		// Then
		assert.True(t, first.IsEqual(first))
		assert.False(t, first.IsEqual(second))
		assert.False(t, first.IsEqual(nil))
	})
}
