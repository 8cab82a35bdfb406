package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// Shared testify mocks for the handler tests in this package.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetFirstUnassigned(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourierRepository) GetAllFree(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUoW implements every UoW flavor used by the handlers.

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// MockStatusPublisher records published snapshots.

type MockStatusPublisher struct{ mock.Mock }

func (m *MockStatusPublisher) Publish(ctx context.Context, snapshot ports.OrderSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// Aggregate fixtures.

func newTestItems(t *testing.T) []order.LineItem {
	t.Helper()

	price, err := kernel.MoneyFromString("12.50")
	require.NoError(t, err)

	item, err := order.NewLineItem(kernel.NewUUID(), "Margherita", 2, price, "")
	require.NoError(t, err)

	return []order.LineItem{item}
}

func newTestAddress(t *testing.T) order.Address {
	t.Helper()

	address, err := order.NewAddress("12 Baker Street", "London", "NW1 6XE", "UK")
	require.NoError(t, err)
	return address
}

func newTestPricing(t *testing.T) order.Pricing {
	t.Helper()

	money := func(value string) kernel.Money {
		m, err := kernel.MoneyFromString(value)
		require.NoError(t, err)
		return m
	}

	pricing, err := order.NewPricing(money("25.00"), money("2.00"), money("4.99"), money("31.99"))
	require.NoError(t, err)
	return pricing
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), newTestItems(t), newTestAddress(t),
		order.PaymentOnline, newTestPricing(t))
	require.NoError(t, err)
	return aggregate
}

func newTestCourier(t *testing.T) *courier.Courier {
	t.Helper()

	aggregate, err := courier.NewCourier(kernel.NewUUID(), "Marco", "+44 20 7946 0123")
	require.NoError(t, err)
	return aggregate
}
