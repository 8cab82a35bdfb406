package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAggregate() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.ConfirmPayment("pay_8827"))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.True(loaded.CustomerID().IsEqual(testOrder.CustomerID()))
	suite.Equal(testOrder.Status(), loaded.Status())
	suite.Equal(testOrder.Version(), loaded.Version())
	suite.True(loaded.IsPaid())
	suite.Equal("pay_8827", loaded.PaymentReference())
	suite.Len(loaded.Items(), 2)
	suite.Equal("Margherita", loaded.Items()[0].Name())
	suite.True(loaded.Pricing().Total().IsEqual(testOrder.Pricing().Total()))
	suite.Equal(testOrder.Address().String(), loaded.Address().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleChanges() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AdvanceStatus(order.Cooking))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cooking, loaded.Status())
	suite.Equal(2, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two actors load the same version of the order.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// The first write wins.
	suite.Require().NoError(first.AdvanceStatus(order.Cooking))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The second write is stale and must not be persisted.
	suite.Require().NoError(second.ConfirmPayment("pay_8827"))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cooking, loaded.Status())
	suite.False(loaded.IsPaid())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstUnassigned_PicksOldestPaidReadyOrder() {
	ctx := context.Background()

	// A paid Ready order without a courier, the expected pick.
	expected := suite.createTestOrder()
	suite.Require().NoError(expected.ConfirmPayment("pay_1"))
	suite.Require().NoError(expected.AdvanceStatus(order.Cooking))
	suite.Require().NoError(expected.AdvanceStatus(order.Ready))
	suite.Require().NoError(suite.repository.Add(ctx, expected))

	// An unpaid Ready order must not be picked.
	unpaid := suite.createTestOrder()
	suite.Require().NoError(unpaid.AdvanceStatus(order.Cooking))
	suite.Require().NoError(unpaid.AdvanceStatus(order.Ready))
	suite.Require().NoError(suite.repository.Add(ctx, unpaid))

	// A paid Ready order with a courier must not be picked.
	assigned := suite.createTestOrder()
	suite.Require().NoError(assigned.ConfirmPayment("pay_2"))
	suite.Require().NoError(assigned.AdvanceStatus(order.Cooking))
	suite.Require().NoError(assigned.AdvanceStatus(order.Ready))
	suite.Require().NoError(assigned.AssignCourier(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	picked, err := suite.repository.GetFirstUnassigned(ctx)
	suite.Require().NoError(err)
	suite.True(picked.ID().IsEqual(expected.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstUnassigned_EmptyQueue_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.GetFirstUnassigned(ctx)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	return suite.createTestOrderForCustomer(kernel.NewUUID())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderForCustomer(
	customerID kernel.UUID,
) *order.Order {
	money := func(value string) kernel.Money {
		m, err := kernel.MoneyFromString(value)
		suite.Require().NoError(err)
		return m
	}

	pizza, err := order.NewLineItem(kernel.NewUUID(), "Margherita", 2, money("12.50"), "")
	suite.Require().NoError(err)
	cola, err := order.NewLineItem(kernel.NewUUID(), "Cola", 1, money("2.50"), "")
	suite.Require().NoError(err)

	address, err := order.NewAddress("12 Baker Street", "London", "NW1 6XE", "UK")
	suite.Require().NoError(err)

	pricing, err := order.NewPricing(money("27.50"), money("2.20"), money("4.99"), money("34.69"))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, []order.LineItem{pizza, cola}, address,
		order.PaymentOnline, pricing)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
