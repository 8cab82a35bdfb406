package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

// ErrGetOrdersQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery or NewGetOrdersByCustomerQuery constructor",
)

// GetOrdersQuery retrieves order summaries, newest first.
// The customer-scoped variant limits the listing to one customer's orders;
// the unscoped variant returns everything for back-office views.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an unscoped query over all orders.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrdersByCustomerQuery creates a query scoped to one customer.
func NewGetOrdersByCustomerQuery(customerID kernel.UUID) (GetOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		customerID: &customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer filter, or nil for the unscoped variant.
func (q GetOrdersQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// GetOrdersQueryResponse is one order summary row.
type GetOrdersQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     string
	Paid       bool
	Delivered  bool
	Total      decimal.Decimal
	CreatedAt  time.Time
}
