// Package queries contains read-side operations of the CQRS architecture.
// Query handlers bypass the aggregates and read flattened rows straight from
// the database, returning display-oriented read models.
package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

// ErrGetOrderByIDQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves the full read model of a single order,
// including its line items.
type GetOrderByIDQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for one order.
func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	query := GetOrderByIDQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}
	query.orderID = orderID

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one line item of the order read model.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	ImageURL  string
}

// GetOrderByIDQueryResponse is the full order read model.
type GetOrderByIDQueryResponse struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	Status           string
	PaymentMethod    string
	Paid             bool
	PaidAt           *time.Time
	PaymentReference string

	Street     string
	City       string
	PostalCode string
	Country    string

	ItemsTotal  decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal

	CourierID   *kernel.UUID
	Delivered   bool
	DeliveredAt *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItemResponse
}
