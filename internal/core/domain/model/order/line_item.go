package order

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when attempting to use an improperly initialized LineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// LineItem is one position of an order: a product snapshot taken at checkout.
// Name, unit price, and image are copied from the catalog when the order is
// created and never re-read afterward, so historical orders stay intact no
// matter how the catalog changes later.
type LineItem struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	quantity  int
	unitPrice kernel.Money
	imageURL  string
	guard     guard.ConstructorGuard
}

// NewLineItem creates a validated line item snapshot.
//
// Rules:
//   - productID must be a valid UUID
//   - name must be non-empty
//   - quantity must be at least 1
//   - unitPrice must be constructed and strictly positive
//   - imageURL is optional
func NewLineItem(
	productID kernel.UUID, name string, quantity int, unitPrice kernel.Money, imageURL string,
) (LineItem, error) {
	item := LineItem{
		imageURL: imageURL,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the catalog reference of the snapshotted product.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name as it read at checkout time.
func (i LineItem) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price at checkout time.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// ImageURL returns the product image captured at checkout, possibly empty.
func (i LineItem) ImageURL() string {
	return i.imageURL
}

// Total returns quantity times unit price for this position.
func (i LineItem) Total() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

func (i *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line item name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	if !unitPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%s is not greater than 0", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
