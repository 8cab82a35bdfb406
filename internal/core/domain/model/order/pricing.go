package order

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

// ErrPricingIsNotConstructed is returned when attempting to use an improperly initialized Pricing.
var ErrPricingIsNotConstructed = errs.NewValueIsRequiredError(
	"pricing must be created via NewPricing constructor")

// Pricing is the immutable money breakdown of an order, fixed at checkout.
//
// Invariant: total == itemsTotal + tax + deliveryFee. The sum is checked once
// at construction with exact decimal arithmetic and never re-derived later;
// a persisted order's pricing is historical fact, not a live computation.
type Pricing struct { //nolint:recvcheck //using for validation
	itemsTotal  kernel.Money
	tax         kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money
	guard       guard.ConstructorGuard
}

// NewPricing creates a validated pricing breakdown.
// Each component must be a constructed, non-negative Money value, and the
// grand total must equal the sum of the parts exactly.
func NewPricing(itemsTotal, tax, deliveryFee, total kernel.Money) (Pricing, error) {
	if err := errors.Join(
		itemsTotal.Validate(),
		tax.Validate(),
		deliveryFee.Validate(),
		total.Validate(),
	); err != nil {
		return Pricing{}, err
	}

	if sum := itemsTotal.Add(tax).Add(deliveryFee); !total.IsEqual(sum) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("pricing total",
			fmt.Errorf("total %s does not equal items %s + tax %s + delivery fee %s",
				total, itemsTotal, tax, deliveryFee))
	}

	return Pricing{
		itemsTotal:  itemsTotal,
		tax:         tax,
		deliveryFee: deliveryFee,
		total:       total,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the pricing was created through NewPricing.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// ItemsTotal returns the sum of all line item totals.
func (p Pricing) ItemsTotal() kernel.Money {
	return p.itemsTotal
}

// Tax returns the tax component.
func (p Pricing) Tax() kernel.Money {
	return p.tax
}

// DeliveryFee returns the delivery fee component.
func (p Pricing) DeliveryFee() kernel.Money {
	return p.deliveryFee
}

// Total returns the grand total the customer is charged.
func (p Pricing) Total() kernel.Money {
	return p.total
}
