package order

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// PaymentMethod enumerates how a customer settles an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentOnline means the order is paid through the payment gateway;
	// the paid flag is set later by the gateway's confirmation callback.
	PaymentOnline

	// PaymentCashOnDelivery means the courier collects payment at the door.
	PaymentCashOnDelivery
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown:  "Unknown",
		PaymentOnline:         "Online",
		PaymentCashOnDelivery: "CashOnDelivery",
	}
}

// PaymentMethodFromString parses a payment method name as it appears in
// API requests. Returns an error for unrecognized names.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if method != PaymentMethodUnknown && name == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m != PaymentOnline && m != PaymentCashOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the name of the payment method.
// Returns "Unknown" for invalid values. Safe to call on any value.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
