package order

import (
	"fmt"

	"bakehouse/internal/pkg/errs"
)

// PaymentMethod identifies how a bill is settled.
type PaymentMethod int

const (
	// UnknownPaymentMethod represents an invalid or undefined payment method.
	UnknownPaymentMethod PaymentMethod = iota

	// Cash settlement at the counter.
	Cash

	// Card settlement through the branch terminal.
	Card

	// Online settlement through a payment gateway.
	Online
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownPaymentMethod: "unknown",
		Cash:                 "cash",
		Card:                 "card",
		Online:               "online",
	}
}

// PaymentMethodFromString parses the wire representation of a payment method.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != UnknownPaymentMethod {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks that the PaymentMethod value is one of the defined methods.
func (m PaymentMethod) Validate() error {
	if m == UnknownPaymentMethod {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire representation of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}
