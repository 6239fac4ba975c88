package order

import (
	"fmt"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"
)

// TaxExemptSentinel is the wire value of a tax rate on an item that carries
// no tax. It is distinct from a 0% rate only in intent; both produce zero tax.
const TaxExemptSentinel = float64(-1)

// TaxRate is the tax percentage captured on a line item at order time.
// A rate is either a non-negative percent or the exempt sentinel.
type TaxRate struct {
	percent float64
	exempt  bool
}

// NewTaxRate creates a tax rate from a non-negative percent value.
func NewTaxRate(percent float64) (TaxRate, error) {
	if percent < 0 {
		return TaxRate{}, errs.NewValueIsInvalidErrorWithCause(
			"taxRate", fmt.Errorf("%v is not a non-negative percent", percent))
	}
	return TaxRate{percent: percent}, nil
}

// ExemptTaxRate creates the no-tax rate.
func ExemptTaxRate() TaxRate {
	return TaxRate{exempt: true}
}

// TaxRateFromFloat parses the persisted form of a tax rate: the exempt
// sentinel or a non-negative percent.
func TaxRateFromFloat(v float64) (TaxRate, error) {
	if v == TaxExemptSentinel {
		return ExemptTaxRate(), nil
	}
	return NewTaxRate(v)
}

// IsExempt reports whether the item carries no tax.
func (t TaxRate) IsExempt() bool {
	return t.exempt
}

// Percent returns the tax percent. Zero for exempt rates.
func (t TaxRate) Percent() float64 {
	if t.exempt {
		return 0
	}
	return t.percent
}

// Float returns the persisted form of the rate: the exempt sentinel or the
// percent value.
func (t TaxRate) Float() float64 {
	if t.exempt {
		return TaxExemptSentinel
	}
	return t.percent
}

// TaxOn computes the tax amount for a line total. Always exactly zero for
// exempt rates.
func (t TaxRate) TaxOn(amount float64) float64 {
	if t.exempt {
		return 0
	}
	return amount * t.percent / 100
}

// LineItem is one line of a bill. The product name, unit label, unit price
// and tax rate are an immutable snapshot of the catalog entry at order time,
// so historical bills stay stable when the catalog changes later. The
// fulfilment fields (sending, received, confirmation) mutate as the order
// moves through its lifecycle.
type LineItem struct {
	productID kernel.UUID
	name      string
	unit      string
	unitPrice float64
	taxRate   TaxRate

	requestedQty float64
	sendingQty   *float64
	receivedQty  *float64
	confirmed    bool
	confirmedAt  *time.Time
}

// NewLineItem creates a priced line-item snapshot.
// The requested quantity must be positive and the unit price non-negative.
func NewLineItem(
	productID kernel.UUID,
	name string,
	unit string,
	unitPrice float64,
	requestedQty float64,
	taxRate TaxRate,
) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item name")
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%v is negative", unitPrice))
	}
	if requestedQty <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"requestedQty", fmt.Errorf("%v is not greater than 0", requestedQty))
	}

	return LineItem{
		productID:    productID,
		name:         name,
		unit:         unit,
		unitPrice:    unitPrice,
		taxRate:      taxRate,
		requestedQty: requestedQty,
	}, nil
}

// RestoreLineItem reconstructs a line item from persistence without
// re-running creation validation.
func RestoreLineItem(
	productID kernel.UUID,
	name string,
	unit string,
	unitPrice float64,
	requestedQty float64,
	taxRate TaxRate,
	sendingQty *float64,
	receivedQty *float64,
	confirmed bool,
	confirmedAt *time.Time,
) LineItem {
	return LineItem{
		productID:    productID,
		name:         name,
		unit:         unit,
		unitPrice:    unitPrice,
		taxRate:      taxRate,
		requestedQty: requestedQty,
		sendingQty:   sendingQty,
		receivedQty:  receivedQty,
		confirmed:    confirmed,
		confirmedAt:  confirmedAt,
	}
}

// ProductID returns the catalog reference of the snapshot.
func (li *LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Name returns the product display name captured at order time.
func (li *LineItem) Name() string {
	return li.name
}

// Unit returns the unit label captured at order time.
func (li *LineItem) Unit() string {
	return li.unit
}

// UnitPrice returns the unit price captured at order time.
func (li *LineItem) UnitPrice() float64 {
	return li.unitPrice
}

// TaxRate returns the tax rate captured at order time.
func (li *LineItem) TaxRate() TaxRate {
	return li.taxRate
}

// RequestedQty returns the quantity the branch asked for.
func (li *LineItem) RequestedQty() float64 {
	return li.requestedQty
}

// SendingQty returns the quantity allocated by the factory, or nil if the
// factory has not allocated yet.
func (li *LineItem) SendingQty() *float64 {
	return li.sendingQty
}

// ReceivedQty returns the quantity the branch confirmed, or nil if not yet
// confirmed. A nil value defaults to the sending quantity on receipt.
func (li *LineItem) ReceivedQty() *float64 {
	return li.receivedQty
}

// Confirmed reports whether the factory confirmed the line.
func (li *LineItem) Confirmed() bool {
	return li.confirmed
}

// ConfirmedAt returns the timestamp of the last confirmation, if any.
func (li *LineItem) ConfirmedAt() *time.Time {
	return li.confirmedAt
}

// BilledQty is the quantity actually priced: the larger of the requested
// and sending quantities, so over-shipments are billed in full.
func (li *LineItem) BilledQty() float64 {
	sending := 0.0
	if li.sendingQty != nil {
		sending = *li.sendingQty
	}
	if sending > li.requestedQty {
		return sending
	}
	return li.requestedQty
}

// Total is the line total: billed quantity times the snapshot unit price.
func (li *LineItem) Total() float64 {
	return li.BilledQty() * li.unitPrice
}

// Tax is the tax amount on the line total.
func (li *LineItem) Tax() float64 {
	return li.taxRate.TaxOn(li.Total())
}

// SetSendingQty records the quantity allocated by the factory.
func (li *LineItem) SetSendingQty(qty float64) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sendingQty", fmt.Errorf("%v is negative", qty))
	}
	li.sendingQty = &qty
	return nil
}

// SetReceivedQty records the quantity the branch confirmed on receipt.
func (li *LineItem) SetReceivedQty(qty float64) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"receivedQty", fmt.Errorf("%v is negative", qty))
	}
	li.receivedQty = &qty
	return nil
}

// Confirm marks the line confirmed and stamps the confirmation time.
// Only on the transition from unconfirmed to confirmed, an unset sending
// quantity defaults to the requested quantity. Later recomputes never
// overwrite an allocation again.
func (li *LineItem) Confirm(now time.Time) {
	if li.confirmed {
		return
	}
	li.confirmed = true
	li.confirmedAt = &now
	if li.sendingQty == nil {
		qty := li.requestedQty
		li.sendingQty = &qty
	}
}

// Unconfirm clears the confirmation flag. The sending quantity and the
// confirmation timestamp are kept for audit.
func (li *LineItem) Unconfirm() {
	li.confirmed = false
}
