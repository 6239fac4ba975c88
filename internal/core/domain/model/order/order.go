package order

import (
	"errors"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// LinePatch is an incremental update to one line of an order, keyed by the
// product reference. Nil fields are left untouched.
type LinePatch struct {
	ProductID   kernel.UUID
	SendingQty  *float64
	ReceivedQty *float64
	Confirmed   *bool
}

// StockDemand is a quantity of one product that a status transition needs to
// move through the inventory ledger.
type StockDemand struct {
	ProductID kernel.UUID
	Quantity  float64
}

// Order is the persisted bill: an aggregate of priced line-item snapshots,
// server-computed totals, a lifecycle status and a branch/date-scoped bill
// number. Totals are recomputed inside the aggregate whenever line items
// change; values supplied by callers are never trusted.
//
// Invariants:
//   - subtotal = sum of line totals, tax = sum of line taxes,
//     grandTotal = subtotal + tax
//   - itemCount counts only lines with a positive billed quantity
//   - status transitions follow the Status state machine
type Order struct {
	id            kernel.UUID
	branchID      kernel.UUID
	channel       Channel
	lines         []LineItem
	paymentMethod PaymentMethod
	billNumber    string
	tableID       *kernel.UUID
	staffID       *kernel.UUID
	scheduledFor  *time.Time

	status     Status
	subtotal   float64
	tax        float64
	grandTotal float64
	itemCount  int

	createdAt   time.Time
	deliveredAt *time.Time
	receivedAt  *time.Time

	isConstructed bool
}

// NewOrder creates an order in the channel's initial status and computes its
// totals from the supplied line items. The bill number must already be
// allocated from the bill counter.
func NewOrder(
	id kernel.UUID,
	branchID kernel.UUID,
	channel Channel,
	lines []LineItem,
	paymentMethod PaymentMethod,
	billNumber string,
	tableID *kernel.UUID,
	staffID *kernel.UUID,
	scheduledFor *time.Time,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		branchID.Validate(),
		channel.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("line items")
	}
	if billNumber == "" {
		return nil, errs.NewValueIsRequiredError("bill number")
	}

	o := &Order{
		id:            id,
		branchID:      branchID,
		channel:       channel,
		lines:         lines,
		paymentMethod: paymentMethod,
		billNumber:    billNumber,
		tableID:       tableID,
		staffID:       staffID,
		scheduledFor:  scheduledFor,
		status:        channel.InitialStatus(),
		createdAt:     now,
		isConstructed: true,
	}
	o.recompute()
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Totals are recomputed
// from the restored lines rather than trusted from storage.
func RestoreOrder(
	id kernel.UUID,
	branchID kernel.UUID,
	channel Channel,
	lines []LineItem,
	paymentMethod PaymentMethod,
	billNumber string,
	tableID *kernel.UUID,
	staffID *kernel.UUID,
	scheduledFor *time.Time,
	status Status,
	createdAt time.Time,
	deliveredAt *time.Time,
	receivedAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		id:            id,
		branchID:      branchID,
		channel:       channel,
		lines:         lines,
		paymentMethod: paymentMethod,
		billNumber:    billNumber,
		tableID:       tableID,
		staffID:       staffID,
		scheduledFor:  scheduledFor,
		status:        status,
		createdAt:     createdAt,
		deliveredAt:   deliveredAt,
		receivedAt:    receivedAt,
		isConstructed: true,
	}
	o.recompute()
	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BranchID returns the branch the order belongs to.
func (o *Order) BranchID() kernel.UUID {
	return o.branchID
}

// Channel returns the workflow the order originated from.
func (o *Order) Channel() Channel {
	return o.channel
}

// Lines returns the order's line items.
func (o *Order) Lines() []LineItem {
	return o.lines
}

// PaymentMethod returns how the bill is settled.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// BillNumber returns the human-readable bill number.
func (o *Order) BillNumber() string {
	return o.billNumber
}

// TableID returns the dining table the order occupies, if any.
func (o *Order) TableID() *kernel.UUID {
	return o.tableID
}

// StaffID returns the staff member who took the order, if recorded.
func (o *Order) StaffID() *kernel.UUID {
	return o.staffID
}

// ScheduledFor returns the scheduled delivery time of a pre-order, if any.
func (o *Order) ScheduledFor() *time.Time {
	return o.scheduledFor
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() float64 {
	return o.subtotal
}

// Tax returns the sum of line taxes.
func (o *Order) Tax() float64 {
	return o.tax
}

// GrandTotal returns subtotal plus tax.
func (o *Order) GrandTotal() float64 {
	return o.grandTotal
}

// ItemCount returns the number of lines with a positive billed quantity.
func (o *Order) ItemCount() int {
	return o.itemCount
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the delivery timestamp, if delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// ReceivedAt returns the receipt timestamp, if received.
func (o *Order) ReceivedAt() *time.Time {
	return o.receivedAt
}

// AllLinesConfirmed reports whether every line item is confirmed.
func (o *Order) AllLinesConfirmed() bool {
	for i := range o.lines {
		if !o.lines[i].confirmed {
			return false
		}
	}
	return true
}

// ApplyLinePatches applies incremental per-line updates and recomputes the
// totals. A patch that confirms a previously unconfirmed line stamps the
// confirmation time and defaults an unset sending quantity to the requested
// quantity.
func (o *Order) ApplyLinePatches(patches []LinePatch, now time.Time) error {
	for _, patch := range patches {
		line := o.findLine(patch.ProductID)
		if line == nil {
			return errs.NewObjectNotFoundError("line item", patch.ProductID.String())
		}

		if patch.SendingQty != nil {
			if err := line.SetSendingQty(*patch.SendingQty); err != nil {
				return err
			}
		}
		if patch.ReceivedQty != nil {
			if err := line.SetReceivedQty(*patch.ReceivedQty); err != nil {
				return err
			}
		}
		if patch.Confirmed != nil {
			if *patch.Confirmed {
				line.Confirm(now)
			} else {
				line.Unconfirm()
			}
		}
	}

	o.recompute()
	return nil
}

// ConfirmAllLines confirms every line item, stamping confirmation times.
func (o *Order) ConfirmAllLines(now time.Time) {
	for i := range o.lines {
		o.lines[i].Confirm(now)
	}
	o.recompute()
}

// Pend moves a draft or new order to Pending.
func (o *Order) Pend() error {
	newStatus, err := o.status.Pend()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Complete marks the order Completed. When requireConfirmed is set, every
// line item must already be confirmed.
func (o *Order) Complete(requireConfirmed bool) error {
	if requireConfirmed && !o.AllLinesConfirmed() {
		return errs.NewValueIsInvalidError("not all line items are confirmed")
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Reopen moves a completed order back to Pending (the unconfirm toggle).
func (o *Order) Reopen() error {
	newStatus, err := o.status.Reopen()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Deliver marks the order Delivered and stamps the delivery time. It returns
// the factory-to-branch stock demands: one entry per line with a positive
// sending quantity. The caller must execute the transfers in the same unit
// of work; an insufficient factory balance aborts the whole transition.
func (o *Order) Deliver(now time.Time) ([]StockDemand, error) {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return nil, err
	}

	demands := make([]StockDemand, 0, len(o.lines))
	for i := range o.lines {
		if qty := o.lines[i].sendingQty; qty != nil && *qty > 0 {
			demands = append(demands, StockDemand{
				ProductID: o.lines[i].productID,
				Quantity:  *qty,
			})
		}
	}

	o.status = newStatus
	o.deliveredAt = &now
	return demands, nil
}

// Receive marks the order Received and stamps the receipt time. Lines with
// no recorded received quantity default to the sending quantity. It returns
// the shortfalls (sending minus received where received fell short) which
// the caller must adjust back out of the branch's inventory.
func (o *Order) Receive(now time.Time) ([]StockDemand, error) {
	newStatus, err := o.status.Receive()
	if err != nil {
		return nil, err
	}

	shortfalls := make([]StockDemand, 0)
	for i := range o.lines {
		line := &o.lines[i]
		if line.sendingQty == nil {
			continue
		}
		if line.receivedQty == nil {
			qty := *line.sendingQty
			line.receivedQty = &qty
		}
		if shortfall := *line.sendingQty - *line.receivedQty; shortfall > 0 {
			shortfalls = append(shortfalls, StockDemand{
				ProductID: line.productID,
				Quantity:  shortfall,
			})
		}
	}

	o.status = newStatus
	o.receivedAt = &now
	return shortfalls, nil
}

// StockDeductions returns the branch stock deductions for an order created
// directly in a stock-affecting status: one entry per line with a positive
// billed quantity.
func (o *Order) StockDeductions() []StockDemand {
	deductions := make([]StockDemand, 0, len(o.lines))
	for i := range o.lines {
		if qty := o.lines[i].BilledQty(); qty > 0 {
			deductions = append(deductions, StockDemand{
				ProductID: o.lines[i].productID,
				Quantity:  qty,
			})
		}
	}
	return deductions
}

func (o *Order) findLine(productID kernel.UUID) *LineItem {
	for i := range o.lines {
		if o.lines[i].productID.IsEqual(productID) {
			return &o.lines[i]
		}
	}
	return nil
}

// recompute re-derives the aggregate totals from the line items. Called on
// every mutation; caller-supplied totals are never stored.
func (o *Order) recompute() {
	o.subtotal = 0
	o.tax = 0
	o.itemCount = 0
	for i := range o.lines {
		line := &o.lines[i]
		o.subtotal += line.Total()
		o.tax += line.Tax()
		if line.BilledQty() > 0 {
			o.itemCount++
		}
	}
	o.grandTotal = o.subtotal + o.tax
}
