package commands

import (
	"errors"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"
	"bakehouse/internal/pkg/errs"
	"bakehouse/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLineItemsAreRequired = errors.New("at least one line item is required")
)

// CreateOrderLine carries one requested line of a new order. The tax rate
// uses the wire form: a non-negative percent or the exempt sentinel.
type CreateOrderLine struct {
	ProductID    kernel.UUID
	Name         string
	Unit         string
	UnitPrice    float64
	RequestedQty float64
	TaxRate      float64
}

// CreateOrderCommand represents a request to create a new bill. All line
// items are validated and turned into priced snapshots at construction, so
// any malformed input is rejected before the handler writes anything.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	branchID      kernel.UUID
	channel       order.Channel
	lines         []order.LineItem
	paymentMethod order.PaymentMethod
	tableID       *kernel.UUID
	staffID       *kernel.UUID
	scheduledFor  *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Each line's tax rate must be a non-negative percent or the exempt
// sentinel; each requested quantity must be positive.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	branchID kernel.UUID,
	channel order.Channel,
	lines []CreateOrderLine,
	paymentMethod order.PaymentMethod,
	tableID *kernel.UUID,
	staffID *kernel.UUID,
	scheduledFor *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		tableID:      tableID,
		staffID:      staffID,
		scheduledFor: scheduledFor,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBranchID(branchID),
		cmd.setChannel(channel),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if channel.UsesTable() && tableID != nil {
		if err := tableID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier pre-allocated for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BranchID returns the branch the order is created for.
func (c CreateOrderCommand) BranchID() kernel.UUID {
	return c.branchID
}

// Channel returns the originating workflow.
func (c CreateOrderCommand) Channel() order.Channel {
	return c.channel
}

// Lines returns the validated priced line-item snapshots.
func (c CreateOrderCommand) Lines() []order.LineItem {
	return c.lines
}

// PaymentMethod returns how the bill is settled.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// TableID returns the dining table to occupy, if any.
func (c CreateOrderCommand) TableID() *kernel.UUID {
	return c.tableID
}

// StaffID returns the staff member taking the order, if recorded.
func (c CreateOrderCommand) StaffID() *kernel.UUID {
	return c.staffID
}

// ScheduledFor returns the scheduled delivery time of a pre-order, if any.
func (c CreateOrderCommand) ScheduledFor() *time.Time {
	return c.scheduledFor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchId", err)
	}
	c.branchID = branchID
	return nil
}

func (c *CreateOrderCommand) setChannel(channel order.Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	c.channel = channel
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setLines(lines []CreateOrderLine) error {
	if len(lines) == 0 {
		return ErrLineItemsAreRequired
	}

	items := make([]order.LineItem, 0, len(lines))
	for _, line := range lines {
		rate, err := order.TaxRateFromFloat(line.TaxRate)
		if err != nil {
			return err
		}
		item, err := order.NewLineItem(
			line.ProductID, line.Name, line.Unit, line.UnitPrice, line.RequestedQty, rate)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	c.lines = items
	return nil
}
