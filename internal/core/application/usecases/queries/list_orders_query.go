// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return plain response
// structures; they never mutate state.
package queries

import (
	"errors"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"
	"bakehouse/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersMaxResults caps a single listing.
const ListOrdersMaxResults = 500

// ListOrdersQuery filters the order listing. An empty channel list applies
// the default operational filter (stock, liveOrder, billing), keeping
// table-order noise out unless asked for explicitly.
type ListOrdersQuery struct {
	branchID *kernel.UUID
	channels []order.Channel
	status   *order.Status
	from     *time.Time
	to       *time.Time

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates an order listing query.
func NewListOrdersQuery(
	branchID *kernel.UUID,
	channels []order.Channel,
	status *order.Status,
	from *time.Time,
	to *time.Time,
) (ListOrdersQuery, error) {
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	for _, channel := range channels {
		if err := channel.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		branchID: branchID,
		channels: channels,
		status:   status,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// BranchID returns the branch filter, if any.
func (q ListOrdersQuery) BranchID() *kernel.UUID {
	return q.branchID
}

// Channels returns the channel filter; empty means the operational default.
func (q ListOrdersQuery) Channels() []order.Channel {
	if len(q.channels) == 0 {
		return order.OperationalChannels()
	}
	return q.channels
}

// Status returns the status filter, if any.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// From returns the lower creation-date bound, if any.
func (q ListOrdersQuery) From() *time.Time {
	return q.from
}

// To returns the upper creation-date bound, if any.
func (q ListOrdersQuery) To() *time.Time {
	return q.to
}

// ListOrdersLineResponse is one line of a listed order.
type ListOrdersLineResponse struct {
	ProductID    kernel.UUID
	Name         string
	Unit         string
	UnitPrice    float64
	TaxRate      float64
	RequestedQty float64
	SendingQty   *float64
	ReceivedQty  *float64
	Confirmed    bool
	LineTotal    float64
	LineTax      float64
}

// ListOrdersQueryResponse is one order in the listing.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	BranchID      kernel.UUID
	BillNumber    string
	Channel       string
	Status        string
	PaymentMethod string
	Subtotal      float64
	Tax           float64
	GrandTotal    float64
	ItemCount     int
	CreatedAt     time.Time
	DeliveredAt   *time.Time
	ReceivedAt    *time.Time
	Lines         []ListOrdersLineResponse
}
