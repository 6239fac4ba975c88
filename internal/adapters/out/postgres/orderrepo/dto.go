// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database row of an order aggregate. Indexed for
// the listing query (branch + creation time) and the overdue sweep (status).
// The bill number carries a unique constraint so a duplicate allocation
// under concurrency is rejected by the database.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID      uuid.UUID  `gorm:"type:uuid;index:idx_orders_branch_created,priority:1"`
	Channel       int        `gorm:"index"`
	Status        int        `gorm:"index"`
	PaymentMethod int
	BillNumber    string     `gorm:"uniqueIndex"`
	TableID       *uuid.UUID `gorm:"type:uuid;index"`
	StaffID       *uuid.UUID `gorm:"type:uuid"`
	ScheduledFor  *time.Time
	Subtotal      float64
	Tax           float64
	GrandTotal    float64
	ItemCount     int
	CreatedAt     time.Time `gorm:"index:idx_orders_branch_created,priority:2"`
	DeliveredAt   *time.Time
	ReceivedAt    *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one line-item snapshot of an order. Lines are
// keyed by (order, position) and rewritten as a set whenever the aggregate
// is updated.
type OrderLineDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position     int       `gorm:"primaryKey"`
	ProductID    uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Unit         string
	UnitPrice    float64
	TaxRate      float64
	RequestedQty float64
	SendingQty   *float64
	ReceivedQty  *float64
	Confirmed    bool
	ConfirmedAt  *time.Time
}

// TableName overrides GORM's default naming to use "order_lines".
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, []OrderLineDTO) {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		BranchID:      aggregate.BranchID().Bytes(),
		Channel:       int(aggregate.Channel()),
		Status:        int(aggregate.Status()),
		PaymentMethod: int(aggregate.PaymentMethod()),
		BillNumber:    aggregate.BillNumber(),
		TableID:       optionalUUID(aggregate.TableID()),
		StaffID:       optionalUUID(aggregate.StaffID()),
		ScheduledFor:  aggregate.ScheduledFor(),
		Subtotal:      aggregate.Subtotal(),
		Tax:           aggregate.Tax(),
		GrandTotal:    aggregate.GrandTotal(),
		ItemCount:     aggregate.ItemCount(),
		CreatedAt:     aggregate.CreatedAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		ReceivedAt:    aggregate.ReceivedAt(),
	}

	lines := aggregate.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		lineDTOs = append(lineDTOs, OrderLineDTO{
			OrderID:      dto.ID,
			Position:     i,
			ProductID:    line.ProductID().Bytes(),
			Name:         line.Name(),
			Unit:         line.Unit(),
			UnitPrice:    line.UnitPrice(),
			TaxRate:      line.TaxRate().Float(),
			RequestedQty: line.RequestedQty(),
			SendingQty:   line.SendingQty(),
			ReceivedQty:  line.ReceivedQty(),
			Confirmed:    line.Confirmed(),
			ConfirmedAt:  line.ConfirmedAt(),
		})
	}

	return dto, lineDTOs
}

// toDomain converts database rows to an order aggregate. Lines must already
// be sorted by position; RestoreOrder recomputes the totals from them.
func toDomain(dto OrderDTO, lineDTOs []OrderLineDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	tableID, err := optionalKernelUUID(dto.TableID)
	if err != nil {
		return nil, err
	}
	staffID, err := optionalKernelUUID(dto.StaffID)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		productID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		taxRate, lineErr := order.TaxRateFromFloat(lineDTO.TaxRate)
		if lineErr != nil {
			return nil, lineErr
		}

		lines = append(lines, order.RestoreLineItem(
			productID,
			lineDTO.Name,
			lineDTO.Unit,
			lineDTO.UnitPrice,
			lineDTO.RequestedQty,
			taxRate,
			lineDTO.SendingQty,
			lineDTO.ReceivedQty,
			lineDTO.Confirmed,
			lineDTO.ConfirmedAt,
		))
	}

	return order.RestoreOrder(
		id,
		branchID,
		order.Channel(dto.Channel),
		lines,
		order.PaymentMethod(dto.PaymentMethod),
		dto.BillNumber,
		tableID,
		staffID,
		dto.ScheduledFor,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.DeliveredAt,
		dto.ReceivedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
