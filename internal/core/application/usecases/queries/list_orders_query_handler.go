package queries

import (
	"context"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the order listing straight from the
// database. Results are newest-first and capped at ListOrdersMaxResults.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	channels := make([]int, 0, len(query.Channels()))
	for _, channel := range query.Channels() {
		channels = append(channels, int(channel))
	}

	session := h.db.WithContext(ctx).
		Table("orders").
		Where("channel IN ?", channels)

	if query.BranchID() != nil {
		session = session.Where("branch_id = ?", query.BranchID().Bytes())
	}
	if query.Status() != nil {
		session = session.Where("status = ?", int(*query.Status()))
	}
	if query.From() != nil {
		session = session.Where("created_at >= ?", *query.From())
	}
	if query.To() != nil {
		session = session.Where("created_at <= ?", *query.To())
	}

	rows, err := session.
		Select("id, branch_id, channel, status, payment_method, bill_number, " +
			"subtotal, tax, grand_total, item_count, created_at, delivered_at, received_at").
		Order("created_at DESC").
		Limit(ListOrdersMaxResults).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			resp                     ListOrdersQueryResponse
			id, branchID             uuid.UUID
			channel, status, payment int
		)

		if err = rows.Scan(
			&id, &branchID, &channel, &status, &payment, &resp.BillNumber,
			&resp.Subtotal, &resp.Tax, &resp.GrandTotal, &resp.ItemCount,
			&resp.CreatedAt, &resp.DeliveredAt, &resp.ReceivedAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		branchUUID, idErr := kernel.UUIDFromBytes(branchID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = orderID
		resp.BranchID = branchUUID
		resp.Channel = order.Channel(channel).String()
		resp.Status = order.Status(status).String()
		resp.PaymentMethod = order.PaymentMethod(payment).String()

		orders = append(orders, resp)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := h.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID.String()]
	}

	return orders, nil
}

// loadLines fetches the line items of the listed orders in one query,
// grouped by order id. Line totals are recomputed from the snapshot
// values, mirroring the aggregate's pricing rules.
func (h ListOrdersQueryHandler) loadLines(
	ctx context.Context,
	orderIDs []uuid.UUID,
) (map[string][]ListOrdersLineResponse, error) {
	rows, err := h.db.WithContext(ctx).
		Table("order_lines").
		Select("order_id, product_id, name, unit, unit_price, tax_rate, "+
			"requested_qty, sending_qty, received_qty, confirmed").
		Where("order_id IN ?", orderIDs).
		Order("order_id, position").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[string][]ListOrdersLineResponse)
	for rows.Next() {
		var (
			line               ListOrdersLineResponse
			orderID, productID uuid.UUID
		)

		if err = rows.Scan(
			&orderID, &productID, &line.Name, &line.Unit, &line.UnitPrice,
			&line.TaxRate, &line.RequestedQty, &line.SendingQty,
			&line.ReceivedQty, &line.Confirmed,
		); err != nil {
			return nil, err
		}

		productUUID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		line.ProductID = productUUID

		rate, rateErr := order.TaxRateFromFloat(line.TaxRate)
		if rateErr != nil {
			return nil, rateErr
		}
		billed := line.RequestedQty
		if line.SendingQty != nil && *line.SendingQty > billed {
			billed = *line.SendingQty
		}
		line.LineTotal = billed * line.UnitPrice
		line.LineTax = rate.TaxOn(line.LineTotal)

		key := orderID.String()
		lines[key] = append(lines[key], line)
	}

	return lines, rows.Err()
}
