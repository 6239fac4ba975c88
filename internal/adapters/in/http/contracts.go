package http

import (
	"time"

	"bakehouse/internal/core/application/usecases/queries"
	"bakehouse/internal/core/domain/model/order"
)

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderLineRequest is one requested line of a new order.
type CreateOrderLineRequest struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	RequestedQty float64 `json:"requestedQty"`
	// TaxRate is a non-negative percent, or -1 for tax-exempt items.
	TaxRate float64 `json:"taxRate"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	BranchID      string                   `json:"branchId"`
	Channel       string                   `json:"channel"`
	PaymentMethod string                   `json:"paymentMethod"`
	TableID       *string                  `json:"tableId,omitempty"`
	StaffID       *string                  `json:"staffId,omitempty"`
	ScheduledFor  *time.Time               `json:"scheduledFor,omitempty"`
	Lines         []CreateOrderLineRequest `json:"lines"`
}

// LinePatchRequest is one incremental line update of a transition request.
type LinePatchRequest struct {
	ProductID   string   `json:"productId"`
	SendingQty  *float64 `json:"sendingQty,omitempty"`
	ReceivedQty *float64 `json:"receivedQty,omitempty"`
	Confirmed   *bool    `json:"confirmed,omitempty"`
}

// TransitionOrderRequest is the body of PATCH /api/v1/orders/:id. All fields
// are optional but at least one must be present.
type TransitionOrderRequest struct {
	Lines      []LinePatchRequest `json:"lines,omitempty"`
	Status     *string            `json:"status,omitempty"`
	ConfirmAll *bool              `json:"confirmAll,omitempty"`
}

// AdjustStockRequest is the body of POST /api/v1/stock/adjust. A nil
// location targets the factory pool.
type AdjustStockRequest struct {
	ProductID  string  `json:"productId"`
	LocationID *string `json:"locationId,omitempty"`
	Delta      float64 `json:"delta"`
	Reason     string  `json:"reason"`
}

// TransferStockRequest is the body of POST /api/v1/stock/transfer.
type TransferStockRequest struct {
	ProductID      string  `json:"productId"`
	FromLocationID *string `json:"fromLocationId,omitempty"`
	ToLocationID   *string `json:"toLocationId,omitempty"`
	Quantity       float64 `json:"quantity"`
	ReasonOut      string  `json:"reasonOut"`
	ReasonIn       string  `json:"reasonIn"`
}

// SetThresholdRequest is the body of PUT /api/v1/stock/:id/threshold.
type SetThresholdRequest struct {
	Threshold float64 `json:"threshold"`
}

// OrderLineResponse is one line of an order in responses.
type OrderLineResponse struct {
	ProductID    string   `json:"productId"`
	Name         string   `json:"name"`
	Unit         string   `json:"unit"`
	UnitPrice    float64  `json:"unitPrice"`
	TaxRate      float64  `json:"taxRate"`
	RequestedQty float64  `json:"requestedQty"`
	SendingQty   *float64 `json:"sendingQty,omitempty"`
	ReceivedQty  *float64 `json:"receivedQty,omitempty"`
	Confirmed    bool     `json:"confirmed"`
	LineTotal    float64  `json:"lineTotal"`
	LineTax      float64  `json:"lineTax"`
}

// OrderResponse is one order in responses.
type OrderResponse struct {
	ID            string              `json:"id"`
	BranchID      string              `json:"branchId"`
	BillNumber    string              `json:"billNumber"`
	Channel       string              `json:"channel"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"paymentMethod"`
	Subtotal      float64             `json:"subtotal"`
	Tax           float64             `json:"tax"`
	GrandTotal    float64             `json:"grandTotal"`
	ItemCount     int                 `json:"itemCount"`
	CreatedAt     time.Time           `json:"createdAt"`
	DeliveredAt   *time.Time          `json:"deliveredAt,omitempty"`
	ReceivedAt    *time.Time          `json:"receivedAt,omitempty"`
	Lines         []OrderLineResponse `json:"lines"`
}

// StockMovementResponse is one ledger history entry in responses.
type StockMovementResponse struct {
	ID         string    `json:"id"`
	Delta      float64   `json:"delta"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StockRecordResponse is one ledger record in responses. A nil location is
// the factory pool.
type StockRecordResponse struct {
	ID         string                  `json:"id"`
	ProductID  string                  `json:"productId"`
	LocationID *string                 `json:"locationId,omitempty"`
	Quantity   float64                 `json:"quantity"`
	Threshold  float64                 `json:"threshold"`
	Low        bool                    `json:"low"`
	Movements  []StockMovementResponse `json:"movements,omitempty"`
}

// TableResponse is one dining table on the board.
type TableResponse struct {
	ID               string  `json:"id"`
	BranchID         string  `json:"branchId"`
	CategoryID       string  `json:"categoryId"`
	Label            string  `json:"label"`
	Status           string  `json:"status"`
	ActiveOrderID    *string `json:"activeOrderId,omitempty"`
	ActiveBillNumber *string `json:"activeBillNumber,omitempty"`
}

// orderResponseFromDomain maps a command result to its response body.
func orderResponseFromDomain(aggregate *order.Order) OrderResponse {
	lines := aggregate.Lines()
	lineResponses := make([]OrderLineResponse, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		lineResponses = append(lineResponses, OrderLineResponse{
			ProductID:    line.ProductID().String(),
			Name:         line.Name(),
			Unit:         line.Unit(),
			UnitPrice:    line.UnitPrice(),
			TaxRate:      line.TaxRate().Float(),
			RequestedQty: line.RequestedQty(),
			SendingQty:   line.SendingQty(),
			ReceivedQty:  line.ReceivedQty(),
			Confirmed:    line.Confirmed(),
			LineTotal:    line.Total(),
			LineTax:      line.Tax(),
		})
	}

	response := OrderResponse{
		ID:            aggregate.ID().String(),
		BranchID:      aggregate.BranchID().String(),
		BillNumber:    aggregate.BillNumber(),
		Channel:       aggregate.Channel().String(),
		Status:        aggregate.Status().String(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		Subtotal:      aggregate.Subtotal(),
		Tax:           aggregate.Tax(),
		GrandTotal:    aggregate.GrandTotal(),
		ItemCount:     aggregate.ItemCount(),
		CreatedAt:     aggregate.CreatedAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		ReceivedAt:    aggregate.ReceivedAt(),
		Lines:         lineResponses,
	}

	return response
}

// orderResponseFromQuery maps a listing row to its response body.
func orderResponseFromQuery(row queries.ListOrdersQueryResponse) OrderResponse {
	lineResponses := make([]OrderLineResponse, 0, len(row.Lines))
	for _, line := range row.Lines {
		lineResponses = append(lineResponses, OrderLineResponse{
			ProductID:    line.ProductID.String(),
			Name:         line.Name,
			Unit:         line.Unit,
			UnitPrice:    line.UnitPrice,
			TaxRate:      line.TaxRate,
			RequestedQty: line.RequestedQty,
			SendingQty:   line.SendingQty,
			ReceivedQty:  line.ReceivedQty,
			Confirmed:    line.Confirmed,
			LineTotal:    line.LineTotal,
			LineTax:      line.LineTax,
		})
	}

	return OrderResponse{
		ID:            row.ID.String(),
		BranchID:      row.BranchID.String(),
		BillNumber:    row.BillNumber,
		Channel:       row.Channel,
		Status:        row.Status,
		PaymentMethod: row.PaymentMethod,
		Subtotal:      row.Subtotal,
		Tax:           row.Tax,
		GrandTotal:    row.GrandTotal,
		ItemCount:     row.ItemCount,
		CreatedAt:     row.CreatedAt,
		DeliveredAt:   row.DeliveredAt,
		ReceivedAt:    row.ReceivedAt,
		Lines:         lineResponses,
	}
}
