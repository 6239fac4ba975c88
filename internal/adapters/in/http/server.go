// Package http exposes the order-to-stock engine over an echo HTTP API.
// Handlers translate JSON contracts into commands and queries; every domain
// error maps onto a status code through its errs sentinel.
package http

import (
	"errors"
	"net/http"
	"time"

	"bakehouse/internal/adapters/out/postgres/orderrepo"
	"bakehouse/internal/core/application/usecases/commands"
	"bakehouse/internal/core/application/usecases/queries"
	"bakehouse/internal/core/domain/model/dining"
	"bakehouse/internal/core/domain/model/inventory"
	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"
	"bakehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler
	adjustStockHandler       commands.AdjustStockCommandHandler
	transferStockHandler     commands.TransferStockCommandHandler
	setStockThresholdHandler commands.SetStockThresholdCommandHandler

	// Query handlers
	listOrdersHandler queries.ListOrdersQueryHandler
	getStockHandler   queries.GetStockQueryHandler
	getTablesHandler  queries.GetTablesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	adjustStockHandler commands.AdjustStockCommandHandler,
	transferStockHandler commands.TransferStockCommandHandler,
	setStockThresholdHandler commands.SetStockThresholdCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getStockHandler queries.GetStockQueryHandler,
	getTablesHandler queries.GetTablesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionOrderHandler:   transitionOrderHandler,
		deleteOrderHandler:       deleteOrderHandler,
		adjustStockHandler:       adjustStockHandler,
		transferStockHandler:     transferStockHandler,
		setStockThresholdHandler: setStockThresholdHandler,
		listOrdersHandler:        listOrdersHandler,
		getStockHandler:          getStockHandler,
		getTablesHandler:         getTablesHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.PATCH("/orders/:id", s.TransitionOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.GET("/stock", s.GetStock)
	api.POST("/stock/adjust", s.AdjustStock)
	api.POST("/stock/transfer", s.TransferStock)
	api.PUT("/stock/:id/threshold", s.SetStockThreshold)
	api.GET("/tables", s.GetTables)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates a new bill.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	branchID, err := kernel.UUIDFromString(request.BranchID)
	if err != nil {
		return badRequest(ctx, "Invalid branch id: "+err.Error())
	}
	channel, err := order.ChannelFromString(request.Channel)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	paymentMethod, err := order.PaymentMethodFromString(request.PaymentMethod)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	tableID, err := optionalUUIDParam(request.TableID)
	if err != nil {
		return badRequest(ctx, "Invalid table id: "+err.Error())
	}
	staffID, err := optionalUUIDParam(request.StaffID)
	if err != nil {
		return badRequest(ctx, "Invalid staff id: "+err.Error())
	}

	lines := make([]commands.CreateOrderLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product id: "+lineErr.Error())
		}
		lines = append(lines, commands.CreateOrderLine{
			ProductID:    productID,
			Name:         line.Name,
			Unit:         line.Unit,
			UnitPrice:    line.UnitPrice,
			RequestedQty: line.RequestedQty,
			TaxRate:      line.TaxRate,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		branchID,
		channel,
		lines,
		paymentMethod,
		tableID,
		staffID,
		request.ScheduledFor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromDomain(created))
}

// ListOrders handles GET /api/v1/orders - lists orders newest-first.
// Filters: branchId, channel (repeatable), status, from, to (RFC 3339).
func (s *Server) ListOrders(ctx echo.Context) error {
	branchID, err := optionalUUIDQuery(ctx, "branchId")
	if err != nil {
		return badRequest(ctx, "Invalid branch id: "+err.Error())
	}

	channels := make([]order.Channel, 0)
	for _, raw := range ctx.QueryParams()["channel"] {
		channel, channelErr := order.ChannelFromString(raw)
		if channelErr != nil {
			return badRequest(ctx, channelErr.Error())
		}
		channels = append(channels, channel)
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return badRequest(ctx, statusErr.Error())
		}
		status = &parsed
	}

	from, err := optionalTimeQuery(ctx, "from")
	if err != nil {
		return badRequest(ctx, "Invalid from date: "+err.Error())
	}
	to, err := optionalTimeQuery(ctx, "to")
	if err != nil {
		return badRequest(ctx, "Invalid to date: "+err.Error())
	}

	query, err := queries.NewListOrdersQuery(branchID, channels, status, from, to)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, orderResponseFromQuery(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles PATCH /api/v1/orders/:id - applies line patches,
// the confirmation toggle and/or a status transition in one step.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request TransitionOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patches := make([]order.LinePatch, 0, len(request.Lines))
	for _, line := range request.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product id: "+lineErr.Error())
		}
		patches = append(patches, order.LinePatch{
			ProductID:   productID,
			SendingQty:  line.SendingQty,
			ReceivedQty: line.ReceivedQty,
			Confirmed:   line.Confirmed,
		})
	}

	var status *order.Status
	if request.Status != nil {
		parsed, statusErr := order.StatusFromString(*request.Status)
		if statusErr != nil {
			return badRequest(ctx, statusErr.Error())
		}
		status = &parsed
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, patches, status, request.ConfirmAll)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromDomain(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/:id - removes a bill. Committed
// inventory movements are not reversed.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStock handles GET /api/v1/stock - reads the ledger of a location.
// Filters: locationId (absent = factory pool), productId, low=true.
func (s *Server) GetStock(ctx echo.Context) error {
	productID, err := optionalUUIDQuery(ctx, "productId")
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	locationID, err := optionalUUIDQuery(ctx, "locationId")
	if err != nil {
		return badRequest(ctx, "Invalid location id: "+err.Error())
	}
	lowOnly := ctx.QueryParam("low") == "true"

	query, err := queries.NewGetStockQuery(productID, locationID, lowOnly)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	records, err := s.getStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]StockRecordResponse, 0, len(records))
	for _, record := range records {
		movements := make([]StockMovementResponse, 0, len(record.Movements))
		for _, movement := range record.Movements {
			movements = append(movements, StockMovementResponse{
				ID:         movement.ID.String(),
				Delta:      movement.Delta,
				Reason:     movement.Reason,
				OccurredAt: movement.OccurredAt,
			})
		}

		var location *string
		if record.LocationID != nil {
			raw := record.LocationID.String()
			location = &raw
		}

		response = append(response, StockRecordResponse{
			ID:         record.ID.String(),
			ProductID:  record.ProductID.String(),
			LocationID: location,
			Quantity:   record.Quantity,
			Threshold:  record.Threshold,
			Low:        record.Low,
			Movements:  movements,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdjustStock handles POST /api/v1/stock/adjust - applies a manual delta.
func (s *Server) AdjustStock(ctx echo.Context) error {
	var request AdjustStockRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	locationID, err := optionalUUIDParam(request.LocationID)
	if err != nil {
		return badRequest(ctx, "Invalid location id: "+err.Error())
	}

	cmd, err := commands.NewAdjustStockCommand(productID, locationID, request.Delta, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	record, err := s.adjustStockHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stockRecordResponse(record))
}

// TransferStock handles POST /api/v1/stock/transfer - moves stock between
// two locations atomically.
func (s *Server) TransferStock(ctx echo.Context) error {
	var request TransferStockRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	fromLocationID, err := optionalUUIDParam(request.FromLocationID)
	if err != nil {
		return badRequest(ctx, "Invalid source location id: "+err.Error())
	}
	toLocationID, err := optionalUUIDParam(request.ToLocationID)
	if err != nil {
		return badRequest(ctx, "Invalid destination location id: "+err.Error())
	}

	cmd, err := commands.NewTransferStockCommand(
		productID,
		fromLocationID,
		toLocationID,
		request.Quantity,
		request.ReasonOut,
		request.ReasonIn,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	from, to, err := s.transferStockHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, []StockRecordResponse{
		stockRecordResponse(from),
		stockRecordResponse(to),
	})
}

// SetStockThreshold handles PUT /api/v1/stock/:id/threshold - updates the
// low-stock boundary of a ledger record.
func (s *Server) SetStockThreshold(ctx echo.Context) error {
	recordID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid record id: "+err.Error())
	}

	var request SetThresholdRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetStockThresholdCommand(recordID, request.Threshold)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	record, err := s.setStockThresholdHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stockRecordResponse(record))
}

// GetTables handles GET /api/v1/tables - reads the table board of a branch.
// Filters: branchId (required), categoryId.
func (s *Server) GetTables(ctx echo.Context) error {
	branchID, err := kernel.UUIDFromString(ctx.QueryParam("branchId"))
	if err != nil {
		return badRequest(ctx, "Invalid branch id: "+err.Error())
	}
	categoryID, err := optionalUUIDQuery(ctx, "categoryId")
	if err != nil {
		return badRequest(ctx, "Invalid category id: "+err.Error())
	}

	query, err := queries.NewGetTablesQuery(branchID, categoryID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tables, err := s.getTablesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]TableResponse, 0, len(tables))
	for _, table := range tables {
		var activeOrderID *string
		if table.ActiveOrderID != nil {
			raw := table.ActiveOrderID.String()
			activeOrderID = &raw
		}

		response = append(response, TableResponse{
			ID:               table.ID.String(),
			BranchID:         table.BranchID.String(),
			CategoryID:       table.CategoryID.String(),
			Label:            table.Label,
			Status:           table.Status,
			ActiveOrderID:    activeOrderID,
			ActiveBillNumber: table.ActiveBillNumber,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func stockRecordResponse(record *inventory.Record) StockRecordResponse {
	var location *string
	if id := record.LocationID(); id != nil {
		raw := id.String()
		location = &raw
	}

	return StockRecordResponse{
		ID:         record.ID().String(),
		ProductID:  record.ProductID().String(),
		LocationID: location,
		Quantity:   record.Stock(),
		Threshold:  record.Threshold(),
		Low:        record.IsLow(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps a use-case failure onto an HTTP status through its errs
// sentinel. Unknown errors become opaque 500s.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err)
	case errors.Is(err, dining.ErrTableOccupied),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, orderrepo.ErrBillNumberConflict):
		return writeError(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrEmptyTransition):
		return writeError(ctx, http.StatusBadRequest, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func writeError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func optionalUUIDParam(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalUUIDQuery(ctx echo.Context, name string) (*kernel.UUID, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalTimeQuery(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
