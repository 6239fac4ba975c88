package commands_test

import (
	"errors"
	"strings"
	"testing"

	"bakehouse/internal/core/application/usecases/commands"
	"bakehouse/internal/core/domain/model/dining"
	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"
	"bakehouse/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrderLines() []commands.CreateOrderLine {
	return []commands.CreateOrderLine{
		{
			ProductID:    kernel.NewUUID(),
			Name:         "Sourdough Loaf",
			Unit:         "pcs",
			UnitPrice:    10,
			RequestedQty: 5,
			TaxRate:      order.TaxExemptSentinel,
		},
		{
			ProductID:    kernel.NewUUID(),
			Name:         "Celebration Cake",
			Unit:         "pcs",
			UnitPrice:    50,
			RequestedQty: 2,
			TaxRate:      5,
		},
	}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), branchID, order.StockChannel,
		testOrderLines(), order.Cash, nil, nil, nil)
	require.NoError(t, err)

	branches := new(MockBranchDirectory)
	branches.On("GetBranch", ctx, branchID).
		Return(ports.Branch{ID: branchID, Name: "Karol Bagh"}, nil).Once()

	repo := new(MockOrderRepository)
	counter := new(MockBillCounter)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BillCounter").Return(counter).Once(),
		counter.On("IncrementAndGet", ctx, branchID, mock.AnythingOfType("string")).Return(7, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, branches)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, order.NewOrderStatus, created.Status())
	assert.True(t, strings.HasPrefix(created.BillNumber(), "KAR"))
	assert.True(t, strings.HasSuffix(created.BillNumber(), "07"))
	assert.InDelta(t, 155.0, created.GrandTotal(), 0.0001)
	assert.Equal(t, 2, created.ItemCount())
	repo.AssertExpectations(t)
	counter.AssertExpectations(t)
	uow.AssertExpectations(t)
	branches.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BillingDeductsBranchStock(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	lines := testOrderLines()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), branchID, order.BillingChannel,
		lines, order.Card, nil, nil, nil)
	require.NoError(t, err)

	branches := new(MockBranchDirectory)
	branches.On("GetBranch", ctx, branchID).
		Return(ports.Branch{ID: branchID, Name: "Karol Bagh"}, nil).Once()

	first := newStockedRecord(t, lines[0].ProductID, &branchID, 10)
	second := newStockedRecord(t, lines[1].ProductID, &branchID, 10)

	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	counter := new(MockBillCounter)
	counter.On("IncrementAndGet", ctx, branchID, mock.AnythingOfType("string")).Return(1, nil).Once()

	inventoryRepo := new(MockInventoryRepository)
	inventoryRepo.On("GetOrCreate", ctx, lines[0].ProductID, mock.Anything).Return(first, nil).Once()
	inventoryRepo.On("GetOrCreate", ctx, lines[1].ProductID, mock.Anything).Return(second, nil).Once()
	inventoryRepo.On("Update", ctx, mock.AnythingOfType("*inventory.Record")).Return(nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BillCounter").Return(counter)
	uow.On("OrderRepository").Return(repo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, branches)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Received, created.Status())
	assert.InDelta(t, 5.0, first.Stock(), 0.0001)
	assert.InDelta(t, 8.0, second.Stock(), 0.0001)
	inventoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_TableOrderOccupiesTable(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	tableID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), branchID, order.TableOrderChannel,
		testOrderLines(), order.Cash, &tableID, nil, nil)
	require.NoError(t, err)

	branches := new(MockBranchDirectory)
	branches.On("GetBranch", ctx, branchID).
		Return(ports.Branch{ID: branchID, Name: "Karol Bagh"}, nil).Once()

	table, err := dining.NewTable(tableID, branchID, kernel.NewUUID(), "T1")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	counter := new(MockBillCounter)
	counter.On("IncrementAndGet", ctx, branchID, mock.AnythingOfType("string")).Return(1, nil).Once()

	tables := new(MockTableRepository)
	tables.On("Get", ctx, tableID).Return(table, nil).Once()
	tables.On("Update", ctx, table).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BillCounter").Return(counter)
	uow.On("OrderRepository").Return(repo)
	uow.On("TableRepository").Return(tables)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, branches)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Draft, created.Status())
	assert.True(t, table.IsOccupiedBy(created.ID()))
	tables.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_TableAlreadyOccupied(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	tableID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), branchID, order.TableOrderChannel,
		testOrderLines(), order.Cash, &tableID, nil, nil)
	require.NoError(t, err)

	branches := new(MockBranchDirectory)
	branches.On("GetBranch", ctx, branchID).
		Return(ports.Branch{ID: branchID, Name: "Karol Bagh"}, nil).Once()

	table, err := dining.NewTable(tableID, branchID, kernel.NewUUID(), "T1")
	require.NoError(t, err)
	require.NoError(t, table.Occupy(kernel.NewUUID()))

	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	counter := new(MockBillCounter)
	counter.On("IncrementAndGet", ctx, branchID, mock.AnythingOfType("string")).Return(1, nil).Once()

	tables := new(MockTableRepository)
	tables.On("Get", ctx, tableID).Return(table, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BillCounter").Return(counter)
	uow.On("OrderRepository").Return(repo)
	uow.On("TableRepository").Return(tables)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, branches)
	created, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, dining.ErrTableOccupied)
	assert.Nil(t, created)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	branches := new(MockBranchDirectory)
	h := commands.NewCreateOrderCommandHandler(factory, branches)

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
}

func TestCreateOrderCommandHandler_Handle_UnknownBranch(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), branchID, order.StockChannel,
		testOrderLines(), order.Cash, nil, nil, nil)
	require.NoError(t, err)

	branches := new(MockBranchDirectory)
	branches.On("GetBranch", ctx, branchID).
		Return(ports.Branch{}, errors.New("branch lookup failed")).Once()

	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, branches)

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), branchID, order.StockChannel,
		testOrderLines(), order.Cash, nil, nil, nil)
	require.NoError(t, err)

	branches := new(MockBranchDirectory)
	branches.On("GetBranch", ctx, branchID).
		Return(ports.Branch{ID: branchID, Name: "Karol Bagh"}, nil).Once()

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, branches)
	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
}
