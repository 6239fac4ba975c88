package commands_test

import (
	"testing"

	"bakehouse/internal/core/application/usecases/commands"
	"bakehouse/internal/core/domain/model/inventory"
	"bakehouse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransferStockCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	branchID := kernel.NewUUID()

	t.Run("should move stock between locations", func(t *testing.T) {
		cmd, err := commands.NewTransferStockCommand(
			productID, nil, &branchID, 4, "dispatched", "delivered")
		require.NoError(t, err)

		factoryRecord := newStockedRecord(t, productID, nil, 10)
		branchRecord := newStockedRecord(t, productID, &branchID, 0)

		inventoryRepo := new(MockInventoryRepository)
		inventoryRepo.On("GetOrCreate", ctx, productID, (*kernel.UUID)(nil)).Return(factoryRecord, nil).Once()
		inventoryRepo.On("GetOrCreate", ctx, productID, &branchID).Return(branchRecord, nil).Once()
		inventoryRepo.On("Update", ctx, factoryRecord).Return(nil).Once()
		inventoryRepo.On("Update", ctx, branchRecord).Return(nil).Once()

		uow := new(MockInventoryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("InventoryRepository").Return(inventoryRepo)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockInventoryUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewTransferStockCommandHandler(factory)
		from, to, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.InDelta(t, 6.0, from.Stock(), 0.0001)
		assert.InDelta(t, 4.0, to.Stock(), 0.0001)
		inventoryRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should abort on insufficient source stock", func(t *testing.T) {
		cmd, err := commands.NewTransferStockCommand(
			productID, nil, &branchID, 8, "dispatched", "delivered")
		require.NoError(t, err)

		factoryRecord := newStockedRecord(t, productID, nil, 3)
		branchRecord := newStockedRecord(t, productID, &branchID, 0)

		inventoryRepo := new(MockInventoryRepository)
		inventoryRepo.On("GetOrCreate", ctx, productID, (*kernel.UUID)(nil)).Return(factoryRecord, nil).Once()
		inventoryRepo.On("GetOrCreate", ctx, productID, &branchID).Return(branchRecord, nil).Once()

		uow := new(MockInventoryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("InventoryRepository").Return(inventoryRepo)
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockInventoryUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewTransferStockCommandHandler(factory)
		from, to, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Nil(t, from)
		assert.Nil(t, to)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should reject a transfer within the same location", func(t *testing.T) {
		_, err := commands.NewTransferStockCommand(
			productID, &branchID, &branchID, 4, "dispatched", "delivered")

		require.Error(t, err)
	})

	t.Run("should reject an unconstructed command", func(t *testing.T) {
		factory := new(MockInventoryUoWFactory)
		h := commands.NewTransferStockCommandHandler(factory)

		_, _, err := h.Handle(ctx, commands.TransferStockCommand{})

		require.Error(t, err)
		factory.AssertNotCalled(t, "Create")
	})
}
