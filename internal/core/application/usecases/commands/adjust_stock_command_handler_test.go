package commands_test

import (
	"testing"

	"bakehouse/internal/core/application/usecases/commands"
	"bakehouse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()

	t.Run("should apply the delta and persist the record", func(t *testing.T) {
		cmd, err := commands.NewAdjustStockCommand(productID, nil, 10, "production run")
		require.NoError(t, err)

		record := newStockedRecord(t, productID, nil, 0)

		inventoryRepo := new(MockInventoryRepository)
		uow := new(MockInventoryUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("InventoryRepository").Return(inventoryRepo).Once(),
			inventoryRepo.On("GetOrCreate", ctx, productID, (*kernel.UUID)(nil)).Return(record, nil).Once(),
			uow.On("InventoryRepository").Return(inventoryRepo).Once(),
			inventoryRepo.On("Update", ctx, record).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockInventoryUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdjustStockCommandHandler(factory)
		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.InDelta(t, 10.0, updated.Stock(), 0.0001)
		inventoryRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should floor an outbound delta at zero", func(t *testing.T) {
		branchID := kernel.NewUUID()
		cmd, err := commands.NewAdjustStockCommand(productID, &branchID, -10, "spoilage")
		require.NoError(t, err)

		record := newStockedRecord(t, productID, &branchID, 3)

		inventoryRepo := new(MockInventoryRepository)
		inventoryRepo.On("GetOrCreate", ctx, productID, &branchID).Return(record, nil).Once()
		inventoryRepo.On("Update", ctx, record).Return(nil).Once()

		uow := new(MockInventoryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("InventoryRepository").Return(inventoryRepo)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockInventoryUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdjustStockCommandHandler(factory)
		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, updated.Stock())
	})

	t.Run("should reject a zero delta at construction", func(t *testing.T) {
		_, err := commands.NewAdjustStockCommand(productID, nil, 0, "noop")

		require.Error(t, err)
	})

	t.Run("should reject an unconstructed command", func(t *testing.T) {
		factory := new(MockInventoryUoWFactory)
		h := commands.NewAdjustStockCommandHandler(factory)

		_, err := h.Handle(ctx, commands.AdjustStockCommand{})

		require.Error(t, err)
		factory.AssertNotCalled(t, "Create")
	})
}
