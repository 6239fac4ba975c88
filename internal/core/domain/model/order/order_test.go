package order_test

import (
	"testing"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func mustLine(t *testing.T, name string, unitPrice, requestedQty, taxRate float64) order.LineItem {
	t.Helper()
	rate, err := order.TaxRateFromFloat(taxRate)
	require.NoError(t, err)
	line, err := order.NewLineItem(kernel.NewUUID(), name, "pcs", unitPrice, requestedQty, rate)
	require.NoError(t, err)
	return line
}

func newTestOrder(t *testing.T, channel order.Channel, lines ...order.LineItem) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		channel,
		lines,
		order.Cash,
		"KAR28082601",
		nil,
		nil,
		nil,
		mustDate(t, 2026, 8, 28),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	now := mustDate(t, 2026, 8, 28)

	t.Run("should create order with server-computed totals", func(t *testing.T) {
		o := newTestOrder(t, order.StockChannel,
			mustLine(t, "Sourdough Loaf", 10, 5, order.TaxExemptSentinel),
			mustLine(t, "Celebration Cake", 50, 2, 5),
		)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.NewOrderStatus, o.Status())
		assert.InDelta(t, 150.0, o.Subtotal(), 0.0001)
		assert.InDelta(t, 5.0, o.Tax(), 0.0001)
		assert.InDelta(t, 155.0, o.GrandTotal(), 0.0001)
		assert.Equal(t, 2, o.ItemCount())
	})

	t.Run("should start in the channel's initial status", func(t *testing.T) {
		assert.Equal(t, order.Draft,
			newTestOrder(t, order.TableOrderChannel, mustLine(t, "Chai", 2, 1, 0)).Status())
		assert.Equal(t, order.Received,
			newTestOrder(t, order.BillingChannel, mustLine(t, "Chai", 2, 1, 0)).Status())
		assert.Equal(t, order.NewOrderStatus,
			newTestOrder(t, order.LiveOrderChannel, mustLine(t, "Chai", 2, 1, 0)).Status())
	})

	t.Run("should fail without line items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.StockChannel,
			nil, order.Cash, "KAR28082601", nil, nil, nil, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line items")
	})

	t.Run("should fail without a bill number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.StockChannel,
			[]order.LineItem{mustLine(t, "Chai", 2, 1, 0)},
			order.Cash, "", nil, nil, nil, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bill number")
	})

	t.Run("should fail with an unknown channel", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.UnknownChannel,
			[]order.LineItem{mustLine(t, "Chai", 2, 1, 0)},
			order.Cash, "KAR28082601", nil, nil, nil, now)

		require.Error(t, err)
	})
}

func TestOrder_ApplyLinePatches(t *testing.T) {
	now := mustDate(t, 2026, 8, 28)

	t.Run("should recompute totals after an over-allocation", func(t *testing.T) {
		line := mustLine(t, "Sourdough Loaf", 10, 5, order.TaxExemptSentinel)
		o := newTestOrder(t, order.StockChannel, line)

		sending := 8.0
		err := o.ApplyLinePatches([]order.LinePatch{
			{ProductID: line.ProductID(), SendingQty: &sending},
		}, now)

		require.NoError(t, err)
		assert.InDelta(t, 80.0, o.Subtotal(), 0.0001)
		assert.InDelta(t, 80.0, o.GrandTotal(), 0.0001)
	})

	t.Run("should confirm a line and default its allocation", func(t *testing.T) {
		line := mustLine(t, "Sourdough Loaf", 10, 5, order.TaxExemptSentinel)
		o := newTestOrder(t, order.StockChannel, line)

		confirmed := true
		err := o.ApplyLinePatches([]order.LinePatch{
			{ProductID: line.ProductID(), Confirmed: &confirmed},
		}, now)

		require.NoError(t, err)
		patched := o.Lines()[0]
		assert.True(t, patched.Confirmed())
		require.NotNil(t, patched.SendingQty())
		assert.InDelta(t, 5.0, *patched.SendingQty(), 0.0001)
	})

	t.Run("should fail for a product not on the order", func(t *testing.T) {
		o := newTestOrder(t, order.StockChannel, mustLine(t, "Sourdough Loaf", 10, 5, 0))

		sending := 1.0
		err := o.ApplyLinePatches([]order.LinePatch{
			{ProductID: kernel.NewUUID(), SendingQty: &sending},
		}, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "object not found")
	})
}

func TestOrder_Complete(t *testing.T) {
	now := mustDate(t, 2026, 8, 28)

	t.Run("should reject completion with unconfirmed lines when required", func(t *testing.T) {
		o := newTestOrder(t, order.StockChannel,
			mustLine(t, "Sourdough Loaf", 10, 5, 0),
			mustLine(t, "Baguette", 8, 2, 0),
		)

		err := o.Complete(true)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "confirmed")
		assert.Equal(t, order.NewOrderStatus, o.Status())
	})

	t.Run("should complete once every line is confirmed", func(t *testing.T) {
		o := newTestOrder(t, order.StockChannel,
			mustLine(t, "Sourdough Loaf", 10, 5, 0),
		)
		o.ConfirmAllLines(now)

		require.NoError(t, o.Complete(true))
		assert.Equal(t, order.Completed, o.Status())
		assert.True(t, o.AllLinesConfirmed())
	})

	t.Run("should reopen a completed order back to pending", func(t *testing.T) {
		o := newTestOrder(t, order.StockChannel, mustLine(t, "Sourdough Loaf", 10, 5, 0))
		o.ConfirmAllLines(now)
		require.NoError(t, o.Complete(true))

		require.NoError(t, o.Reopen())
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Deliver(t *testing.T) {
	now := mustDate(t, 2026, 8, 28)

	t.Run("should return one demand per allocated line", func(t *testing.T) {
		first := mustLine(t, "Sourdough Loaf", 10, 5, 0)
		second := mustLine(t, "Baguette", 8, 2, 0)
		o := newTestOrder(t, order.StockChannel, first, second)
		o.ConfirmAllLines(now)
		require.NoError(t, o.Complete(true))

		demands, err := o.Deliver(now)

		require.NoError(t, err)
		require.Len(t, demands, 2)
		assert.True(t, demands[0].ProductID.IsEqual(first.ProductID()))
		assert.InDelta(t, 5.0, demands[0].Quantity, 0.0001)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, now, *o.DeliveredAt())
	})

	t.Run("should reject delivery before completion", func(t *testing.T) {
		o := newTestOrder(t, order.StockChannel, mustLine(t, "Sourdough Loaf", 10, 5, 0))

		_, err := o.Deliver(now)

		require.Error(t, err)
		assert.Nil(t, o.DeliveredAt())
	})
}

func TestOrder_Receive(t *testing.T) {
	now := mustDate(t, 2026, 8, 28)

	deliver := func(t *testing.T, o *order.Order) {
		t.Helper()
		o.ConfirmAllLines(now)
		require.NoError(t, o.Complete(true))
		_, err := o.Deliver(now)
		require.NoError(t, err)
	}

	t.Run("should default received quantities to sending", func(t *testing.T) {
		o := newTestOrder(t, order.StockChannel, mustLine(t, "Sourdough Loaf", 10, 5, 0))
		deliver(t, o)

		shortfalls, err := o.Receive(now)

		require.NoError(t, err)
		assert.Empty(t, shortfalls)
		assert.Equal(t, order.Received, o.Status())
		received := o.Lines()[0].ReceivedQty()
		require.NotNil(t, received)
		assert.InDelta(t, 5.0, *received, 0.0001)
	})

	t.Run("should report the shortfall of a short receipt", func(t *testing.T) {
		line := mustLine(t, "Sourdough Loaf", 10, 5, 0)
		o := newTestOrder(t, order.StockChannel, line)
		deliver(t, o)

		received := 3.0
		require.NoError(t, o.ApplyLinePatches([]order.LinePatch{
			{ProductID: line.ProductID(), ReceivedQty: &received},
		}, now))

		shortfalls, err := o.Receive(now)

		require.NoError(t, err)
		require.Len(t, shortfalls, 1)
		assert.InDelta(t, 2.0, shortfalls[0].Quantity, 0.0001)
		require.NotNil(t, o.ReceivedAt())
	})
}

func TestOrder_StockDeductions(t *testing.T) {
	t.Run("should list one deduction per billed line", func(t *testing.T) {
		o := newTestOrder(t, order.BillingChannel,
			mustLine(t, "Chai", 2, 3, 0),
			mustLine(t, "Samosa", 5, 2, 5),
		)

		deductions := o.StockDeductions()

		require.Len(t, deductions, 2)
		assert.InDelta(t, 3.0, deductions[0].Quantity, 0.0001)
		assert.InDelta(t, 2.0, deductions[1].Quantity, 0.0001)
	})
}

func TestRestoreOrder(t *testing.T) {
	now := mustDate(t, 2026, 8, 28)

	t.Run("should recompute totals instead of trusting storage", func(t *testing.T) {
		line := mustLine(t, "Sourdough Loaf", 10, 5, order.TaxExemptSentinel)

		restored, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.StockChannel,
			[]order.LineItem{line}, order.Card, "KAR28082601",
			nil, nil, nil, order.Pending, now, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, restored.Status())
		assert.InDelta(t, 50.0, restored.Subtotal(), 0.0001)
		assert.Equal(t, 1, restored.ItemCount())
	})

	t.Run("should fail with an invalid status", func(t *testing.T) {
		line := mustLine(t, "Sourdough Loaf", 10, 5, 0)

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.StockChannel,
			[]order.LineItem{line}, order.Card, "KAR28082601",
			nil, nil, nil, order.UnknownStatus, now, nil, nil)

		require.Error(t, err)
	})
}
