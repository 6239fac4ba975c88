package order_test

import (
	"testing"
	"unicode/utf8"

	"bakehouse/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all defined statuses", func(t *testing.T) {
		cases := map[string]order.Status{
			"draft":     order.Draft,
			"neworder":  order.NewOrderStatus,
			"pending":   order.Pending,
			"completed": order.Completed,
			"delivered": order.Delivered,
			"received":  order.Received,
		}

		for raw, expected := range cases {
			status, err := order.StatusFromString(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, expected, status)
			assert.Equal(t, raw, status.String())
		}
	})

	t.Run("should fail on unknown status", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")

		require.Error(t, err)
	})

	t.Run("should fail on the unknown sentinel", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")

		require.Error(t, err)
	})
}

func TestStatus_Pend(t *testing.T) {
	t.Run("should move draft and new orders to pending", func(t *testing.T) {
		for _, from := range []order.Status{order.Draft, order.NewOrderStatus} {
			status, err := from.Pend()

			require.NoError(t, err)
			assert.Equal(t, order.Pending, status)
		}
	})

	t.Run("should reject other statuses", func(t *testing.T) {
		for _, from := range []order.Status{order.Pending, order.Completed, order.Delivered, order.Received} {
			_, err := from.Pend()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("should complete from any pre-delivery status", func(t *testing.T) {
		for _, from := range []order.Status{order.Draft, order.NewOrderStatus, order.Pending, order.Completed} {
			status, err := from.Complete()

			require.NoError(t, err, from.String())
			assert.Equal(t, order.Completed, status)
		}
	})

	t.Run("should reject completing delivered or received orders", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Received} {
			_, err := from.Complete()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_Reopen(t *testing.T) {
	t.Run("should reopen only completed orders", func(t *testing.T) {
		status, err := order.Completed.Reopen()

		require.NoError(t, err)
		assert.Equal(t, order.Pending, status)
	})

	t.Run("should reject reopening other statuses", func(t *testing.T) {
		for _, from := range []order.Status{order.Draft, order.NewOrderStatus, order.Pending, order.Delivered, order.Received} {
			_, err := from.Reopen()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_DeliverAndReceive(t *testing.T) {
	t.Run("should deliver only completed orders", func(t *testing.T) {
		status, err := order.Completed.Deliver()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, status)

		_, err = order.Pending.Deliver()
		require.Error(t, err)
	})

	t.Run("should receive only delivered orders", func(t *testing.T) {
		status, err := order.Delivered.Receive()

		require.NoError(t, err)
		assert.Equal(t, order.Received, status)

		_, err = order.Completed.Receive()
		require.Error(t, err)
	})
}

func TestStatus_Flags(t *testing.T) {
	t.Run("should treat draft, neworder and pending as active", func(t *testing.T) {
		assert.True(t, order.Draft.IsActive())
		assert.True(t, order.NewOrderStatus.IsActive())
		assert.True(t, order.Pending.IsActive())
		assert.False(t, order.Completed.IsActive())
		assert.False(t, order.Delivered.IsActive())
		assert.False(t, order.Received.IsActive())
	})

	t.Run("should mark delivered and received as stock-affecting", func(t *testing.T) {
		assert.True(t, order.Delivered.AffectsStock())
		assert.True(t, order.Received.AffectsStock())
		assert.False(t, order.Draft.AffectsStock())
		assert.False(t, order.Completed.AffectsStock())
	})
}

func TestChannel_InitialStatus(t *testing.T) {
	t.Run("should map each channel to its initial status", func(t *testing.T) {
		assert.Equal(t, order.NewOrderStatus, order.StockChannel.InitialStatus())
		assert.Equal(t, order.NewOrderStatus, order.LiveOrderChannel.InitialStatus())
		assert.Equal(t, order.Received, order.BillingChannel.InitialStatus())
		assert.Equal(t, order.Draft, order.TableOrderChannel.InitialStatus())
	})

	t.Run("should bind only table orders to tables", func(t *testing.T) {
		assert.True(t, order.TableOrderChannel.UsesTable())
		assert.False(t, order.StockChannel.UsesTable())
		assert.False(t, order.LiveOrderChannel.UsesTable())
		assert.False(t, order.BillingChannel.UsesTable())
	})

	t.Run("should exclude table orders from the operational default", func(t *testing.T) {
		assert.Equal(t,
			[]order.Channel{order.StockChannel, order.LiveOrderChannel, order.BillingChannel},
			order.OperationalChannels())
	})

	t.Run("should parse all defined channels", func(t *testing.T) {
		for _, raw := range []string{"stock", "liveOrder", "billing", "tableOrder"} {
			channel, err := order.ChannelFromString(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, raw, channel.String())
		}

		_, err := order.ChannelFromString("phone")
		require.Error(t, err)
	})
}

func TestFormatBillNumber(t *testing.T) {
	day := mustDate(t, 2026, 8, 28)

	t.Run("should build prefix, date and padded sequence", func(t *testing.T) {
		assert.Equal(t, "KAR28082607", order.FormatBillNumber("Karol Bagh", day, 7))
	})

	t.Run("should uppercase the branch prefix", func(t *testing.T) {
		assert.Equal(t, "SUN28082601", order.FormatBillNumber("sunrise", day, 1))
	})

	t.Run("should keep short branch names whole", func(t *testing.T) {
		assert.Equal(t, "AB28082612", order.FormatBillNumber("ab", day, 12))
	})

	t.Run("should take whole runes from multibyte branch names", func(t *testing.T) {
		got := order.FormatBillNumber("Müller Straße", day, 3)

		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, "MÜL28082603", got)
	})

	t.Run("should widen the sequence past two digits", func(t *testing.T) {
		assert.Equal(t, "KAR280826104", order.FormatBillNumber("Karol Bagh", day, 104))
	})

	t.Run("should derive the day key in ISO form", func(t *testing.T) {
		assert.Equal(t, "2026-08-28", order.DayKey(day))
	})
}
