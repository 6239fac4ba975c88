package order

import (
	"fmt"

	"bakehouse/internal/pkg/errs"
)

// Channel identifies the workflow an order originated from. The channel is
// fixed at creation time and determines the order's initial status and
// whether the order is bound to a dining table.
type Channel int

const (
	// UnknownChannel represents an invalid or undefined channel.
	UnknownChannel Channel = iota

	// StockChannel is a branch replenishment order against the central factory.
	StockChannel

	// LiveOrderChannel is a walk-in order placed at a branch counter.
	LiveOrderChannel

	// BillingChannel is a point-of-sale bill for an immediate sale.
	BillingChannel

	// TableOrderChannel is a dine-in order bound to a physical table.
	TableOrderChannel
)

func getChannelStrings() map[Channel]string {
	return map[Channel]string{
		UnknownChannel:    "unknown",
		StockChannel:      "stock",
		LiveOrderChannel:  "liveOrder",
		BillingChannel:    "billing",
		TableOrderChannel: "tableOrder",
	}
}

// OperationalChannels lists the channels included in order listings by
// default. Table orders are excluded unless asked for explicitly.
func OperationalChannels() []Channel {
	return []Channel{StockChannel, LiveOrderChannel, BillingChannel}
}

// ChannelFromString parses the wire representation of a channel.
func ChannelFromString(s string) (Channel, error) {
	for channel, str := range getChannelStrings() {
		if str == s && channel != UnknownChannel {
			return channel, nil
		}
	}
	return UnknownChannel, errs.NewValueIsInvalidErrorWithCause(
		"channel", fmt.Errorf("%q is not a valid channel", s))
}

// Validate checks that the Channel value is one of the defined channels.
func (c Channel) Validate() error {
	if c == UnknownChannel {
		return errs.NewValueIsRequiredError("channel")
	}
	if _, ok := getChannelStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"channel", fmt.Errorf("%d is not a valid channel", c))
	}
	return nil
}

// String returns the wire representation of the channel.
func (c Channel) String() string {
	if str, ok := getChannelStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// InitialStatus returns the status a freshly created order starts in for
// this channel. Billing orders represent an already-finished sale and start
// in Received, which is a stock-affecting status.
func (c Channel) InitialStatus() Status {
	switch c {
	case TableOrderChannel:
		return Draft
	case BillingChannel:
		return Received
	default:
		return NewOrderStatus
	}
}

// UsesTable reports whether orders on this channel occupy a dining table.
func (c Channel) UsesTable() bool {
	return c == TableOrderChannel
}
