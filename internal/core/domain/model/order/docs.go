// Package order provides the bill aggregate of the bakery chain: priced
// line-item snapshots, server-computed totals, the lifecycle status state
// machine and the branch/date-scoped bill numbering scheme.
//
// Key business rules:
//   - Totals (subtotal, tax, grand total, item count) are recomputed from
//     the line items on every change and never trusted from the caller.
//   - The billed quantity of a line is the larger of the requested and
//     sending quantities; tax is zero for exempt rates.
//   - The status machine runs Draft/NewOrderStatus -> Pending -> Completed ->
//     Delivered -> Received, with an unconfirm toggle reopening Completed.
//   - Delivery and receipt transitions surface the stock movements they
//     require; the application layer executes them against the inventory
//     ledger inside the same unit of work.
package order
