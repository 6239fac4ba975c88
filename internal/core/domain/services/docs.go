// Package services provides domain services that orchestrate business
// operations across multiple aggregates.
//
// The package includes:
//   - StockMover: moves stock between two inventory ledger records with a
//     strict source debit, used by deliveries and manual transfers.
package services
