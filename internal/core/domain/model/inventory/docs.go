// Package inventory provides the stock ledger aggregate: one record per
// (product, location) pair, where a nil location denotes the central
// factory. Every change to a stock level goes through delta application and
// appends to the record's movement history; the level is never recomputed
// from history on read.
package inventory
