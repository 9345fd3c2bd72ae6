// Package history persists a ledger of past conversions in SQLite.
//
// Every batch gets a generated identifier, and every source video in the
// batch is recorded with its outcome once processing finishes. The ledger
// backs the history command and survives across runs so modders can see
// which names and frame budgets earlier batches used.
package history
