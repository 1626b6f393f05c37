package payments

import (
	"iter"
	"slices"
)

// Source produces the ordered sequence of transactions that feeds the
// engine. The sequence is finite and single-pass: Transactions may only be
// consumed once. Malformed records never appear in the sequence; sources
// log and skip them. The error is reserved for a fatal inability to produce
// the sequence at all.
type Source interface {
	Transactions() (iter.Seq[Transaction], error)
}

// MemorySource is a Source backed by an in-memory slice, mostly useful for
// tests and embedding.
type MemorySource struct {
	transactions []Transaction
}

// NewMemorySource creates a source yielding the given transactions in order.
func NewMemorySource(transactions ...Transaction) *MemorySource {
	return &MemorySource{transactions: transactions}
}

// Transactions returns the sequence of transactions.
func (s *MemorySource) Transactions() (iter.Seq[Transaction], error) {
	return slices.Values(s.transactions), nil
}
