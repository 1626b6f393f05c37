package payments

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVSource reads transactions from CSV input with the header
// `type, client, tx, amount`. Fields tolerate surrounding whitespace, and
// the amount column may be empty or absent on record types that carry no
// amount.
//
// Malformed records are logged and skipped; only well-formed transactions
// reach the sequence.
type CSVSource struct {
	r io.Reader
}

// NewCSVSource creates a source reading CSV records from r.
func NewCSVSource(r io.Reader) *CSVSource {
	return &CSVSource{r: r}
}

// Transactions returns the lazy sequence of well-formed transactions, in
// input order. It fails only when the origin cannot produce a header row at
// all; per-record failures are diagnostics, not errors.
func (s *CSVSource) Transactions() (iter.Seq[Transaction], error) {
	reader := csv.NewReader(s.r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// The header is read eagerly so that an unreadable origin fails the run
	// instead of yielding an empty sequence.
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("cannot read transactions header: %w", err)
	}

	return func(yield func(Transaction) bool) {
		for line := 2; ; line++ {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				log.Printf("skipping record on line %d: %v", line, err)
				continue
			}
			tx, err := parseRecord(record)
			if err != nil {
				log.Printf("skipping record on line %d: %v", line, err)
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}, nil
}

// parseRecord parses one CSV record into a Transaction.
func parseRecord(record []string) (Transaction, error) {
	if len(record) < 3 {
		return Transaction{}, fmt.Errorf("expected at least 3 fields, got %d", len(record))
	}

	typ, err := ParseTransactionType(strings.TrimSpace(record[0]))
	if err != nil {
		return Transaction{}, err
	}
	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid client id %q: %w", record[1], err)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction id %q: %w", record[2], err)
	}

	tx := Transaction{Type: typ, Client: uint16(client), Tx: uint32(id)}
	if len(record) > 3 {
		if field := strings.TrimSpace(record[3]); field != "" {
			amount, err := decimal.NewFromString(field)
			if err != nil {
				return Transaction{}, fmt.Errorf("invalid amount %q: %w", record[3], err)
			}
			tx.Amount = decimal.NewNullDecimal(amount)
		}
	}
	return tx, nil
}
