package payments

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// Sink consumes the final account snapshot and renders it somewhere.
type Sink interface {
	WriteAccounts(accounts iter.Seq[*Account]) error
}

// CSVSink renders accounts as CSV with the header
// `client, available, held, total, locked`. Decimal fields carry exactly
// four fractional digits, locked is a boolean literal.
type CSVSink struct {
	w io.Writer
}

// NewCSVSink creates a sink writing CSV records to w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: w}
}

// WriteAccounts writes the header and one record per account.
func (s *CSVSink) WriteAccounts(accounts iter.Seq[*Account]) error {
	writer := csv.NewWriter(s.w)
	if err := writer.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("cannot write accounts header: %w", err)
	}
	for a := range accounts {
		record := []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.StringFixed(4),
			a.Held.StringFixed(4),
			a.Total.StringFixed(4),
			strconv.FormatBool(a.Locked),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write account %d: %w", a.Client, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// JSONLSink renders accounts as JSONL, one JSON object per line, fields in
// a stable order, with the same four-digit amount rendering as the CSV sink.
type JSONLSink struct {
	w io.Writer
}

// NewJSONLSink creates a sink writing JSONL records to w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{w: w}
}

// WriteAccounts writes one JSON object per account.
func (s *JSONLSink) WriteAccounts(accounts iter.Seq[*Account]) error {
	for a := range accounts {
		var w jsonObjectWriter
		w.Append("client", a.Client)
		w.Append("available", a.Available.StringFixed(4))
		w.Append("held", a.Held.StringFixed(4))
		w.Append("total", a.Total.StringFixed(4))
		w.Append("locked", a.Locked)
		data, err := w.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot marshal account %d: %w", a.Client, err)
		}
		if _, err := s.w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write account %d: %w", a.Client, err)
		}
	}
	return nil
}
