// Package renderer renders transactions and account snapshots as markdown
// for terminal display.
package renderer

import (
	"bytes"
	"fmt"
	"iter"
	"strconv"

	"github.com/Rhymond/go-money"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	payments "github.com/lucaspere/payment-engine"
)

// Transaction renders a transaction to a one-line description.
func Transaction(tx payments.Transaction) string {
	switch tx.Type {
	case payments.Deposit:
		return fmt.Sprintf("Deposited %s for client %d (tx %d)", tx.AmountOrZero(), tx.Client, tx.Tx)
	case payments.Withdrawal:
		return fmt.Sprintf("Withdrew %s for client %d (tx %d)", tx.AmountOrZero(), tx.Client, tx.Tx)
	case payments.Dispute:
		return fmt.Sprintf("Disputed tx %d for client %d", tx.Tx, tx.Client)
	case payments.Resolve:
		return fmt.Sprintf("Resolved dispute on tx %d for client %d", tx.Tx, tx.Client)
	case payments.Chargeback:
		return fmt.Sprintf("Charged back tx %d for client %d", tx.Tx, tx.Client)
	default:
		return string(tx.Type)
	}
}

// Transactions renders the transaction list as a markdown table.
func Transactions(transactions []payments.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")

	rows := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		amount := ""
		if tx.Amount.Valid {
			amount = tx.Amount.Decimal.StringFixed(4)
		}
		rows = append(rows, []string{
			string(tx.Type),
			strconv.FormatUint(uint64(tx.Client), 10),
			strconv.FormatUint(uint64(tx.Tx), 10),
			amount,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Type", "Client", "Tx", "Amount"},
		Rows:   rows,
	})

	return doc.String()
}

// Snapshot renders the final account snapshot as a markdown table with an
// aggregate footer. When currency is a known ISO 4217 code the aggregate
// totals are formatted as money in that currency; the per-account rows keep
// the four-digit fixed rendering used by the sinks.
func Snapshot(accounts iter.Seq[*payments.Account], currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Account Snapshot")

	var rows [][]string
	var locked int
	held, total := decimal.Zero, decimal.Zero
	for a := range accounts {
		if a.Locked {
			locked++
		}
		held = held.Add(a.Held)
		total = total.Add(a.Total)
		rows = append(rows, []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.StringFixed(4),
			a.Held.StringFixed(4),
			a.Total.StringFixed(4),
			strconv.FormatBool(a.Locked),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Client", "Available", "Held", "Total", "Locked"},
		Rows:   rows,
	})

	doc.H2("Totals")
	doc.BulletList(
		fmt.Sprintf("%d accounts, %d locked", len(rows), locked),
		fmt.Sprintf("held: %s", formatAmount(held, currency)),
		fmt.Sprintf("total: %s", formatAmount(total, currency)),
	)

	return doc.String()
}

// formatAmount formats the amount with the go-money formatter for the given
// currency code. It falls back to the plain four-digit rendering when no
// currency is given, or when the code is unknown.
func formatAmount(v decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return v.StringFixed(4)
	}
	minor := v.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
