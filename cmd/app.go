// Package cmd implements the CLI application to process payment transaction
// logs into account snapshots.
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	payments "github.com/lucaspere/payment-engine"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&processCmd{}, "engine")
	c.Register(&summaryCmd{}, "engine")

	c.Register(&txCmd{}, "transactions")
}

// runEngine feeds every transaction from the source into a fresh engine.
func runEngine(source payments.Source) (*payments.Engine, error) {
	transactions, err := source.Transactions()
	if err != nil {
		return nil, err
	}
	engine := payments.NewEngine()
	for tx := range transactions {
		engine.Apply(tx)
	}
	return engine, nil
}

// readTransactions opens the transactions file and collects the well-formed
// transactions it contains. Malformed records have already been logged and
// skipped by the source.
func readTransactions(path string) ([]payments.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open transactions file %q: %w", path, err)
	}
	defer f.Close()

	seq, err := payments.NewCSVSource(f).Transactions()
	if err != nil {
		return nil, fmt.Errorf("cannot read transactions file %q: %w", path, err)
	}
	return slices.Collect(seq), nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// markdown when the terminal renderer is not available.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
