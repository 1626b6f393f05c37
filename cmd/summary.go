package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	payments "github.com/lucaspere/payment-engine"
	"github.com/lucaspere/payment-engine/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	currency string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the final account snapshot as a report" }
func (*summaryCmd) Usage() string {
	return `pay summary [-currency <code>] <transactions.csv>

  Processes the transaction log and displays the final account snapshot as a
  markdown report with aggregate totals.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "ISO 4217 code used to format the aggregate totals.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one transactions file.")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening transactions file %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	engine, err := runEngine(payments.NewCSVSource(in))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Snapshot(engine.Accounts(), c.currency))

	return subcommands.ExitSuccess
}
