package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	payments "github.com/lucaspere/payment-engine"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	output string
	format string
}

func (*processCmd) Name() string { return "process" }
func (*processCmd) Synopsis() string {
	return "process a transaction log into a final account snapshot"
}
func (*processCmd) Usage() string {
	return `pay process [-o <output>] [-format csv|jsonl] <transactions.csv>

  Reads the transaction log, applies every record in file order, and writes
  the final per-client account snapshot. Malformed records are logged to
  stderr and skipped; records rejected by a business rule (unknown reference,
  insufficient funds) are dropped silently.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to standard output.")
	f.StringVar(&c.format, "format", "csv", "Output format (csv, jsonl).")
}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	out := io.Writer(os.Stdout)
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	var sink payments.Sink
	switch c.format {
	case "csv":
		sink = payments.NewCSVSink(out)
	case "jsonl":
		sink = payments.NewJSONLSink(out)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q.\n", c.format)
		return subcommands.ExitUsageError
	}

	if err := sink.WriteAccounts(engine.Accounts()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
