// Package payments implements a batch payments engine that turns a
// chronological log of per-client transaction records into a final balance
// snapshot per client account.
//
// The core functionalities include:
//   - Ledger Engine: applying deposits, withdrawals, disputes, resolves and
//     chargebacks one at a time, in log order, against a set of lazily
//     created client accounts.
//   - History Index: an append-only record of every transaction seen per
//     (client, tx) pair, used to resolve later dispute, resolve and
//     chargeback references.
//   - Data Sources and Sinks: small contracts for producing the transaction
//     sequence (CSV file, in-memory slice) and for rendering the final
//     account snapshot (CSV, JSONL).
//
// This package serves as the foundational logic for the `pay` command-line
// tool. All balance arithmetic is fixed-point decimal; output amounts are
// rendered with exactly four fractional digits.
package payments
