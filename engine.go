package payments

import (
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Engine is the transaction-state engine. It consumes transactions one at a
// time, in log order, and maintains the account balances and the history
// index used to resolve dispute, resolve and chargeback references.
//
// The engine owns all of its state; callers share nothing but the
// transactions they feed it.
type Engine struct {
	accounts map[uint16]*Account
	history  map[uint16]map[uint32][]Transaction
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		accounts: make(map[uint16]*Account),
		history:  make(map[uint16]map[uint32][]Transaction),
	}
}

// Apply mutates account state according to the transaction type, then
// records the transaction in the history index whether or not it had any
// effect. It never fails: transactions that violate a business rule (unknown
// reference, insufficient funds, resolve without dispute) are dropped
// silently.
func (e *Engine) Apply(tx Transaction) {
	switch tx.Type {
	case Deposit:
		e.applyDeposit(tx)
	case Withdrawal:
		e.applyWithdrawal(tx)
	case Dispute:
		e.applyDispute(tx)
	case Resolve:
		e.applyResolve(tx)
	case Chargeback:
		e.applyChargeback(tx)
	}
	e.record(tx)
}

// account returns the account for a client, creating it with zero balances
// on first reference.
func (e *Engine) account(client uint16) *Account {
	a, ok := e.accounts[client]
	if !ok {
		a = newAccount(client)
		e.accounts[client] = a
	}
	return a
}

func (e *Engine) applyDeposit(tx Transaction) {
	a := e.account(tx.Client)
	a.Available = a.Available.Add(tx.AmountOrZero())
	a.recalcTotal()
}

func (e *Engine) applyWithdrawal(tx Transaction) {
	a, ok := e.accounts[tx.Client]
	if !ok {
		return
	}
	amount := tx.AmountOrZero()
	if a.Available.LessThan(amount) {
		return
	}
	a.Available = a.Available.Sub(amount)
	a.recalcTotal()
}

func (e *Engine) applyDispute(tx Transaction) {
	amount, ok := e.referencedAmount(tx.Client, tx.Tx, false)
	if !ok {
		return
	}
	a := e.account(tx.Client)
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
	a.recalcTotal()
}

func (e *Engine) applyResolve(tx Transaction) {
	amount, ok := e.referencedAmount(tx.Client, tx.Tx, true)
	if !ok {
		return
	}
	a, ok := e.accounts[tx.Client]
	if !ok {
		return
	}
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
	a.recalcTotal()
}

func (e *Engine) applyChargeback(tx Transaction) {
	amount, ok := e.referencedAmount(tx.Client, tx.Tx, true)
	if !ok {
		return
	}
	a, ok := e.accounts[tx.Client]
	if !ok {
		return
	}
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Sub(amount)
	a.Locked = true
	a.recalcTotal()
}

// referencedAmount resolves a dispute, resolve or chargeback reference
// against the history index. It returns false when the (client, tx) bucket
// does not exist, or when needsDispute is set and the bucket holds no prior
// dispute. The amount is taken from the first funding transaction found in
// the bucket, in insertion order; a bucket without one, or a funding
// transaction without an amount, reads as zero.
func (e *Engine) referencedAmount(client uint16, tx uint32, needsDispute bool) (decimal.Decimal, bool) {
	bucket, ok := e.history[client][tx]
	if !ok {
		return decimal.Zero, false
	}
	if needsDispute && !slices.ContainsFunc(bucket, func(t Transaction) bool { return t.Type == Dispute }) {
		return decimal.Zero, false
	}
	for _, t := range bucket {
		if t.Type.IsFunding() {
			return t.AmountOrZero(), true
		}
	}
	return decimal.Zero, true
}

// record appends the transaction to its (client, tx) history bucket. Every
// applied transaction is recorded, including the ones dropped as no-ops.
func (e *Engine) record(tx Transaction) {
	byTx, ok := e.history[tx.Client]
	if !ok {
		byTx = make(map[uint32][]Transaction)
		e.history[tx.Client] = byTx
	}
	byTx[tx.Tx] = append(byTx[tx.Tx], tx)
}

// Accounts iterates over all accounts in client id order.
func (e *Engine) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		clients := slices.Collect(maps.Keys(e.accounts))
		slices.Sort(clients)
		for _, client := range clients {
			if !yield(e.accounts[client]) {
				return
			}
		}
	}
}

// Account returns the account for a client, or false if no transaction has
// created it.
func (e *Engine) Account(client uint16) (*Account, bool) {
	a, ok := e.accounts[client]
	return a, ok
}
