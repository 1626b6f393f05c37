package payments

import "github.com/shopspring/decimal"

// Account is the running balance aggregate for a single client.
//
// Total is derived: it is recomputed as Available + Held after every
// mutation and never drifts from its components. Locked is set by a
// chargeback and never reset; it is advisory state surfaced in the output,
// it does not block further transactions.
type Account struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

func newAccount(client uint16) *Account {
	return &Account{Client: client}
}

func (a *Account) recalcTotal() {
	a.Total = a.Available.Add(a.Held)
}
