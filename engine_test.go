package payments

import (
	"testing"

	"github.com/shopspring/decimal"
)

// assertAccount checks every observable field of a client's account.
func assertAccount(t *testing.T, e *Engine, client uint16, available, held, total string, locked bool) {
	t.Helper()
	a, ok := e.Account(client)
	if !ok {
		t.Fatalf("account %d does not exist", client)
	}
	if want := decimal.RequireFromString(available); !a.Available.Equal(want) {
		t.Errorf("account %d available = %s, want %s", client, a.Available, want)
	}
	if want := decimal.RequireFromString(held); !a.Held.Equal(want) {
		t.Errorf("account %d held = %s, want %s", client, a.Held, want)
	}
	if want := decimal.RequireFromString(total); !a.Total.Equal(want) {
		t.Errorf("account %d total = %s, want %s", client, a.Total, want)
	}
	if a.Locked != locked {
		t.Errorf("account %d locked = %v, want %v", client, a.Locked, locked)
	}
}

func apply(e *Engine, transactions ...Transaction) {
	for _, tx := range transactions {
		e.Apply(tx)
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEngine_Deposit(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		e := NewEngine()
		e.Apply(NewDeposit(1, 1, d("100.0")))
		assertAccount(t, e, 1, "100.0", "0", "100.0", false)
	})

	t.Run("multiple deposits accumulate", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("50.0")),
			NewDeposit(1, 2, d("75.5")),
		)
		assertAccount(t, e, 1, "125.5", "0", "125.5", false)
	})

	t.Run("zero amount creates an empty account", func(t *testing.T) {
		e := NewEngine()
		e.Apply(NewDeposit(1, 1, d("0.0")))
		assertAccount(t, e, 1, "0", "0", "0", false)
	})

	t.Run("missing amount reads as zero", func(t *testing.T) {
		e := NewEngine()
		e.Apply(Transaction{Type: Deposit, Client: 1, Tx: 1})
		assertAccount(t, e, 1, "0", "0", "0", false)
	})
}

func TestEngine_Withdrawal(t *testing.T) {
	t.Run("sufficient funds", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewWithdrawal(1, 2, d("30.0")),
		)
		assertAccount(t, e, 1, "70.0", "0", "70.0", false)
	})

	t.Run("insufficient funds is a no-op", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("50.0")),
			NewWithdrawal(1, 2, d("100.0")),
		)
		assertAccount(t, e, 1, "50.0", "0", "50.0", false)
	})

	t.Run("nonexistent account creates no account", func(t *testing.T) {
		e := NewEngine()
		e.Apply(NewWithdrawal(1, 1, d("50.0")))
		if _, ok := e.Account(1); ok {
			t.Error("withdrawal against a missing account should not create it")
		}
	})
}

func TestEngine_Dispute(t *testing.T) {
	t.Run("moves funds to held", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewDispute(1, 1),
		)
		assertAccount(t, e, 1, "0", "100.0", "100.0", false)
	})

	t.Run("unknown transaction is a no-op", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewDispute(1, 999),
		)
		assertAccount(t, e, 1, "100.0", "0", "100.0", false)
	})

	t.Run("disputed withdrawal can drive available negative", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewWithdrawal(1, 2, d("50.0")),
			NewDispute(1, 1),
		)
		assertAccount(t, e, 1, "-50.0", "100.0", "50.0", false)
	})
}

func TestEngine_Resolve(t *testing.T) {
	t.Run("returns funds to available", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewDispute(1, 1),
			NewResolve(1, 1),
		)
		assertAccount(t, e, 1, "100.0", "0", "100.0", false)
	})

	t.Run("without prior dispute is a no-op", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewResolve(1, 1),
		)
		assertAccount(t, e, 1, "100.0", "0", "100.0", false)
	})

	t.Run("unknown transaction is a no-op", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewResolve(1, 999),
		)
		assertAccount(t, e, 1, "100.0", "0", "100.0", false)
	})
}

func TestEngine_Chargeback(t *testing.T) {
	t.Run("debits held and available and locks the account", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewDispute(1, 1),
			NewChargeback(1, 1),
		)
		assertAccount(t, e, 1, "-100.0", "0", "-100.0", true)
	})

	t.Run("without prior dispute is a no-op", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewChargeback(1, 1),
		)
		assertAccount(t, e, 1, "100.0", "0", "100.0", false)
	})

	t.Run("lock is advisory, later transactions still apply", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewDispute(1, 1),
			NewChargeback(1, 1),
			NewDeposit(1, 2, d("150.0")),
			NewWithdrawal(1, 3, d("25.0")),
		)
		assertAccount(t, e, 1, "25.0", "0", "25.0", true)
	})

	t.Run("duplicate chargebacks re-check preconditions", func(t *testing.T) {
		e := NewEngine()
		apply(e,
			NewDeposit(1, 1, d("100.0")),
			NewDispute(1, 1),
			NewChargeback(1, 1),
			NewChargeback(1, 1),
		)
		// The second chargeback still finds a dispute in the bucket, so it
		// debits again, exactly as re-checking the preconditions dictates.
		assertAccount(t, e, 1, "-200.0", "-100.0", "-300.0", true)
	})
}

func TestEngine_MultipleClients(t *testing.T) {
	e := NewEngine()
	apply(e,
		NewDeposit(1, 1, d("100.0")),
		NewDeposit(2, 2, d("200.0")),
	)
	assertAccount(t, e, 1, "100.0", "0", "100.0", false)
	assertAccount(t, e, 2, "200.0", "0", "200.0", false)
}

func TestEngine_Accounts_Ordered(t *testing.T) {
	e := NewEngine()
	apply(e,
		NewDeposit(7, 1, d("1")),
		NewDeposit(2, 2, d("1")),
		NewDeposit(5, 3, d("1")),
	)
	var clients []uint16
	for a := range e.Accounts() {
		clients = append(clients, a.Client)
	}
	want := []uint16{2, 5, 7}
	if len(clients) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(clients), len(want))
	}
	for i := range want {
		if clients[i] != want[i] {
			t.Errorf("accounts[%d].Client = %d, want %d", i, clients[i], want[i])
		}
	}
}

// TestEngine_Invariants drives a mixed sequence, including invalid
// references and rejected operations, and checks after every apply that
// total stays the sum of available and held, and that locked never resets.
func TestEngine_Invariants(t *testing.T) {
	sequence := []Transaction{
		NewDeposit(1, 1, d("10.0")),
		NewWithdrawal(1, 2, d("2.5")),
		NewDispute(1, 1),
		NewResolve(1, 1),
		NewDeposit(1, 5, d("20.0")),
		NewDeposit(2, 3, d("5.0")),
		NewDispute(2, 3),
		NewChargeback(2, 3),
		NewDeposit(2, 6, d("1.0")),
		NewDeposit(3, 4, d("100.0")),
		NewWithdrawal(3, 7, d("50.0")),
		NewDispute(3, 4),
		NewResolve(3, 999),
		NewChargeback(3, 888),
		NewWithdrawal(3, 9, d("1000.0")),
	}

	e := NewEngine()
	wasLocked := map[uint16]bool{}
	for i, tx := range sequence {
		e.Apply(tx)
		for a := range e.Accounts() {
			if !a.Total.Equal(a.Available.Add(a.Held)) {
				t.Fatalf("after transaction %d: account %d total %s != available %s + held %s",
					i, a.Client, a.Total, a.Available, a.Held)
			}
			if wasLocked[a.Client] && !a.Locked {
				t.Fatalf("after transaction %d: account %d lock was reset", i, a.Client)
			}
			wasLocked[a.Client] = a.Locked
		}
	}

	assertAccount(t, e, 1, "27.5", "0", "27.5", false)
	assertAccount(t, e, 2, "-4.0", "0", "-4.0", true)
	assertAccount(t, e, 3, "-50.0", "100.0", "50.0", false)
}
