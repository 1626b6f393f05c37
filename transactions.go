package payments

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType is a typed string identifying a transaction record.
type TransactionType string

// Transaction types appearing in the input log.
const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Dispute    TransactionType = "dispute"
	Resolve    TransactionType = "resolve"
	Chargeback TransactionType = "chargeback"
)

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// IsFunding reports whether the type carries its own amount and moves funds
// in or out of an account (deposit, withdrawal). The other types reference a
// prior funding transaction by its id instead.
func (t TransactionType) IsFunding() bool {
	return t == Deposit || t == Withdrawal
}

// Transaction is a single immutable record from the input log.
//
// Tx is unique among funding transactions and is what later dispute, resolve
// and chargeback records reference. Amount is only present on funding
// transactions; on the reference types it is absent (invalid).
type Transaction struct {
	Type   TransactionType
	Client uint16
	Tx     uint32
	Amount decimal.NullDecimal
}

// NewDeposit creates a deposit transaction.
func NewDeposit(client uint16, tx uint32, amount decimal.Decimal) Transaction {
	return Transaction{Type: Deposit, Client: client, Tx: tx, Amount: decimal.NewNullDecimal(amount)}
}

// NewWithdrawal creates a withdrawal transaction.
func NewWithdrawal(client uint16, tx uint32, amount decimal.Decimal) Transaction {
	return Transaction{Type: Withdrawal, Client: client, Tx: tx, Amount: decimal.NewNullDecimal(amount)}
}

// NewDispute creates a dispute referencing the funding transaction tx.
func NewDispute(client uint16, tx uint32) Transaction {
	return Transaction{Type: Dispute, Client: client, Tx: tx}
}

// NewResolve creates a resolve referencing the funding transaction tx.
func NewResolve(client uint16, tx uint32) Transaction {
	return Transaction{Type: Resolve, Client: client, Tx: tx}
}

// NewChargeback creates a chargeback referencing the funding transaction tx.
func NewChargeback(client uint16, tx uint32) Transaction {
	return Transaction{Type: Chargeback, Client: client, Tx: tx}
}

// AmountOrZero returns the transaction amount, or zero when absent.
func (t Transaction) AmountOrZero() decimal.Decimal {
	if !t.Amount.Valid {
		return decimal.Zero
	}
	return t.Amount.Decimal
}
