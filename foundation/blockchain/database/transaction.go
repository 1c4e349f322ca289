package database

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/objecthash"
)

// Tx represents the transfer of an amount between two parties. Values are
// compared and hashed by value.
type Tx struct {
	Sender    string `json:"sender"`    // Party the amount is taken from.
	Recipient string `json:"recipient"` // Party receiving the amount.
	Amount    uint64 `json:"amount"`    // Amount being transferred.
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount uint64) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// HashFields implements the objecthash.Hashable interface.
func (tx Tx) HashFields() []objecthash.Field {
	return []objecthash.Field{
		{Name: "sender", Value: tx.Sender},
		{Name: "recipient", Value: tx.Recipient},
		{Name: "amount", Value: tx.Amount},
	}
}

// Hash returns the digest for the transaction.
func (tx Tx) Hash() Hash {
	return objecthash.Digest(tx)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%d", tx.Sender, tx.Recipient, tx.Amount)
}
