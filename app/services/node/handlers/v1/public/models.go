package public

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// newTx is the payload for staging a transaction. Amount is a pointer so
// a missing amount can be told apart from an amount of zero.
type newTx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    *uint64 `json:"amount" validate:"required"`
}

func (ntx newTx) toTx() database.Tx {
	return database.NewTx(ntx.Sender, ntx.Recipient, *ntx.Amount)
}

type staged struct {
	Message string `json:"message"`
	Index   uint64 `json:"index"`
}

type validity struct {
	Valid  bool `json:"valid"`
	Length int  `json:"length"`
}

type registerNodes struct {
	Nodes []string `json:"nodes" validate:"required,dive,required"`
}

type registered struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type resolved struct {
	Message  string           `json:"message"`
	Replaced bool             `json:"replaced"`
	Chain    []database.Block `json:"chain"`
}
