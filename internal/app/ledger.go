package app

import "context"

// Ledger is the external value-transfer collaborator. The core computes
// amounts and instructs the ledger inside the same transaction as the
// state change; it never holds balances itself.
type Ledger interface {
	Charge(ctx context.Context, payer, payee string, amount int64, memo string) error
}
