package repositories

import "context"

// TxFn is a unit of work; repositories called with the ctx it receives
// join the surrounding transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs units of work atomically
type TransactionManager interface {
	// ExecTx commits if fn returns nil and rolls back otherwise.
	// Nested calls reuse the outer transaction.
	ExecTx(ctx context.Context, fn TxFn) error
}
