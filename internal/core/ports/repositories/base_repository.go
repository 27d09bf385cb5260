package repositories

import "context"

// TransactionManager runs a function inside one database transaction. The
// transaction travels in the returned context; repository methods called
// with that context join it. The per-user settlement run and the in-run
// future-fund repayment share a transaction this way.
type TransactionManager interface {
	// WithTx begins a transaction, invokes fn with a transaction-scoped
	// context, and commits; any error from fn rolls the transaction back.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
