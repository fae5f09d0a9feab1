package repositories

import (
	"context"
)

// UnitOfWork runs multi-repository mutations atomically. Invariant checks
// that depend on roster counts (last owner, last admin) must run inside Do
// together with the write they guard.
type UnitOfWork interface {
	// Do executes fn within a transaction scope; repositories called with
	// the derived ctx join that transaction.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
