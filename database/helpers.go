package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Transaction executes fn within a database transaction. The transaction is
// rolled back when fn returns an error or panics.
func Transaction(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return fmt.Errorf("database instance not initialized")
	}

	return db.RunInTx(ctx, nil, fn)
}

// FindByID is a helper to find a record by ID
func FindByID[T any](ctx context.Context, db bun.IDB, column string, id any) (*T, error) {
	return Query[T](db).Where(column, id).First(ctx)
}

// DeleteByID is a helper to delete a record by ID
func DeleteByID[T any](ctx context.Context, db bun.IDB, column string, id any) (int, error) {
	return Query[T](db).Where(column, id).Delete(ctx)
}
