package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// withTimeout applies the builder timeout to ctx when one is set
func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// All executes the query and returns all matching records retrying connect failures
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := retryRead(ctx, readBackoff, func() error {
		data = nil // Reset on retry
		return q.buildBunQuery().Scan(ctx, &data)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	if data == nil {
		data = []T{}
	}
	return data, nil
}

// First executes the query and returns the first matching record retrying connect failures
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := retryRead(ctx, readBackoff, func() error {
		return q.buildBunQuery().Limit(1).Scan(ctx, &data)
	})

	if err != nil {
		// Return nil for no rows instead of error
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records retrying connect failures
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := retryRead(ctx, readBackoff, func() error {
		var err error
		count, err = q.buildBunQuery().Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Insert inserts a new record and returns it. Writes are never replayed.
// Generated columns such as the primary key are written back into data.
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	query := q.db.NewInsert().Model(data)

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	if _, err := query.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records in one statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	query := q.db.NewInsert().Model(&data)

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	if _, err := query.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update sets the given columns on records matching the query
func (q *QueryBuilder[T]) Update(ctx context.Context, data map[string]any) (int, error) {
	start := time.Now()

	if len(data) == 0 {
		return 0, errors.New("update requires at least one column")
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	query := q.db.NewUpdate().Model((*T)(nil))

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	for key, value := range data {
		query = query.Set("? = ?", bun.Ident(key), value)
	}

	res, err := applyWheres(query, q.wheres).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	rowsAffected, _ := res.RowsAffected()
	return int(rowsAffected), nil
}

// Delete deletes records matching the query
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	query := q.db.NewDelete().Model((*T)(nil))

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	res, err := applyWheres(query, q.wheres).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	rowsAffected, _ := res.RowsAffected()
	return int(rowsAffected), nil
}
