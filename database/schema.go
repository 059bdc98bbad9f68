package database

import (
	"context"
	"fmt"
	"lojastreet_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// tableCheck is a CHECK constraint kept in sync with the model rules.
type tableCheck struct {
	table string
	name  string
	expr  string
}

var productChecks = []tableCheck{
	{"products", "products_price_check", "price >= 0"},
	{"products", "products_discount_price_check", "discount_price IS NULL OR (discount_price > 0 AND discount_price < price)"},
}

// statements replaces the constraint so reruns pick up a changed expression.
func (c tableCheck) statements() []string {
	return []string{
		fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, c.table, c.name),
		fmt.Sprintf(`ALTER TABLE %q ADD CONSTRAINT %q CHECK (%s)`, c.table, c.name, c.expr),
	}
}

// CreateSchema creates the tables and indexes the server needs when they do
// not exist yet. Existing tables are left untouched apart from their CHECK
// constraints, which are replaced.
func CreateSchema(ctx context.Context, db *DB) error {
	models := []any{
		(*tables.Product)(nil),
		(*tables.AdminUser)(nil),
	}

	return Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range models {
			if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		indexes := []*bun.CreateIndexQuery{
			tx.NewCreateIndex().Model((*tables.Product)(nil)).Index("products_category_idx").Column("category").IfNotExists(),
			tx.NewCreateIndex().Model((*tables.Product)(nil)).Index("products_active_featured_idx").Column("is_active", "featured").IfNotExists(),
		}
		for _, index := range indexes {
			if _, err := index.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		for _, check := range productChecks {
			for _, stmt := range check.statements() {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to apply constraint %s: %w", check.name, err)
				}
			}
		}

		db.logger.Debug("Database schema ensured", gecho.Field("tables", len(models)), gecho.Field("checks", len(productChecks)))
		return nil
	})
}
