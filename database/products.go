package database

import (
	"context"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"lojastreet_server/structs/tables"

	"github.com/uptrace/bun"
)

// ProductRepository persists catalog rows.
type ProductRepository struct {
	db bun.IDB
}

func NewProductRepository(db bun.IDB) *ProductRepository {
	return &ProductRepository{db: db}
}

// CatalogSelect applies a catalog query to a product builder.
func CatalogSelect(db bun.IDB, cq structs.CatalogQuery) *QueryBuilder[tables.Product] {
	q := Query[tables.Product](db)

	if cq.Category != "" {
		q = q.WhereOp("p.category", "=", cq.Category)
	}
	if cq.DiscountedOnly {
		q = q.WhereNotNull("p.discount_price")
	}
	if cq.FeaturedOnly {
		q = q.Where("p.featured", true)
	}
	if cq.ActiveOnly {
		q = q.Where("p.is_active", true)
	}

	for _, field := range cq.Order {
		direction := ASC
		if field.Descending {
			direction = DESC
		}
		q = q.OrderBy("p."+field.Column, direction)
	}

	if cq.Limit > 0 {
		q = q.Limit(cq.Limit)
	}

	return q
}

func (r *ProductRepository) List(ctx context.Context, cq structs.CatalogQuery) ([]tables.Product, error) {
	products, err := CatalogSelect(r.db, cq).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return products, nil
}

// FindByID returns lib.ErrNotFound when no row has the id.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := FindByID[tables.Product](ctx, r.db, "p.id", id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *tables.Product) error {
	if _, err := Query[tables.Product](r.db).Insert(ctx, product); err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

// InsertBatch writes all products in a single transaction.
func (r *ProductRepository) InsertBatch(ctx context.Context, products []tables.Product) error {
	err := Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		_, err := Query[tables.Product](tx).InsertMany(ctx, products)
		return err
	})
	return lib.MapPgError(err)
}

// Update writes every mutable column of product.
func (r *ProductRepository) Update(ctx context.Context, product *tables.Product) error {
	rows, err := Query[tables.Product](r.db).
		Where("p.id", product.ID).
		Update(ctx, map[string]any{
			"name":           product.Name,
			"description":    product.Description,
			"price":          product.Price,
			"discount_price": product.DiscountPrice,
			"image_url":      product.ImageURL,
			"category":       product.Category,
			"featured":       product.Featured,
			"is_active":      product.IsActive,
			"updated_at":     product.UpdatedAt,
		})
	if err != nil {
		return lib.MapPgError(err)
	}
	if rows == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	rows, err := DeleteByID[tables.Product](ctx, r.db, "p.id", id)
	if err != nil {
		return lib.MapPgError(err)
	}
	if rows == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	count, err := Query[tables.Product](r.db).Count(ctx)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	return count, nil
}
