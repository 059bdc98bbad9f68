package services

import (
	"context"
	"fmt"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"lojastreet_server/structs/tables"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type ProductService struct {
	logger *gecho.Logger
	store  ProductStore
	clock  lib.Clock
	cache  CatalogCache
	flight singleflight.Group // collapses concurrent cache misses per key

	// generation is bumped on every catalog mutation. A load that started
	// under an older generation must not be cached.
	generation atomic.Uint64
}

// NewProductService wires the catalog. cache may be nil.
func NewProductService(logger *gecho.Logger, store ProductStore, clock lib.Clock, cache CatalogCache) *ProductService {
	if clock == nil {
		clock = lib.RealClock{}
	}
	return &ProductService{
		logger: logger,
		store:  store,
		clock:  clock,
		cache:  cache,
	}
}

// ListProducts returns the catalog for a filter. Public listings are served
// from the cache when possible.
func (ps *ProductService) ListProducts(ctx context.Context, filter structs.CatalogFilter) ([]structs.ProductView, error) {
	startTime := time.Now()
	query := BuildCatalogQuery(filter)

	cacheable := ps.cache != nil && query.ActiveOnly
	key := catalogCacheKey(query)
	if cacheable {
		if products, ok := ps.cache.GetCatalog(ctx, key); ok {
			ps.logger.Debug("Catalog served from cache", gecho.Field("key", key), gecho.Field("count", len(products)))
			return toProductViews(products), nil
		}
	}

	var products []tables.Product
	var err error
	if cacheable {
		gen := ps.generation.Load()
		var shared any
		shared, err, _ = ps.flight.Do(fmt.Sprintf("%d:%s", gen, key), func() (any, error) {
			// the load is shared, so one caller going away must not cancel it
			loadCtx := context.WithoutCancel(ctx)
			loaded, err := ps.store.List(loadCtx, query)
			if err != nil {
				return nil, err
			}
			ps.storeCatalog(loadCtx, gen, key, loaded)
			return loaded, nil
		})
		if err == nil {
			products = shared.([]tables.Product)
		}
	} else {
		products, err = ps.store.List(ctx, query)
	}
	if err != nil {
		ps.logger.Error("Failed to list products", gecho.Field("error", err), gecho.Field("filter", filter))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	ps.logger.Debug("Listed products",
		gecho.Field("count", len(products)),
		gecho.Field("active_only", query.ActiveOnly),
		gecho.Field("duration", time.Since(startTime)),
	)

	return toProductViews(products), nil
}

// GetProduct returns a single product. Inactive products are reported as not
// found unless includeInactive is set.
func (ps *ProductService) GetProduct(ctx context.Context, id int64, includeInactive bool) (*structs.ProductView, error) {
	product, err := ps.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && !includeInactive {
		return nil, lib.ErrNotFound
	}

	view := ToProductView(product)
	return &view, nil
}

// CreateProduct validates and stores a new product.
func (ps *ProductService) CreateProduct(ctx context.Context, req *structs.ProductRequest) (*structs.ProductView, error) {
	price, discount, err := validateProductRequest(req)
	if err != nil {
		return nil, err
	}

	now := ps.clock.Now()
	product := &tables.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         price,
		DiscountPrice: discount,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Featured:      req.Featured,
		IsActive:      req.IsActive == nil || *req.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := ps.store.Insert(ctx, product); err != nil {
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", product.Name))
		return nil, err
	}

	ps.invalidateCatalog(ctx)
	ps.logger.Info("Product created", gecho.Field("product_id", product.ID), gecho.Field("name", product.Name))

	view := ToProductView(product)
	return &view, nil
}

// UpdateProduct replaces every editable field of an existing product.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, req *structs.ProductRequest) (*structs.ProductView, error) {
	price, discount, err := validateProductRequest(req)
	if err != nil {
		return nil, err
	}

	product, err := ps.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = price
	product.DiscountPrice = discount
	product.ImageURL = req.ImageURL
	product.Category = req.Category
	product.Featured = req.Featured
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	return ps.save(ctx, product, "update")
}

// PatchDiscount sets or clears the discount price. A nil value clears it.
func (ps *ProductService) PatchDiscount(ctx context.Context, id int64, discountPrice *float64) (*structs.ProductView, error) {
	product, err := ps.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	discount, err := checkDiscount(product.Price, discountPrice)
	if err != nil {
		return nil, err
	}
	product.DiscountPrice = discount

	return ps.save(ctx, product, "discount")
}

// ToggleActive flips the visibility flag.
func (ps *ProductService) ToggleActive(ctx context.Context, id int64) (*structs.ProductView, error) {
	product, err := ps.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsActive = !product.IsActive
	return ps.save(ctx, product, "toggle")
}

// DeleteProduct permanently removes a product.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := ps.store.Delete(ctx, id); err != nil {
		if !lib.IsNotFound(err) {
			ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		}
		return err
	}

	ps.invalidateCatalog(ctx)
	ps.logger.Info("Product deleted", gecho.Field("product_id", id))
	return nil
}

// save stamps updatedAt and writes the row
func (ps *ProductService) save(ctx context.Context, product *tables.Product, operation string) (*structs.ProductView, error) {
	product.UpdatedAt = nextUpdatedAt(ps.clock.Now(), product.UpdatedAt)

	if err := ps.store.Update(ctx, product); err != nil {
		if !lib.IsNotFound(err) {
			ps.logger.Error("Failed to update product",
				gecho.Field("error", err),
				gecho.Field("product_id", product.ID),
				gecho.Field("operation", operation),
			)
		}
		return nil, err
	}

	ps.invalidateCatalog(ctx)
	ps.logger.Info("Product updated", gecho.Field("product_id", product.ID), gecho.Field("operation", operation))

	view := ToProductView(product)
	return &view, nil
}

func (ps *ProductService) invalidateCatalog(ctx context.Context) {
	ps.generation.Add(1)
	if ps.cache != nil {
		ps.cache.InvalidateCatalog(ctx)
	}
}

// storeCatalog caches a listing loaded under gen. When a mutation lands while
// the entry is being written, the cache is cleared again.
func (ps *ProductService) storeCatalog(ctx context.Context, gen uint64, key string, products []tables.Product) {
	if ps.generation.Load() != gen {
		ps.logger.Debug("Skipping stale catalog load", gecho.Field("key", key))
		return
	}
	ps.cache.SetCatalog(ctx, key, products)
	if ps.generation.Load() != gen {
		ps.cache.InvalidateCatalog(ctx)
	}
}

// nextUpdatedAt keeps updatedAt strictly increasing even when the clock has
// not moved since the previous write.
func nextUpdatedAt(now, previous time.Time) time.Time {
	if !now.After(previous) {
		return previous.Add(time.Microsecond)
	}
	return now
}

// validateProductRequest normalises the text fields in place, then checks the
// body tags and the discount invariant. Lengths are measured after trimming.
func validateProductRequest(req *structs.ProductRequest) (decimal.Decimal, decimal.NullDecimal, error) {
	if req == nil {
		return decimal.Zero, decimal.NullDecimal{}, lib.NewValidationError("body", "is required")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = NormalizeCategory(req.Category)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if err := lib.ValidateStruct(req); err != nil {
		return decimal.Zero, decimal.NullDecimal{}, err
	}

	price := decimal.NewFromFloat(*req.Price).Round(2)
	discount, err := checkDiscount(price, req.DiscountPrice)
	if err != nil {
		return decimal.Zero, decimal.NullDecimal{}, err
	}

	return price, discount, nil
}

// checkDiscount enforces 0 < discount < price. A nil discount clears it.
func checkDiscount(price decimal.Decimal, discountPrice *float64) (decimal.NullDecimal, error) {
	if discountPrice == nil {
		return decimal.NullDecimal{}, nil
	}

	discount := decimal.NewFromFloat(*discountPrice).Round(2)
	if !discount.IsPositive() {
		return decimal.NullDecimal{}, lib.NewValidationError("discountPrice", "must be greater than 0")
	}
	if !discount.LessThan(price) {
		return decimal.NullDecimal{}, lib.NewValidationError("discountPrice", "must be lower than price")
	}

	return decimal.NewNullDecimal(discount), nil
}
