package services

import (
	"context"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func newTestProductService(t *testing.T) (*ProductService, *fakeProductStore, *lib.FakeClock, *fakeCatalogCache) {
	t.Helper()
	store := newFakeProductStore()
	clock := lib.NewFakeClock(epoch)
	cache := newFakeCatalogCache()
	return NewProductService(newTestLogger(), store, clock, cache), store, clock, cache
}

func productRequest(name string, price float64, discount *float64) *structs.ProductRequest {
	return &structs.ProductRequest{
		Name:          name,
		Description:   "descrição",
		Category:      "Masculino",
		Price:         &price,
		DiscountPrice: discount,
		ImageURL:      "images/item.jpg",
	}
}

func withCategory(req *structs.ProductRequest, category string) *structs.ProductRequest {
	req.Category = category
	return req
}

func withImage(req *structs.ProductRequest, url string) *structs.ProductRequest {
	req.ImageURL = url
	return req
}

func TestCreateProduct(t *testing.T) {
	svc, store, _, _ := newTestProductService(t)
	ctx := context.Background()

	view, err := svc.CreateProduct(ctx, productRequest("Hoodie", 169.9, ptr(119.9)))
	require.NoError(t, err)

	assert.NotZero(t, view.ID)
	assert.Equal(t, "masculino", view.Category)
	assert.True(t, view.IsActive)
	assert.Equal(t, epoch, view.CreatedAt)
	assert.Equal(t, epoch, view.UpdatedAt)
	require.NotNil(t, view.DiscountPercent)
	assert.Equal(t, 29, *view.DiscountPercent)
	assert.InDelta(t, 119.9, view.FinalPrice, 1e-9)

	count, _ := store.Count(ctx)
	assert.Equal(t, 1, count)
}

func TestCreateProduct_TrimsTextFields(t *testing.T) {
	svc, _, _, _ := newTestProductService(t)

	req := productRequest("  Hoodie  ", 169.9, nil)
	req.Category = "  Feminino "
	req.ImageURL = " images/item.jpg "

	view, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Hoodie", view.Name)
	assert.Equal(t, "feminino", view.Category)
	assert.Equal(t, "images/item.jpg", view.ImageURL)
}

func TestCreateProduct_ExplicitInactive(t *testing.T) {
	svc, _, _, _ := newTestProductService(t)

	req := productRequest("Boné", 79.9, nil)
	req.IsActive = ptr(false)

	view, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, view.IsActive)
}

// TestCreateProduct_RejectsInvalid verifies rejected requests never reach the store.
func TestCreateProduct_RejectsInvalid(t *testing.T) {
	svc, store, _, _ := newTestProductService(t)
	ctx := context.Background()

	cases := map[string]*structs.ProductRequest{
		"discount equal to price": productRequest("Hoodie", 100, ptr(100.0)),
		"discount above price":    productRequest("Hoodie", 100, ptr(150.0)),
		"short name":              productRequest("Ho", 100, nil),
		"negative price":          productRequest("Hoodie", -1, nil),
		"zero discount":           productRequest("Hoodie", 100, ptr(0.0)),
		"padded short name":       productRequest("  ab  ", 100, nil),
		"padded short category":   withCategory(productRequest("Hoodie", 100, nil), "  xy  "),
		"blank image":             withImage(productRequest("Hoodie", 100, nil), "   "),
		"price overflow":          productRequest("Hoodie", 100000000, nil),
	}

	for name, req := range cases {
		_, err := svc.CreateProduct(ctx, req)
		assert.True(t, lib.IsValidationError(err), name)
	}

	count, _ := store.Count(ctx)
	assert.Zero(t, count)
	assert.Zero(t, store.writes)
}

func TestUpdateProduct(t *testing.T) {
	svc, _, clock, _ := newTestProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, productRequest("Hoodie", 169.9, nil))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	req := productRequest("Hoodie Premium", 199.9, ptr(149.9))
	req.Featured = true

	updated, err := svc.UpdateProduct(ctx, created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Hoodie Premium", updated.Name)
	assert.True(t, updated.Featured)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.IsActive)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _, _, _ := newTestProductService(t)

	_, err := svc.UpdateProduct(context.Background(), 404, productRequest("Hoodie", 10, nil))
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestPatchDiscount(t *testing.T) {
	svc, _, _, _ := newTestProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, productRequest("Hoodie", 169.9, nil))
	require.NoError(t, err)

	discounted, err := svc.PatchDiscount(ctx, created.ID, ptr(119.9))
	require.NoError(t, err)
	require.NotNil(t, discounted.DiscountPercent)
	assert.Equal(t, 29, *discounted.DiscountPercent)

	_, err = svc.PatchDiscount(ctx, created.ID, ptr(169.9))
	assert.True(t, lib.IsValidationError(err))

	_, err = svc.PatchDiscount(ctx, created.ID, ptr(-5.0))
	assert.True(t, lib.IsValidationError(err))

	cleared, err := svc.PatchDiscount(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.DiscountPrice)
	assert.Nil(t, cleared.DiscountPercent)
	assert.InDelta(t, 169.9, cleared.FinalPrice, 1e-9)

	_, err = svc.PatchDiscount(ctx, 999, nil)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

// TestToggleActive_Twice verifies toggling twice restores the flag and still advances updatedAt.
func TestToggleActive_Twice(t *testing.T) {
	svc, _, _, _ := newTestProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, productRequest("Hoodie", 169.9, nil))
	require.NoError(t, err)

	first, err := svc.ToggleActive(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	second, err := svc.ToggleActive(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, second.IsActive)

	// the clock never moved, timestamps must still be strictly increasing
	assert.True(t, first.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestDeleteProduct(t *testing.T) {
	svc, store, _, _ := newTestProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, productRequest("Hoodie", 169.9, nil))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), lib.ErrNotFound)

	count, _ := store.Count(ctx)
	assert.Zero(t, count)
}

// TestGetProduct_InactiveVisibility verifies inactive products are hidden unless requested.
func TestGetProduct_InactiveVisibility(t *testing.T) {
	svc, _, _, _ := newTestProductService(t)
	ctx := context.Background()

	req := productRequest("Hoodie", 169.9, nil)
	req.IsActive = ptr(false)
	created, err := svc.CreateProduct(ctx, req)
	require.NoError(t, err)

	_, err = svc.GetProduct(ctx, created.ID, false)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	view, err := svc.GetProduct(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
}

func TestListProducts_FiltersAndOrder(t *testing.T) {
	svc, _, clock, _ := newTestProductService(t)
	ctx := context.Background()

	plain, err := svc.CreateProduct(ctx, productRequest("Cargo Relaxed", 199.9, nil))
	require.NoError(t, err)
	clock.Advance(time.Second)

	featuredReq := productRequest("Hoodie Oversized", 169.9, ptr(119.9))
	featuredReq.Featured = true
	featured, err := svc.CreateProduct(ctx, featuredReq)
	require.NoError(t, err)
	clock.Advance(time.Second)

	hiddenReq := productRequest("Jaqueta Oculta", 299.9, nil)
	hiddenReq.IsActive = ptr(false)
	hidden, err := svc.CreateProduct(ctx, hiddenReq)
	require.NoError(t, err)
	clock.Advance(time.Second)

	newer, err := svc.CreateProduct(ctx, productRequest("Sneaker Chunky", 289.9, nil))
	require.NoError(t, err)

	public, err := svc.ListProducts(ctx, structs.CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{featured.ID, newer.ID, plain.ID}, viewIDs(public))

	all, err := svc.ListProducts(ctx, structs.CatalogFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Contains(t, viewIDs(all), hidden.ID)

	discounted, err := svc.ListProducts(ctx, structs.CatalogFilter{Discounted: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{featured.ID}, viewIDs(discounted))

	limited, err := svc.ListProducts(ctx, structs.CatalogFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := svc.ListProducts(ctx, structs.CatalogFilter{Category: "feminino"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// TestListProducts_CacheInvalidation verifies public listings are cached and dropped on mutation.
func TestListProducts_CacheInvalidation(t *testing.T) {
	svc, _, _, cache := newTestProductService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productRequest("Hoodie", 169.9, nil))
	require.NoError(t, err)

	_, err = svc.ListProducts(ctx, structs.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, cache.entries, 1)

	// admin listings are never cached
	_, err = svc.ListProducts(ctx, structs.CatalogFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, cache.entries, 1)

	before := cache.invalidations
	_, err = svc.CreateProduct(ctx, productRequest("Boné", 79.9, nil))
	require.NoError(t, err)
	assert.Equal(t, before+1, cache.invalidations)
	assert.Empty(t, cache.entries)

	list, err := svc.ListProducts(ctx, structs.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// TestListProducts_MutationDuringLoad verifies a listing read before a toggle is
// returned to its caller but never cached.
func TestListProducts_MutationDuringLoad(t *testing.T) {
	svc, store, _, cache := newTestProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, productRequest("Hoodie", 169.9, nil))
	require.NoError(t, err)

	store.onList = func() {
		store.onList = nil
		_, err := svc.ToggleActive(ctx, created.ID)
		require.NoError(t, err)
	}

	list, err := svc.ListProducts(ctx, structs.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Empty(t, cache.entries)

	list, err = svc.ListProducts(ctx, structs.CatalogFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListProducts_CallerCancelDoesNotFailLoad(t *testing.T) {
	svc, store, _, cache := newTestProductService(t)

	_, err := svc.CreateProduct(context.Background(), productRequest("Hoodie", 169.9, nil))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onList = cancel

	list, err := svc.ListProducts(ctx, structs.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Len(t, cache.entries, 1)
}

func TestNextUpdatedAt(t *testing.T) {
	assert.Equal(t, epoch.Add(time.Second), nextUpdatedAt(epoch.Add(time.Second), epoch))
	assert.Equal(t, epoch.Add(time.Microsecond), nextUpdatedAt(epoch, epoch))
	assert.Equal(t, epoch.Add(time.Microsecond), nextUpdatedAt(epoch.Add(-time.Hour), epoch))
}

func viewIDs(views []structs.ProductView) []int64 {
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}
