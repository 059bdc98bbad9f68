package services

import (
	"lojastreet_server/structs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCatalogQuery_Defaults(t *testing.T) {
	q := BuildCatalogQuery(structs.CatalogFilter{})

	assert.True(t, q.ActiveOnly)
	assert.Empty(t, q.Category)
	assert.False(t, q.FeaturedOnly)
	assert.False(t, q.DiscountedOnly)
	assert.Zero(t, q.Limit)
	assert.Equal(t, []structs.SortField{
		{Column: "featured", Descending: true},
		{Column: "updated_at", Descending: true},
		{Column: "id", Descending: true},
	}, q.Order)
}

func TestBuildCatalogQuery_Filters(t *testing.T) {
	q := BuildCatalogQuery(structs.CatalogFilter{
		Category:        "  Masculino ",
		Featured:        true,
		Discounted:      true,
		IncludeInactive: true,
		Limit:           8,
	})

	assert.False(t, q.ActiveOnly)
	assert.Equal(t, "masculino", q.Category)
	assert.True(t, q.FeaturedOnly)
	assert.True(t, q.DiscountedOnly)
	assert.Equal(t, 8, q.Limit)
}

func TestBuildCatalogQuery_Limit(t *testing.T) {
	assert.Equal(t, MaxCatalogLimit, BuildCatalogQuery(structs.CatalogFilter{Limit: 500}).Limit)
	assert.Equal(t, 100, BuildCatalogQuery(structs.CatalogFilter{Limit: 100}).Limit)
	assert.Zero(t, BuildCatalogQuery(structs.CatalogFilter{Limit: -3}).Limit)
}

// TestBuildCatalogQuery_OrderIsCopied verifies callers cannot mutate the shared ordering.
func TestBuildCatalogQuery_OrderIsCopied(t *testing.T) {
	q := BuildCatalogQuery(structs.CatalogFilter{})
	q.Order[0].Column = "name"

	assert.Equal(t, "featured", BuildCatalogQuery(structs.CatalogFilter{}).Order[0].Column)
}
