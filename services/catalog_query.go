package services

import (
	"fmt"
	"lojastreet_server/structs"
	"strings"
)

// MaxCatalogLimit caps the number of products a single listing returns.
const MaxCatalogLimit = 100

// catalogOrder is featured first, then most recently updated, then newest id.
var catalogOrder = []structs.SortField{
	{Column: "featured", Descending: true},
	{Column: "updated_at", Descending: true},
	{Column: "id", Descending: true},
}

// BuildCatalogQuery turns a caller filter into the store query. Whether the
// caller may see inactive products is decided before this point.
func BuildCatalogQuery(f structs.CatalogFilter) structs.CatalogQuery {
	q := structs.CatalogQuery{
		ActiveOnly:     !f.IncludeInactive,
		Category:       NormalizeCategory(f.Category),
		FeaturedOnly:   f.Featured,
		DiscountedOnly: f.Discounted,
		Order:          append([]structs.SortField(nil), catalogOrder...),
	}

	if f.Limit > 0 {
		q.Limit = min(f.Limit, MaxCatalogLimit)
	}

	return q
}

func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// catalogCacheKey identifies a public listing in the cache.
func catalogCacheKey(q structs.CatalogQuery) string {
	return fmt.Sprintf("%scategory=%s:featured=%t:discounted=%t:limit=%d",
		CatalogCachePrefix, q.Category, q.FeaturedOnly, q.DiscountedOnly, q.Limit)
}
