package structs

import "time"

// ProductView is the representation handed to callers. It is always mapped
// from a stored row, with FinalPrice and DiscountPercent recomputed.
type ProductView struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DiscountPrice   *float64  `json:"discountPrice"`
	DiscountPercent *int      `json:"discountPercent"`
	FinalPrice      float64   `json:"finalPrice"`
	ImageURL        string    `json:"imageUrl"`
	Category        string    `json:"category"`
	Featured        bool      `json:"featured"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProductRequest is the body of create and full update.
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,min=3,max=200"`
	Description   string   `json:"description" validate:"max=2000"`
	Category      string   `json:"category" validate:"required,min=3,max=60"`
	Price         *float64 `json:"price" validate:"required,gte=0,lte=99999999.99"`
	DiscountPrice *float64 `json:"discountPrice" validate:"omitempty,gt=0,lte=99999999.99"`
	ImageURL      string   `json:"imageUrl" validate:"required,max=500"`
	Featured      bool     `json:"featured"`
	IsActive      *bool    `json:"isActive"`
}

// DiscountRequest is the body of the discount patch. A null value clears the discount.
type DiscountRequest struct {
	DiscountPrice *float64 `json:"discountPrice" validate:"omitempty,gt=0,lte=99999999.99"`
}

// CatalogFilter is what a caller asks for when listing products.
type CatalogFilter struct {
	Category        string `json:"category,omitempty"`
	Featured        bool   `json:"featured,omitempty"`
	Discounted      bool   `json:"discounted,omitempty"`
	IncludeInactive bool   `json:"includeInactive,omitempty"`
	Limit           int    `json:"limit,omitempty"` // 0 means no limit
}

// CatalogQuery is the store-level query produced from a CatalogFilter.
type CatalogQuery struct {
	ActiveOnly     bool
	Category       string
	FeaturedOnly   bool
	DiscountedOnly bool
	Limit          int // 0 means no limit
	Order          []SortField
}

type SortField struct {
	Column     string
	Descending bool
}
