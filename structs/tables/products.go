package tables

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product is the persisted catalog row. Pricing fields derived from the
// discount pair are never stored; see services.ResolvePricing.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID            int64               `bun:"id,pk,autoincrement" json:"id"`
	Name          string              `bun:"name,notnull" json:"name"`
	Description   string              `bun:"description,notnull" json:"description"`
	Price         decimal.Decimal     `bun:"price,type:numeric(10,2),notnull" json:"price"`
	DiscountPrice decimal.NullDecimal `bun:"discount_price,type:numeric(10,2)" json:"discount_price"`
	ImageURL      string              `bun:"image_url,notnull" json:"image_url"`
	Category      string              `bun:"category,notnull" json:"category"` // stored lower-cased
	Featured      bool                `bun:"featured,notnull" json:"featured"`
	IsActive      bool                `bun:"is_active,notnull" json:"is_active"`
	CreatedAt     time.Time           `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time           `bun:"updated_at,notnull" json:"updated_at"`
}
