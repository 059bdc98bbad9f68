package services

import (
	"context"
	"lojastreet_server/structs"
	"lojastreet_server/structs/tables"
	"time"

	"github.com/google/uuid"
)

// ProductStore is the persistence the catalog needs. Lookups and writes on a
// missing id return lib.ErrNotFound.
type ProductStore interface {
	List(ctx context.Context, q structs.CatalogQuery) ([]tables.Product, error)
	FindByID(ctx context.Context, id int64) (*tables.Product, error)
	Insert(ctx context.Context, product *tables.Product) error
	InsertBatch(ctx context.Context, products []tables.Product) error
	Update(ctx context.Context, product *tables.Product) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*tables.AdminUser, error)
	FindByID(ctx context.Context, id int64) (*tables.AdminUser, error)
	Insert(ctx context.Context, admin *tables.AdminUser) error
}

// CatalogCache stores public listings. Implementations swallow their own
// failures; a miss is always safe.
type CatalogCache interface {
	GetCatalog(ctx context.Context, key string) ([]tables.Product, bool)
	SetCatalog(ctx context.Context, key string, products []tables.Product)
	InvalidateCatalog(ctx context.Context)
}

type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error
	IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error)
}
