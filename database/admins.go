package database

import (
	"context"
	"lojastreet_server/lib"
	"lojastreet_server/structs/tables"
	"strings"

	"github.com/uptrace/bun"
)

// AdminRepository persists admin accounts.
type AdminRepository struct {
	db bun.IDB
}

func NewAdminRepository(db bun.IDB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail matches case-insensitively and returns lib.ErrNotFound when absent.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*tables.AdminUser, error) {
	admin, err := adminByEmail(r.db, email).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if admin == nil {
		return nil, lib.ErrNotFound
	}
	return admin, nil
}

// adminByEmail also matches rows written before e-mails were lower-cased.
func adminByEmail(db bun.IDB, email string) *QueryBuilder[tables.AdminUser] {
	return Query[tables.AdminUser](db).
		WhereRaw("lower(au.email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1)
}

func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*tables.AdminUser, error) {
	admin, err := FindByID[tables.AdminUser](ctx, r.db, "au.id", id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if admin == nil {
		return nil, lib.ErrNotFound
	}
	return admin, nil
}

func (r *AdminRepository) Insert(ctx context.Context, admin *tables.AdminUser) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	if _, err := Query[tables.AdminUser](r.db).Insert(ctx, admin); err != nil {
		return lib.MapPgError(err)
	}
	return nil
}
