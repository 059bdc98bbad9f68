package services

import (
	"context"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"lojastreet_server/structs/tables"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

func newTestLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
}

// fakeProductStore is an in-memory ProductStore that applies catalog queries.
type fakeProductStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]tables.Product
	writes   int
	listErr  error

	// onList runs after a listing has been read, outside the lock.
	onList func()
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int64]tables.Product{}}
}

func (s *fakeProductStore) List(ctx context.Context, q structs.CatalogQuery) ([]tables.Product, error) {
	out, err := s.list(q)
	if s.onList != nil {
		s.onList()
	}
	if err == nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return out, err
}

func (s *fakeProductStore) list(q structs.CatalogQuery) ([]tables.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}

	out := []tables.Product{}
	for _, p := range s.products {
		if q.ActiveOnly && !p.IsActive {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.FeaturedOnly && !p.Featured {
			continue
		}
		if q.DiscountedOnly && !p.DiscountPrice.Valid {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID > b.ID
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *fakeProductStore) FindByID(_ context.Context, id int64) (*tables.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return &p, nil
}

func (s *fakeProductStore) Insert(_ context.Context, product *tables.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	product.ID = s.nextID
	s.products[product.ID] = *product
	s.writes++
	return nil
}

func (s *fakeProductStore) InsertBatch(ctx context.Context, products []tables.Product) error {
	for i := range products {
		if err := s.Insert(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeProductStore) Update(_ context.Context, product *tables.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return lib.ErrNotFound
	}
	s.products[product.ID] = *product
	s.writes++
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return lib.ErrNotFound
	}
	delete(s.products, id)
	s.writes++
	return nil
}

func (s *fakeProductStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products), nil
}

type fakeAdminStore struct {
	mu     sync.Mutex
	admins []tables.AdminUser
}

func (s *fakeAdminStore) FindByEmail(_ context.Context, email string) (*tables.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == strings.ToLower(email) {
			return &a, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (s *fakeAdminStore) FindByID(_ context.Context, id int64) (*tables.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (s *fakeAdminStore) Insert(_ context.Context, admin *tables.AdminUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == admin.Email {
			return lib.ErrConflict
		}
	}
	admin.ID = int64(len(s.admins) + 1)
	s.admins = append(s.admins, *admin)
	return nil
}

// fakeCatalogCache records cache traffic.
type fakeCatalogCache struct {
	entries       map[string][]tables.Product
	invalidations int
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{entries: map[string][]tables.Product{}}
}

func (c *fakeCatalogCache) GetCatalog(_ context.Context, key string) ([]tables.Product, bool) {
	p, ok := c.entries[key]
	return p, ok
}

func (c *fakeCatalogCache) SetCatalog(_ context.Context, key string, products []tables.Product) {
	c.entries[key] = products
}

func (c *fakeCatalogCache) InvalidateCatalog(_ context.Context) {
	c.entries = map[string][]tables.Product{}
	c.invalidations++
}

type fakeBlacklist struct {
	revoked map[uuid.UUID]time.Time
}

func (b *fakeBlacklist) BlacklistToken(_ context.Context, jti uuid.UUID, exp time.Time) error {
	b.revoked[jti] = exp
	return nil
}

func (b *fakeBlacklist) IsTokenBlacklisted(_ context.Context, jti uuid.UUID) (bool, error) {
	_, ok := b.revoked[jti]
	return ok, nil
}
