package services

import (
	"context"
	"lojastreet_server/lib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBootstrap() (*BootstrapService, *fakeAdminStore, *fakeProductStore) {
	admins := &fakeAdminStore{}
	products := newFakeProductStore()
	bs := NewBootstrapService(newTestLogger(), newTestConfig(), admins, products, lib.NewFakeClock(epoch))
	bs.params = fastArgon
	return bs, admins, products
}

// TestEnsureDefaultAdmin_Idempotent verifies the admin is created once with a lower-cased e-mail.
func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	bs, admins, _ := newTestBootstrap()
	ctx := context.Background()

	created, err := bs.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = bs.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	require.Len(t, admins.admins, 1)
	admin := admins.admins[0]
	assert.Equal(t, "admin@lojastreet.com", admin.Email)

	ok, err := lib.VerifyPassword("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSeedCatalog(t *testing.T) {
	bs, _, products := newTestBootstrap()
	ctx := context.Background()

	inserted, err := bs.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, inserted)

	// a populated catalog is left alone
	inserted, err = bs.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, _ := products.Count(ctx)
	assert.Equal(t, 12, count)

	discounted := 0
	for _, p := range products.products {
		assert.True(t, p.IsActive, p.Name)
		if p.DiscountPrice.Valid {
			discounted++
			assert.True(t, p.DiscountPrice.Decimal.LessThan(p.Price), p.Name)
		}
	}
	assert.Equal(t, 3, discounted)
}

func TestRun_SkipsSeedWhenDisabled(t *testing.T) {
	bs, admins, products := newTestBootstrap()
	bs.cfg.Admin.SeedCatalog = false

	require.NoError(t, bs.Run(context.Background()))

	assert.Len(t, admins.admins, 1)
	assert.Empty(t, products.products)
}
