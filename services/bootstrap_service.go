package services

import (
	"context"
	"fmt"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"lojastreet_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

// BootstrapService prepares a fresh installation: the default admin and the
// starter catalog.
type BootstrapService struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	admins   AdminStore
	products ProductStore
	clock    lib.Clock
	params   *structs.ArgonParams
}

func NewBootstrapService(logger *gecho.Logger, cfg *structs.Config, admins AdminStore, products ProductStore, clock lib.Clock) *BootstrapService {
	if clock == nil {
		clock = lib.RealClock{}
	}
	return &BootstrapService{
		logger:   logger,
		cfg:      cfg,
		admins:   admins,
		products: products,
		clock:    clock,
		params:   lib.DefaultArgonParams,
	}
}

// Run ensures the admin and seeds the catalog when enabled.
func (bs *BootstrapService) Run(ctx context.Context) error {
	if _, err := bs.EnsureDefaultAdmin(ctx); err != nil {
		return err
	}
	if !bs.cfg.Admin.SeedCatalog {
		return nil
	}
	_, err := bs.SeedCatalog(ctx)
	return err
}

// EnsureDefaultAdmin creates the configured admin when it does not exist.
// It reports whether an account was created.
func (bs *BootstrapService) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(bs.cfg.Admin.DefaultEmail))

	_, err := bs.admins.FindByEmail(ctx, email)
	if err == nil {
		bs.logger.Debug("Default admin already exists", gecho.Field("email", email))
		return false, nil
	}
	if !lib.IsNotFound(err) {
		return false, fmt.Errorf("failed to look up default admin: %w", err)
	}

	hash, err := lib.HashPassword(bs.cfg.Admin.DefaultPassword, bs.params)
	if err != nil {
		return false, fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &tables.AdminUser{
		Email:        email,
		Name:         bs.cfg.Admin.DefaultName,
		PasswordHash: hash,
		CreatedAt:    bs.clock.Now(),
	}
	if err := bs.admins.Insert(ctx, admin); err != nil {
		// another instance created it first
		if lib.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}

	bs.logger.Warn("Default admin created, change its password",
		gecho.Field("email", email),
		gecho.Field("admin_id", admin.ID),
	)
	return true, nil
}

// SeedCatalog inserts the starter catalog in one transaction when the product
// table is empty. It returns the number of inserted products.
func (bs *BootstrapService) SeedCatalog(ctx context.Context) (int, error) {
	count, err := bs.products.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		bs.logger.Info("Catalog already populated, skipping seed", gecho.Field("products", count))
		return 0, nil
	}

	products := StarterCatalog(bs.clock)
	if err := bs.products.InsertBatch(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}

	bs.logger.Info("Starter catalog seeded", gecho.Field("products", len(products)))
	return len(products), nil
}

type seedProduct struct {
	name, description string
	price, discount   string
	image, category   string
	featured          bool
}

var starterCatalog = []seedProduct{
	{"Camiseta Oversized", "Modelagem ampla em algodão premium.", "99.90", "", "images/fem-blusa.jpg", "feminino", true},
	{"Vestido T-Shirt Oversized", "Perfeito para o dia-a-dia com toque macio.", "149.90", "", "images/fem-vestido.jpg", "feminino", true},
	{"Sneaker Chunky Feminino", "Solado robusto e conforto máximo.", "259.90", "", "images/fem-sneaker.jpg", "feminino", false},
	{"Hoodie Oversized", "Moleton felpado com capuz estruturado.", "169.90", "", "images/mas-moleton.jpg", "masculino", true},
	{"Cargo Relaxed Fit", "Calça cargo com múltiplos bolsos utilitários.", "199.90", "", "images/mas-jeans.jpg", "masculino", false},
	{"Sneaker Chunky Masculino", "Design imponente com amortecimento.", "289.90", "", "images/mas-sneaker.jpg", "masculino", false},
	{"Boné Trucker Street", "Ajuste snapback e tela traseira.", "79.90", "", "images/acc-bone.jpg", "acessorios", true},
	{"Óculos Street Retangular", "Lentes com proteção UV400.", "119.90", "", "images/acc-oculos.jpg", "acessorios", false},
	{"Carteira Minimal Preto", "Couro ecológico com acabamento texturizado.", "59.90", "", "images/acc-carteira.jpg", "acessorios", false},
	{"Hoodie Oversized Promo", "Mesma qualidade com valor promocional.", "169.90", "119.90", "images/promo-hoodie.jpg", "masculino", true},
	{"Camiseta Gráfica Oversized Promo", "Estampa exclusiva limitada.", "149.90", "119.90", "images/promo-graphictee.jpg", "unissex", true},
	{"Jaqueta Corta Vento Tech Promo", "Tecido impermeável e respirável.", "299.90", "239.90", "images/promo-cortavento.jpg", "masculino", true},
}

// StarterCatalog returns the seed rows, all active and stamped with the clock.
func StarterCatalog(clock lib.Clock) []tables.Product {
	now := clock.Now()
	products := make([]tables.Product, 0, len(starterCatalog))

	for _, s := range starterCatalog {
		product := tables.Product{
			Name:        s.name,
			Description: s.description,
			Price:       decimal.RequireFromString(s.price),
			ImageURL:    s.image,
			Category:    s.category,
			Featured:    s.featured,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if s.discount != "" {
			product.DiscountPrice = decimal.NewNullDecimal(decimal.RequireFromString(s.discount))
		}
		products = append(products, product)
	}

	return products
}
