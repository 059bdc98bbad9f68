package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Admin     *AdminConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Payment   *PaymentConfig
	Upload    *UploadConfig
}

type ServerConfig struct {
	AppName        string // Loja Street
	Environment    string // development, production
	Port           string // :8082
	LogLevel       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int   // in bytes
	MaxBodyBytes   int64 // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type DatabaseConfig struct {
	Driver       string // pg or pgx
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	QueryTimeout time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	BlacklistCacheTTL time.Duration
	CookieDomain      string
}

// AdminConfig describes the admin account ensured at startup.
type AdminConfig struct {
	DefaultEmail    string
	DefaultPassword string
	DefaultName     string
	SeedCatalog     bool
}

type CacheConfig struct {
	Enabled         bool
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	ProductListTTL  time.Duration
}

type RateLimitConfig struct {
	Enabled        bool
	AuthLimit      int
	AuthWindow     time.Duration
	AdminLimit     int
	AdminWindow    time.Duration
	CheckoutLimit  int
	CheckoutWindow time.Duration
	GeneralLimit   int
	GeneralWindow  time.Duration
}

type EmailConfig struct {
	ResendApiKey string
	From         string
	AdminAddress string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

// PaymentConfig holds the Mercado Pago settings.
type PaymentConfig struct {
	AccessToken  string
	BaseURL      string
	Timeout      time.Duration
	Description  string
	DefaultEmail string
}

type UploadConfig struct {
	Dir       string
	PublicURL string // prefix for returned urls, e.g. http://localhost:8082
	MaxBytes  int64
}
