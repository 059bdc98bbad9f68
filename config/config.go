package config

import (
	"lojastreet_server/structs"
	"strings"
	"time"
)

// Load reads the configuration from the environment. Call it once at startup
// and pass the result to the components that need it.
func Load() *structs.Config {
	env := getEnvAsString("APP_ENV", "development")

	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        getEnvAsString("APP_NAME", "Loja Street"),
			Environment:    env,
			Port:           getEnvAsString("APP_PORT", ":8082"),
			LogLevel:       getEnvAsString("LOG_LEVEL", defaultLogLevel(env)),
			ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 30*time.Second),
			IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			MaxBodyBytes:   int64(getEnvAsInt("SERVER_MAX_BODY_BYTES", 10<<20)),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:5500", "http://127.0.0.1:5500"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Driver:       getEnvAsString("DB_DRIVER", "pg"),
			Host:         getEnvAsString("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnvAsString("DB_USER", "postgres"),
			Password:     getEnvAsString("DB_PASSWORD", "password"),
			Name:         getEnvAsString("DB_NAME", "lojastreet"),
			SSLMode:      getEnvAsString("DB_SSLMODE", "disable"),
			MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
			MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			QueryTimeout: getEnvAsTimeDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		},
		Auth: &structs.AuthConfig{
			AccessTokenSecret: getEnvAsString("JWT_SECRET", "default_access_secret"),
			AccessTokenExpiry: getEnvAsTimeDuration("JWT_EXPIRY", 12*time.Hour),
			BlacklistCacheTTL: getEnvAsTimeDuration("AUTH_BLACKLIST_TTL", 12*time.Hour),
			CookieDomain:      getEnvAsString("AUTH_COOKIE_DOMAIN", ""),
		},
		Admin: &structs.AdminConfig{
			DefaultEmail:    strings.ToLower(getEnvAsString("ADMIN_DEFAULT_EMAIL", "admin@lojastreet.com")),
			DefaultPassword: getEnvAsString("ADMIN_DEFAULT_PASSWORD", "admin123"),
			DefaultName:     getEnvAsString("ADMIN_DEFAULT_NAME", "Administrador"),
			SeedCatalog:     getEnvAsBool("SEED_CATALOG", true),
		},
		Cache: &structs.CacheConfig{
			Enabled:         getEnvAsBool("REDIS_ENABLED", true),
			Address:         getEnvAsString("REDIS_ADDR", "localhost:6379"),
			Username:        getEnvAsString("REDIS_USERNAME", ""),
			Password:        getEnvAsString("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
			PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
			MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
			ProductListTTL:  getEnvAsTimeDuration("CACHE_PRODUCT_LIST_TTL", 5*time.Minute),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", true),
			AuthLimit:      getEnvAsInt("RATE_LIMIT_AUTH", 10),
			AuthWindow:     getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),
			AdminLimit:     getEnvAsInt("RATE_LIMIT_ADMIN", 120),
			AdminWindow:    getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
			CheckoutLimit:  getEnvAsInt("RATE_LIMIT_CHECKOUT", 20),
			CheckoutWindow: getEnvAsTimeDuration("RATE_LIMIT_CHECKOUT_WINDOW", time.Minute),
			GeneralLimit:   getEnvAsInt("RATE_LIMIT_GENERAL", 300),
			GeneralWindow:  getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
		},
		Email: &structs.EmailConfig{
			ResendApiKey: getEnvAsString("RESEND_API_KEY", ""),
			From:         getEnvAsString("EMAIL_FROM", "Loja Street <onboarding@resend.dev>"),
			AdminAddress: getEnvAsString("EMAIL_ADMIN", ""),
			SMTPHost:     getEnvAsString("SMTP_HOST", ""),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:     getEnvAsString("SMTP_USER", ""),
			SMTPPassword: getEnvAsString("SMTP_PASSWORD", ""),
		},
		Payment: &structs.PaymentConfig{
			AccessToken:  strings.TrimSpace(getEnvAsString("MP_ACCESS_TOKEN", "")),
			BaseURL:      strings.TrimSuffix(getEnvAsString("MP_BASE_URL", "https://api.mercadopago.com"), "/"),
			Timeout:      getEnvAsTimeDuration("MP_TIMEOUT", 20*time.Second),
			Description:  getEnvAsString("MP_DESCRIPTION", "Pedido Loja Street"),
			DefaultEmail: getEnvAsString("MP_DEFAULT_PAYER_EMAIL", "test_user_123@test.com"),
		},
		Upload: &structs.UploadConfig{
			Dir:       getEnvAsString("UPLOAD_DIR", "uploads"),
			PublicURL: strings.TrimSuffix(getEnvAsString("UPLOAD_PUBLIC_URL", ""), "/"),
			MaxBytes:  int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5<<20)),
		},
	}
}

func defaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction(cfg *structs.Config) bool {
	return cfg.Server.Environment == "production"
}
