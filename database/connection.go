package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"lojastreet_server/structs"
	"net"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DB wraps the bun database handle with connection lifecycle helpers
type DB struct {
	*bun.DB
	logger *gecho.Logger
}

// Connect opens the Postgres pool with the configured driver and verifies it.
func Connect(cfg *structs.Config, logger *gecho.Logger) (*DB, error) {
	dbCfg := cfg.Database

	sqldb, err := openSQLDB(dbCfg)
	if err != nil {
		return nil, err
	}

	// Apply pool settings from configuration
	sqldb.SetMaxOpenConns(dbCfg.MaxConns)
	sqldb.SetMaxIdleConns(dbCfg.MinConns)
	sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	bunDB.AddQueryHook(&connectionHealthHook{logger: logger, slowThreshold: time.Second})

	db := &DB{DB: bunDB, logger: logger}

	// Test the connection
	if err := db.Health(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully",
		gecho.Field("driver", dbCfg.Driver),
		gecho.Field("host", dbCfg.Host),
		gecho.Field("database", dbCfg.Name),
	)

	return db, nil
}

func openSQLDB(dbCfg *structs.DatabaseConfig) (*sql.DB, error) {
	switch dbCfg.Driver {
	case "", "pg":
		opts := []pgdriver.Option{
			pgdriver.WithAddr(net.JoinHostPort(dbCfg.Host, strconv.Itoa(dbCfg.Port))),
			pgdriver.WithUser(dbCfg.User),
			pgdriver.WithPassword(dbCfg.Password),
			pgdriver.WithDatabase(dbCfg.Name),
			pgdriver.WithApplicationName("lojastreet_server"),
			pgdriver.WithDialTimeout(5 * time.Second),
			pgdriver.WithReadTimeout(dbCfg.ReadTimeout),
			pgdriver.WithWriteTimeout(dbCfg.WriteTimeout),
		}
		if dbCfg.SSLMode == "disable" {
			opts = append(opts, pgdriver.WithInsecure(true))
		} else {
			opts = append(opts, pgdriver.WithTLSConfig(&tls.Config{
				ServerName:         dbCfg.Host,
				InsecureSkipVerify: dbCfg.SSLMode == "require",
			}))
		}
		return sql.OpenDB(pgdriver.NewConnector(opts...)), nil

	case "pgx":
		connCfg, err := pgx.ParseConfig(DSN(dbCfg))
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}
		return stdlib.OpenDB(*connCfg), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
}

// DSN renders the connection settings as a postgres URL.
func DSN(dbCfg *structs.DatabaseConfig) string {
	sslMode := dbCfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		dbCfg.User, dbCfg.Password,
		net.JoinHostPort(dbCfg.Host, strconv.Itoa(dbCfg.Port)),
		dbCfg.Name, sslMode,
	)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Health checks the database connection health
func (db *DB) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// GetStats returns connection pool statistics for monitoring
func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}

// connectionHealthHook implements bun.QueryHook to monitor connection health
type connectionHealthHook struct {
	logger        *gecho.Logger
	slowThreshold time.Duration
}

func (h *connectionHealthHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *connectionHealthHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if duration > h.slowThreshold {
		h.logger.Warn("Slow database query detected",
			gecho.Field("operation", event.Operation()),
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	// Handle EOF errors specifically
	if event.Err != nil {
		if msg := event.Err.Error(); msg == "EOF" || msg == "unexpected EOF" {
			h.logger.Error("Database connection EOF error - connection may have been closed by server",
				gecho.Field("error", event.Err),
				gecho.Field("query", event.Query),
			)
		}
	}
}
