package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"lojastreet_server/structs/tables"
	"net"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

var fastBackoff = backoff{attempts: 3, initial: time.Millisecond, max: 2 * time.Millisecond}

func dialError() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
}

func TestConnectFailed(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no rows", sql.ErrNoRows, false},
		{"canceled", context.Canceled, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"cannot connect now", &pgconn.PgError{Code: "57P03"}, true},
		{"dial refused", dialError(), true},
		{"wrapped dial", fmt.Errorf("connect: %w", dialError()), true},
		{"dns", &net.DNSError{Err: "no such host", Name: "db"}, true},
		{"read timeout", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("i/o timeout")}, false},
		{"connection reset text", errors.New("read tcp: connection reset by peer"), false},
		{"eof inside a word", errors.New(`column "geofence" does not exist`), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, connectFailed(tc.err))
		})
	}
}

func TestRetryRead_RetriesConnectFailures(t *testing.T) {
	attempts := 0
	err := retryRead(context.Background(), fastBackoff, func() error {
		attempts++
		if attempts < 3 {
			return dialError()
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryRead_StopsOnOtherErrors(t *testing.T) {
	attempts := 0
	want := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("i/o timeout")}
	err := retryRead(context.Background(), fastBackoff, func() error {
		attempts++
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.Equal(t, 1, attempts)
}

func TestRetryRead_GivesUp(t *testing.T) {
	attempts := 0
	err := retryRead(context.Background(), fastBackoff, func() error {
		attempts++
		return dialError()
	})

	assert.True(t, connectFailed(err))
	assert.Equal(t, 3, attempts)
}

// refusingConnector fails every connection attempt with a dial error and
// counts the attempts.
type refusingConnector struct {
	attempts atomic.Int32
}

func (c *refusingConnector) Connect(context.Context) (driver.Conn, error) {
	c.attempts.Add(1)
	return nil, dialError()
}

func (c *refusingConnector) Driver() driver.Driver { return refusingDriver{c} }

type refusingDriver struct{ c *refusingConnector }

func (d refusingDriver) Open(string) (driver.Conn, error) { return d.c.Connect(context.Background()) }

func newRefusingDB(t *testing.T) (*bun.DB, *refusingConnector) {
	t.Helper()

	prev := readBackoff
	readBackoff = fastBackoff
	t.Cleanup(func() { readBackoff = prev })

	connector := &refusingConnector{}
	db := bun.NewDB(sql.OpenDB(connector), pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db, connector
}

func TestExecutor_ReadsRetryConnectFailures(t *testing.T) {
	db, connector := newRefusingDB(t)

	_, err := Query[tables.Product](db).All(context.Background())

	require.Error(t, err)
	assert.EqualValues(t, 3, connector.attempts.Load())
}

func TestExecutor_WritesRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("insert", func(t *testing.T) {
		db, connector := newRefusingDB(t)
		_, err := Query[tables.Product](db).Insert(ctx, &tables.Product{Name: "Camiseta"})
		require.Error(t, err)
		assert.EqualValues(t, 1, connector.attempts.Load())
	})

	t.Run("update", func(t *testing.T) {
		db, connector := newRefusingDB(t)
		_, err := Query[tables.Product](db).Where("p.id", 1).Update(ctx, map[string]any{"featured": true})
		require.Error(t, err)
		assert.EqualValues(t, 1, connector.attempts.Load())
	})

	t.Run("delete", func(t *testing.T) {
		db, connector := newRefusingDB(t)
		_, err := Query[tables.Product](db).Where("p.id", 1).Delete(ctx)
		require.Error(t, err)
		assert.EqualValues(t, 1, connector.attempts.Load())
	})
}
