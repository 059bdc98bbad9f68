package database

import (
	"context"
	"errors"
	"lojastreet_server/lib"
	"net"
	"strings"
	"syscall"
	"time"
)

// backoff describes how a read is replayed when the connection could not be
// opened. Writes are never replayed: a statement that reached the server may
// have committed even when the client saw an error.
type backoff struct {
	attempts int
	initial  time.Duration
	max      time.Duration
}

var readBackoff = backoff{
	attempts: 3,
	initial:  100 * time.Millisecond,
	max:      time.Second,
}

// connectFailed reports whether err happened before a statement could reach
// the server. Only those failures are safe to replay.
func connectFailed(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if code := lib.SQLState(err); code != "" {
		// class 08 is connection_exception, 57P03 is cannot_connect_now
		return strings.HasPrefix(code, "08") || code == "57P03"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED)
}

// retryRead runs read until it succeeds, fails for a reason other than a
// connect failure, or the attempts run out.
func retryRead(ctx context.Context, b backoff, read func() error) error {
	delay := b.initial

	for attempt := 1; ; attempt++ {
		err := read()
		if err == nil || !connectFailed(err) || attempt >= b.attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > b.max {
			delay = b.max
		}
	}
}
