package twelveweeks

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/nkgevorgyan/twelveweeks/internal/goalqueue"
	"github.com/nkgevorgyan/twelveweeks/internal/tokenstore"
)

// Option configures a Client during construction in New.
//
// Options are applied before the bearer transport wrapper is installed, so
// transport-related options (like debug logging) sit underneath the token
// wrapper. Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding the total time of a single HTTP request. The
// value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true.
//
// Do not enable this option in production environments: dumps include the
// Authorization header and full bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithTokenStore injects the token persistence backend. The client does not
// close injected stores.
func WithTokenStore(store tokenstore.Store) Option {
	return func(c *Client) error {
		if store == nil {
			return fmt.Errorf("token store cannot be nil")
		}
		c.tokens = store
		c.ownsTokens = false
		return nil
	}
}

// WithTokenDBPath persists the token in a SQLite database at path instead of
// the default XDG location.
func WithTokenDBPath(path string) Option {
	return func(c *Client) error {
		st, err := tokenstore.OpenSQLite(path)
		if err != nil {
			return err
		}
		c.tokens = st
		c.ownsTokens = true
		return nil
	}
}

// WithMemoryTokenStore keeps the token in process memory only; nothing
// survives a restart. Intended for tests and ephemeral tooling.
func WithMemoryTokenStore() Option {
	return func(c *Client) error {
		c.tokens = tokenstore.NewMemory()
		c.ownsTokens = false
		return nil
	}
}

// WithQueueConfig tunes the per-goal submission executor.
func WithQueueConfig(cfg goalqueue.Config) Option {
	return func(c *Client) error {
		c.queueCfg = cfg
		return nil
	}
}

// WithClock overrides the wall clock and timezone used for deadline and
// trend bucketing. Intended for tests.
func WithClock(now func() time.Time, loc *time.Location) Option {
	return func(c *Client) error {
		if now == nil || loc == nil {
			return fmt.Errorf("clock and location must be non-nil")
		}
		c.now = now
		c.loc = loc
		return nil
	}
}
