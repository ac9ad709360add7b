// Package twelveweeks is the client-side state core of the goal
// accountability app: it owns the authenticated session, mirrors the goal
// collection, reconciles check-ins against the backend, and derives the
// metrics every view displays.
package twelveweeks

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/nkgevorgyan/twelveweeks/internal/goalqueue"
	"github.com/nkgevorgyan/twelveweeks/internal/tokenstore"
)

// executor abstracts the per-goal job runner so tests can substitute it.
type executor interface {
	Submit(ctx context.Context, goalID int, job goalqueue.Job) error
	Stop()
}

// Client aggregates the session manager, the goal store, and the check-in
// processor behind one handle. All exported methods are safe for concurrent
// use.
type Client struct {
	baseURL string
	http    *http.Client
	exec    executor

	tokens     tokenstore.Store
	ownsTokens bool // true when Close should also close the token store

	session *sessionManager
	goals   *goalStore

	now func() time.Time
	loc *time.Location

	queueCfg goalqueue.Config

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the backend at baseURL (with the /api/v1
// prefix included). By default the bearer token persists in a SQLite
// database under the XDG data home; tests inject an in-memory store via
// WithTokenStore.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
		loc:     time.Local,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.tokens == nil {
		st, err := tokenstore.OpenSQLite(tokenstore.DefaultDBPath())
		if err != nil {
			return nil, err
		}
		c.tokens = st
		c.ownsTokens = true
	}
	if c.exec == nil {
		c.exec = goalqueue.NewExecutor(c.queueCfg)
	}

	c.session = newSessionManager(c.http, c.baseURL, c.tokens)
	c.goals = newGoalStore()

	// Wrap the transport so every request carries the live session token and
	// a request id.
	c.wrapTransport()

	return c, nil
}

// wrapTransport installs the bearer-token wrapper around whatever transport
// options left in place.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{
		base:  base,
		token: c.session.currentToken,
	}
}

// bearerTransport wraps an http.RoundTripper to add the session's bearer
// token (when one exists) and an X-Request-ID to every request.
type bearerTransport struct {
	base  http.RoundTripper
	token func() string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	if tok := t.token(); tok != "" {
		cloned.Header.Set("Authorization", "Bearer "+tok)
	}
	cloned.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(cloned)
}

// Close stops the background executor and, when the client opened it, the
// token store. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	if c.ownsTokens {
		if closer, ok := c.tokens.(interface{ Close() error }); ok {
			return closer.Close()
		}
	}
	return nil
}
