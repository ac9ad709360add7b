package twelveweeks

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nkgevorgyan/twelveweeks/internal/api"
	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
	"github.com/nkgevorgyan/twelveweeks/internal/tokenstore"
)

// SessionStatus is the lifecycle state of the client's single session.
type SessionStatus int

const (
	// StatusUnauthenticated means no credential is held.
	StatusUnauthenticated SessionStatus = iota
	// StatusRestoring means a persisted token is being validated at startup.
	StatusRestoring
	// StatusAuthenticating means a login exchange is in flight.
	StatusAuthenticating
	// StatusAuthenticated means a token and profile are held.
	StatusAuthenticated
	// StatusFailed records the last login failure; it behaves like
	// Unauthenticated for every gate and clears on the next attempt.
	StatusFailed
)

// String returns the lifecycle state name.
func (s SessionStatus) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusRestoring:
		return "restoring"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// sessionManager is the single authoritative source of "who is logged in and
// with what credential". It is the sole writer of the persisted token.
//
// Transitions are strictly sequential: the inFlight flag rejects a second
// login/register/restore while one is still running, so two operations can
// never race to persist different tokens.
type sessionManager struct {
	mu       sync.Mutex
	status   SessionStatus
	token    string
	user     *UserProfile
	failure  string // message of the last failed login, for the UI
	inFlight bool

	http    *http.Client
	baseURL string
	tokens  tokenstore.Store
}

func newSessionManager(httpClient *http.Client, baseURL string, tokens tokenstore.Store) *sessionManager {
	return &sessionManager{
		status:  StatusUnauthenticated,
		http:    httpClient,
		baseURL: baseURL,
		tokens:  tokens,
	}
}

// begin takes the in-flight guard. requireLoggedOut additionally rejects the
// operation on a live session.
func (s *sessionManager) begin(requireLoggedOut bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return apierrors.New(apierrors.KindConflict, ErrSessionBusy)
	}
	if requireLoggedOut && s.status == StatusAuthenticated {
		return apierrors.New(apierrors.KindConflict, ErrAlreadyAuthenticated)
	}
	s.inFlight = true
	return nil
}

func (s *sessionManager) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// restore validates a persisted token, if any. Any failure clears the token
// so a stale credential never lingers.
func (s *sessionManager) restore(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return apierrors.New(apierrors.KindConflict, ErrSessionBusy)
	}
	if s.status == StatusAuthenticated {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.mu.Unlock()
	defer s.end()

	tok, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}
	if tok == "" {
		s.set(StatusUnauthenticated, "", nil)
		return nil
	}

	s.set(StatusRestoring, tok, nil)
	user, err := api.FetchCurrentUser(ctx, s.http, s.baseURL)
	if err != nil {
		_ = s.tokens.Clear(ctx)
		s.set(StatusUnauthenticated, "", nil)
		authAttemptsTotal.WithLabelValues("restore", "error").Inc()
		log.Warn().Err(err).Msg("session restore failed, cleared stored token")
		return err
	}

	s.set(StatusAuthenticated, tok, user)
	authAttemptsTotal.WithLabelValues("restore", "ok").Inc()
	log.Debug().Str("user", user.Username).Msg("session restored")
	return nil
}

// login exchanges credentials for a token and loads the profile.
func (s *sessionManager) login(ctx context.Context, email, password string) error {
	if err := s.begin(true); err != nil {
		return err
	}
	defer s.end()
	return s.authenticate(ctx, email, password)
}

// register creates the account, then logs in with the same credentials. The
// partial success (created, login failed) carries ErrPostRegisterLogin so
// callers can tell it apart from a plain login failure.
func (s *sessionManager) register(ctx context.Context, req RegisterRequest) error {
	if err := s.begin(true); err != nil {
		return err
	}
	defer s.end()

	if _, err := api.CreateUser(ctx, s.http, s.baseURL, req); err != nil {
		authAttemptsTotal.WithLabelValues("register", "error").Inc()
		return err
	}
	if err := s.authenticate(ctx, req.Email, req.Password); err != nil {
		authAttemptsTotal.WithLabelValues("register", "error").Inc()
		return errors.Join(ErrPostRegisterLogin, err)
	}
	authAttemptsTotal.WithLabelValues("register", "ok").Inc()
	return nil
}

// authenticate performs the token exchange and profile fetch. The caller
// must hold the in-flight guard.
func (s *sessionManager) authenticate(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.status = StatusAuthenticating
	s.failure = ""
	s.mu.Unlock()

	tok, err := api.Authenticate(ctx, s.http, s.baseURL, email, password)
	if err != nil {
		s.fail(err)
		return err
	}
	if err := s.tokens.Save(ctx, tok.AccessToken); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.token = tok.AccessToken
	s.mu.Unlock()

	user, err := api.FetchCurrentUser(ctx, s.http, s.baseURL)
	if err != nil {
		// The token was persisted above; roll that back so a half-login
		// leaves nothing behind.
		_ = s.tokens.Clear(ctx)
		s.fail(err)
		return err
	}

	s.set(StatusAuthenticated, tok.AccessToken, user)
	authAttemptsTotal.WithLabelValues("login", "ok").Inc()
	log.Debug().Str("user", user.Username).Msg("logged in")
	return nil
}

// logout clears persisted and in-memory state synchronously. No network call
// is made; calling it while already unauthenticated is a no-op.
func (s *sessionManager) logout(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return apierrors.New(apierrors.KindConflict, ErrSessionBusy)
	}
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		return err
	}
	s.set(StatusUnauthenticated, "", nil)
	return nil
}

// updateProfile replaces the profile wholesale with the server's response.
func (s *sessionManager) updateProfile(ctx context.Context, req UpdateProfileRequest) error {
	if s.currentStatus() != StatusAuthenticated {
		return apierrors.New(apierrors.KindAuth, ErrNotAuthenticated)
	}
	user, err := api.UpdateProfile(ctx, s.http, s.baseURL, req)
	if err != nil {
		s.invalidateOnAuthError(ctx, err)
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// invalidateOnAuthError tears the session down when the backend rejected the
// token; an expired credential always forces re-authentication.
func (s *sessionManager) invalidateOnAuthError(ctx context.Context, err error) {
	if !apierrors.Is(err, apierrors.KindAuth) {
		return
	}
	_ = s.tokens.Clear(ctx)
	s.set(StatusUnauthenticated, "", nil)
	log.Warn().Err(err).Msg("session invalidated by auth failure")
}

// fail records a failed login: no token, no user, message retained.
func (s *sessionManager) fail(err error) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = StatusFailed
	s.failure = err.Error()
	s.mu.Unlock()
	authAttemptsTotal.WithLabelValues("login", "error").Inc()
	log.Warn().Err(err).Msg("login failed")
}

func (s *sessionManager) set(status SessionStatus, token string, user *UserProfile) {
	s.mu.Lock()
	s.status = status
	s.token = token
	s.user = user
	s.mu.Unlock()
}

func (s *sessionManager) currentStatus() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// currentToken is read by the bearer transport on every request.
func (s *sessionManager) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *sessionManager) currentUser() *UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *sessionManager) failureMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// --------------------------------------------------------------------
// Session operations - public surface
// --------------------------------------------------------------------

// Restore validates the persisted token from a previous run, if any. Call it
// once at startup before any data is loaded; with no stored token it resolves
// without a network call.
func (c *Client) Restore(ctx context.Context) error {
	return c.session.restore(ctx)
}

// Login authenticates with the backend and persists the session token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.session.login(ctx, email, password)
}

// Register creates an account and logs in with the same credentials.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.session.register(ctx, req)
}

// Logout clears the session and the persisted token. Idempotent.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.session.logout(ctx); err != nil {
		return err
	}
	c.goals.reset()
	return nil
}

// UpdateProfile updates the current user's profile on the backend and
// replaces the local copy with the response.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return c.session.updateProfile(ctx, req)
}

// SessionStatus reports the session lifecycle state. StatusFailed gates
// exactly like StatusUnauthenticated; it additionally carries the message
// available via LoginFailure.
func (c *Client) SessionStatus() SessionStatus {
	return c.session.currentStatus()
}

// CurrentUser returns a copy of the logged-in profile, or nil when there is
// no session.
func (c *Client) CurrentUser() *UserProfile {
	return c.session.currentUser()
}

// LoginFailure returns the message of the most recent failed login, or ""
// when the last attempt succeeded.
func (c *Client) LoginFailure() string {
	return c.session.failureMessage()
}
