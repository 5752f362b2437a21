// Package session holds the authenticated identity for a client process: who
// is signed in, the bearer credential proving it, and the state of any sign-in
// attempt in flight. It is the single source of truth consulted by the route
// guard, the request gateway, and any role-gated UI.
//
// A Store is constructed explicitly and passed by handle; there is no package
// level singleton. Construct a fresh one per test.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"presales/pkg/credentials"
	"presales/pkg/roles"
)

const loginPath = "/api/v1/auth/login"

// genericSignInError is shown when a sign-in attempt fails for reasons the
// server did not explain (network failure, malformed response). Server-side
// messages take precedence so transport details never leak to the user.
const genericSignInError = "Unable to sign in. Please try again."

// Store is the session store. Every mutation updates persisted storage and
// in-memory state together, under the store's lock, so no reader can observe
// one without the other.
type Store struct {
	creds   credentials.Store
	client  *http.Client
	baseURL string
	logger  *slog.Logger

	mu       sync.RWMutex
	token    string
	identity *credentials.Identity
	loading  bool
	lastErr  string
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient overrides the HTTP client used for the sign-in call. The
// sign-in request itself is unauthenticated and does not go through the
// request gateway.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.client = c }
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New builds a Store from whatever identity is persisted. No credential
// validation happens at load time: a persisted identity counts as
// authenticated until a request fails with an authorization error. A token
// without an identity, or the reverse, reads as no session so the
// credential/identity pairing invariant holds from the first read.
func New(creds credentials.Store, baseURL string, opts ...Option) *Store {
	s := &Store{
		creds:   creds,
		client:  http.DefaultClient,
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	token, haveToken := creds.Token()
	identity, haveIdentity := creds.Identity()
	if haveToken && haveIdentity {
		s.token = token
		s.identity = identity
	}
	return s
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Token       string `json:"token"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// loginEnvelope tolerates both response shapes: the payload directly at the
// top level, or nested under a data field.
type loginEnvelope struct {
	Data *loginPayload `json:"data"`
	loginPayload
}

func (e *loginEnvelope) payload() loginPayload {
	if e.Data != nil && e.Data.Token != "" {
		return *e.Data
	}
	return e.loginPayload
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SignIn exchanges credentials for a bearer token and stores the resulting
// identity. On failure LastError carries the server's message when the server
// sent one, else a generic message; credential and identity are untouched.
//
// SignIn does not clear a previous LastError before attempting: callers that
// want a fresh attempt without a stale message call ClearError first. IsLoading
// is true for exactly the span of the attempt, success or failure.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return s.fail(genericSignInError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return s.fail(genericSignInError, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// Transport failure: no server message to surface.
		return s.fail(genericSignInError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorEnvelope
		msg := genericSignInError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
			if apiErr.Error != "" {
				msg = apiErr.Error
			} else if apiErr.Message != "" {
				msg = apiErr.Message
			}
		}
		return s.fail(msg, nil)
	}

	var envelope loginEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return s.fail(genericSignInError, err)
	}
	payload := envelope.payload()
	if payload.Token == "" {
		return s.fail(genericSignInError, nil)
	}

	identity := credentials.Identity{
		Email:       payload.Email,
		DisplayName: payload.DisplayName,
		Role:        roles.Parse(payload.Role),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Persist before exposing in-memory state so a reader never sees a
	// signed-in session that would not survive a restart.
	if err := s.creds.Save(payload.Token, identity); err != nil {
		s.lastErr = genericSignInError
		s.logger.Error("persisting credentials failed", "error", err)
		return err
	}
	s.token = payload.Token
	s.identity = &identity
	s.lastErr = ""

	s.logger.Info("signed in", "email", identity.Email, "role", identity.Role)
	return nil
}

func (s *Store) fail(msg string, cause error) error {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	if cause != nil {
		s.logger.Warn("sign-in failed", "error", cause)
		return cause
	}
	s.logger.Warn("sign-in rejected", "message", msg)
	return &SignInError{Message: msg}
}

// SignInError carries the user-facing message of a rejected sign-in attempt.
type SignInError struct {
	Message string
}

func (e *SignInError) Error() string { return e.Message }

// SignOut tears down the session locally: persisted credential and identity,
// in-memory identity, and any sign-in error are cleared. It never contacts the
// server and is safe to call repeatedly.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("clearing persisted credentials failed", "error", err)
	}
	s.token = ""
	s.identity = nil
	s.lastErr = ""
}

// Invalidate is the authorization-expiry teardown invoked by the request
// gateway. It reuses the sign-out path so persisted and in-memory state stay
// consistent instead of the gateway writing storage behind the store's back.
func (s *Store) Invalidate() {
	s.SignOut()
}

// ClearError clears the last sign-in error only.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// IsAuthenticated reports whether an identity is present. It is derived: it
// can never disagree with Identity().
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Identity returns a copy of the signed-in identity, or nil.
func (s *Store) Identity() *credentials.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// IsLoading reports whether a sign-in attempt is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the message from the most recent failed sign-in attempt,
// or the empty string.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
