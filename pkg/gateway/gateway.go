// Package gateway is the single choke point for authenticated API calls. It
// attaches the persisted bearer credential to outgoing requests and reacts to
// authorization failures by tearing down the session, so no caller needs its
// own 401 handling.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"presales/pkg/apperrors"
)

// ErrAuthExpired tags responses that signalled an authorization failure. The
// gateway has already invalidated the session by the time a caller sees it;
// callers may still inspect the response for page-level feedback. A separate
// navigation layer reacts to the expiry notification, the gateway itself never
// navigates.
var ErrAuthExpired = errors.New("authorization expired")

// CredentialSource supplies the current bearer credential, if any.
type CredentialSource interface {
	Token() (string, bool)
}

// SessionInvalidator tears down the session on authorization expiry. The
// session store implements it, keeping persisted and in-memory state in step;
// the gateway never writes persisted storage directly.
type SessionInvalidator interface {
	Invalidate()
}

// Client routes requests through the credential-attachment and expiry-handling
// interceptors. The zero value is not usable; use New.
type Client struct {
	base          *http.Client
	creds         CredentialSource
	invalidator   SessionInvalidator
	onAuthExpired func()
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Client) { g.base = c }
}

// WithAuthExpiredHook registers the navigation-effect callback, invoked
// exactly once per authorization failure after the session is invalidated.
func WithAuthExpiredHook(fn func()) Option {
	return func(g *Client) { g.onAuthExpired = fn }
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Client) { g.logger = l }
}

// New builds a gateway client. invalidator may be nil when no session store is
// wired (unauthenticated tooling); credential attachment still applies.
func New(creds CredentialSource, invalidator SessionInvalidator, opts ...Option) *Client {
	g := &Client{
		base:        http.DefaultClient,
		creds:       creds,
		invalidator: invalidator,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Do dispatches the request with the current credential attached as a bearer
// authorization header when one is persisted; requests proceed unmodified
// otherwise. A 401 response invalidates the session, fires the expiry hook
// once, and is returned alongside ErrAuthExpired rather than suppressed.
func (g *Client) Do(req *http.Request) (*http.Response, error) {
	if token, ok := g.creds.Token(); ok && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.base.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.logger.Warn("authorization failure, invalidating session",
			"method", req.Method,
			"path", req.URL.Path,
		)
		if g.invalidator != nil {
			g.invalidator.Invalidate()
		}
		if g.onAuthExpired != nil {
			g.onAuthExpired()
		}
		return resp, ErrAuthExpired
	}

	return resp, nil
}

// JSON issues a request with a JSON body and decodes a JSON response into out
// (skipped when out is nil). Non-2xx responses other than 401 are shaped into
// coded errors carrying the server's error or message text, suitable for
// call-site feedback such as toasts.
func (g *Client) JSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) error {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error != "" {
			msg = envelope.Error
		} else if envelope.Message != "" {
			msg = envelope.Message
		}
	}

	code := apperrors.CodeInternal
	switch resp.StatusCode {
	case http.StatusNotFound:
		code = apperrors.CodeNotFound
	case http.StatusBadRequest:
		code = apperrors.CodeBadRequest
	case http.StatusConflict:
		code = apperrors.CodeConflict
	case http.StatusForbidden:
		code = apperrors.CodeForbidden
	}
	return apperrors.New(code, msg)
}
