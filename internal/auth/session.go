// Package auth holds the session shared by every resource client of one
// account: the bearer token, what the server said about it, and the
// exactly-once invalidation the transport triggers on a 401.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// expiryBuffer is subtracted from the server-issued expiry so a token is
// treated as stale shortly before the server would reject it.
const expiryBuffer = 30 * time.Second

// TokenSource supplies bearer tokens for outgoing API requests.
type TokenSource interface {
	// Token returns a token to authorize the next request.
	Token(ctx context.Context) (string, error)
	// Invalidate discards the held token after the server rejected it. It
	// reports whether a live token was discarded; repeat calls for the same
	// token observe false.
	Invalidate() bool
}

// Session holds the bearer token shared by every resource client built from
// one config, plus the identity the token authenticates as. Reads vastly
// outnumber writes; a write happens once at construction and once per
// invalidation.
type Session struct {
	mu          sync.RWMutex
	token       string
	kind        keyline.TokenKind
	bearer      *keyline.ResourceIdentifier
	expiresAt   time.Time
	invalidated bool
}

// NewSession returns an empty, unarmed session. Token fails until Set or
// Apply arms it.
func NewSession() *Session {
	return &Session{}
}

// NewStaticSession returns a session armed with a fixed token that never
// expires client-side.
func NewStaticSession(token string) *Session {
	session := NewSession()
	session.Set(token, time.Time{})

	return session
}

// Set arms the session with a token. A zero expiresAt means the token does
// not expire client-side. Setting clears any previous invalidation.
func (s *Session) Set(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.expiresAt = expiresAt
	s.kind = ""
	s.bearer = nil
	s.invalidated = false
}

// Apply arms the session from an issued token resource, keeping the kind and
// bearer identity for callers that want to know who they are.
func (s *Session) Apply(token *keyline.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token.Attributes.Token
	s.kind = token.Attributes.Kind
	s.invalidated = false

	if token.Attributes.Expiry != nil {
		s.expiresAt = *token.Attributes.Expiry
	} else {
		s.expiresAt = time.Time{}
	}

	if token.Relationships.Bearer.Data != nil {
		bearer := *token.Relationships.Bearer.Data
		s.bearer = &bearer
	} else {
		s.bearer = nil
	}
}

// Token implements TokenSource. It fails fast once the session has been
// invalidated or the token aged past its expiry buffer; no refresh is
// attempted because the credentials that minted the token are gone.
func (s *Session) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.invalidated:
		return "", keyline.ErrSessionInvalidated
	case s.token == "":
		return "", keyline.ErrTokenRequired
	case !s.expiresAt.IsZero() && time.Now().Add(expiryBuffer).After(s.expiresAt):
		return "", keyline.ErrTokenExpired
	}

	return s.token, nil
}

// Invalidate implements TokenSource. The first caller after a 401 discards
// the token and observes true; concurrent and later callers observe false.
func (s *Session) Invalidate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.invalidated || s.token == "" {
		return false
	}

	s.invalidated = true

	return true
}

// Valid reports whether the session currently holds a usable token.
func (s *Session) Valid() bool {
	_, err := s.Token(context.Background())

	return err == nil
}

// AccessToken returns the raw token, or the empty string once the session
// is unarmed or invalidated.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.invalidated {
		return ""
	}

	return s.token
}

// Kind returns the issued token's kind when known, e.g. "user-token".
func (s *Session) Kind() keyline.TokenKind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.kind
}

// Bearer returns the identity the token authenticates as, when the token
// endpoint reported one.
func (s *Session) Bearer() (keyline.ResourceIdentifier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.bearer == nil {
		return keyline.ResourceIdentifier{}, false
	}

	return *s.bearer, true
}

// ExpiresAt returns the token's expiry, zero when it does not expire.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.expiresAt
}
