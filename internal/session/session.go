// Package session resolves the caller's identity from an externally issued
// session token. Resolution is advisory: nothing here rejects a request, it
// only makes the identity available to the handlers that want it.
package session

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
)

const contextKey = "session"

var (
	ErrNoSession    = errors.New("no session")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Identity is the current user as reported by the session provider.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
}

func (i *Identity) IsAdmin() bool {
	return i.Role == "Admin" || i.Role == "admin"
}

func (i *Identity) GetSafeRole() string {
	if i.Role == "" {
		return "guest"
	}
	return i.Role
}

// Tokens is a refreshed token pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

type Provider interface {
	Resolve(ctx context.Context, accessToken string) (*Identity, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
}

// Anonymous is used when no session provider is configured.
type Anonymous struct{}

func (Anonymous) Resolve(context.Context, string) (*Identity, error) {
	return nil, ErrNoSession
}

func (Anonymous) Refresh(context.Context, string) (*Tokens, error) {
	return nil, ErrNoSession
}

func WithIdentity(c *gin.Context, id *Identity) {
	c.Set(contextKey, id)
}

// FromContext returns the identity stored by the session middleware, if any.
func FromContext(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}
