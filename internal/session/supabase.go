package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
)

const ProfileTable = "profiles"

type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SupabaseProvider verifies Supabase access tokens, either against the
// project's JWKS or a shared HMAC secret, and enriches the identity from the
// profiles table.
type SupabaseProvider struct {
	client  *supabase.Client
	url     string
	anonKey string
	secret  []byte
	jwks    *keyfunc.JWKS
}

func NewSupabaseProvider(ctx context.Context, client *supabase.Client, url, anonKey, jwtSecret string) (*SupabaseProvider, error) {
	p := &SupabaseProvider{
		client:  client,
		url:     strings.TrimRight(url, "/"),
		anonKey: anonKey,
	}
	if jwtSecret != "" {
		p.secret = []byte(jwtSecret)
		return p, nil
	}

	jwksURL := fmt.Sprintf("%s/auth/v1/.well-known/jwks.json", p.url)
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	p.jwks = jwks
	return p, nil
}

// Close stops the JWKS background refresh.
func (p *SupabaseProvider) Close() {
	if p.jwks != nil {
		p.jwks.EndBackground()
	}
}

func (p *SupabaseProvider) keyfunc(token *jwt.Token) (interface{}, error) {
	if p.secret != nil {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	}
	if p.jwks == nil {
		return nil, fmt.Errorf("no verification key configured")
	}
	return p.jwks.Keyfunc(token)
}

func (p *SupabaseProvider) Resolve(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrNoSession
	}

	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, p.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	id := &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}

	if p.client != nil {
		// profile lookups are best effort; the token alone is enough
		if user, err := p.profile(claims.Subject, accessToken); err == nil {
			if user.Name != "" {
				id.Name = user.Name
			}
			if user.Email != "" {
				id.Email = user.Email
			}
			if user.Role != "" {
				id.Role = user.Role
			}
		}
	}
	return id, nil
}

func (p *SupabaseProvider) profile(userID, accessToken string) (*models.User, error) {
	client, err := supabase.NewClient(p.url, p.anonKey, &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(ProfileTable).
		Select("id,name,email,role", "", false).
		Eq("id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile rows: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("profile not found")
	}
	return &users[0], nil
}

func (p *SupabaseProvider) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	if refreshToken == "" {
		return nil, ErrNoSession
	}
	if p.client == nil {
		return nil, fmt.Errorf("supabase client is not initialized")
	}

	res, err := p.client.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return tokensFrom(res)
}

func tokensFrom(res *types.TokenResponse) (*Tokens, error) {
	if res == nil || res.AccessToken == "" {
		return nil, fmt.Errorf("invalid refresh response")
	}
	return &Tokens{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
	}, nil
}
