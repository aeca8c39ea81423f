package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/BizLenz/api/internal/domain/auth"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// KeySetProvider supplies the JWKS used for signature verification. The
// production implementation refreshes the set from the user pool endpoint,
// tests inject a static set.
type KeySetProvider interface {
	KeySet(ctx context.Context) (jwk.Set, error)
}

type cachedKeySetProvider struct {
	cache *jwk.Cache
	url   string
}

// NewCachedKeySetProvider creates a KeySetProvider that fetches the JWKS
// from the given URL and refreshes it in the background.
func NewCachedKeySetProvider(ctx context.Context, jwksURL string) (KeySetProvider, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL); err != nil {
		return nil, fmt.Errorf("failed to register JWKS endpoint: %w", err)
	}

	// Fetch once up front so misconfiguration fails at startup
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", jwksURL, err)
	}

	return &cachedKeySetProvider{cache: cache, url: jwksURL}, nil
}

func (p *cachedKeySetProvider) KeySet(ctx context.Context) (jwk.Set, error) {
	set, err := p.cache.Get(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached JWKS: %w", err)
	}
	return set, nil
}

type jwksVerifier struct {
	keys     KeySetProvider
	issuer   string
	clientID string
	logger   logger.Logger
}

// NewJWKSVerifier creates a TokenVerifier for access tokens issued by the
// configured user pool.
func NewJWKSVerifier(keys KeySetProvider, settings *config.CognitoSettings, logger logger.Logger) (auth.TokenVerifier, error) {
	return &jwksVerifier{
		keys:     keys,
		issuer:   settings.IssuerURL(),
		clientID: settings.ClientID,
		logger:   logger,
	}, nil
}

func (v *jwksVerifier) Verify(ctx context.Context, rawToken string) (*auth.Claims, error) {
	set, err := v.keys.KeySet(ctx)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(rawToken),
		jwt.WithContext(ctx),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	// Access tokens carry client_id instead of aud
	if clientID, ok := token.Get("client_id"); ok {
		if s, _ := clientID.(string); s != v.clientID {
			return nil, fmt.Errorf("token issued for unknown client")
		}
	}
	if tokenUse, ok := token.Get("token_use"); ok {
		if s, _ := tokenUse.(string); s != "access" {
			return nil, fmt.Errorf("token is not an access token")
		}
	}

	claims := &auth.Claims{
		Subject: token.Subject(),
	}
	if username, ok := token.Get("username"); ok {
		claims.Username, _ = username.(string)
	}
	if scope, ok := token.Get("scope"); ok {
		if s, _ := scope.(string); s != "" {
			claims.Scopes = strings.Fields(s)
		}
	}
	if groups, ok := token.Get("cognito:groups"); ok {
		claims.Groups = toStringSlice(groups)
	}

	return claims, nil
}

func toStringSlice(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
