package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/benclube/membership-service/utils"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthMiddleware guards the administrative surfaces (registration,
// directory, updates, scan history). Tokens are HS256-signed with a shared
// secret; there is no external identity provider in this deployment. The
// public validation endpoint is never routed through this middleware:
// scanners are unauthenticated by design.
type JWTAuthMiddleware struct {
	secret []byte
	issuer string
}

// JWTAuthConfig contains configuration for JWT authentication
type JWTAuthConfig struct {
	Secret string
	Issuer string
}

// Validate checks that the configuration is usable
func (c *JWTAuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 bytes")
	}
	return nil
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(config JWTAuthConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		secret: []byte(config.Secret),
		issuer: config.Issuer,
	}
}

// AuthenticateJWT validates the bearer token on every request before
// passing it through
func (m *JWTAuthMiddleware) AuthenticateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Authorization header is required", nil)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Authorization header must be a Bearer token", nil)
			return
		}

		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if m.issuer != "" {
			opts = append(opts, jwt.WithIssuer(m.issuer))
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		}, opts...)
		if err != nil || !token.Valid {
			slog.Warn("Rejected request with invalid token", "path", r.URL.Path, "error", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
