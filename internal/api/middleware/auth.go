package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/medilink/directory/internal/core/domain"
)

// ProviderTokenConfig describes the ID tokens issued by the sign-in provider
// bridge. Tokens are HS256 signed with Secret and must carry an expiry.
type ProviderTokenConfig struct {
	Secret string
	// Issuer, when set, must equal the token's iss claim.
	Issuer string
}

type providerTokenClaims struct {
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// ProviderToken validates the bearer ID token and injects the asserted
// identity into context under "provider_claims".
func ProviderToken(cfg ProviderTokenConfig) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)
	key := []byte(cfg.Secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims providerTokenClaims
			tkn, err := parser.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid provider token")
			}

			c.Set("provider_claims", domain.ProviderClaims{
				Provider: claims.Provider,
				UID:      claims.Subject,
				Email:    claims.Email,
				Name:     claims.Name,
			})

			return next(c)
		}
	}
}
